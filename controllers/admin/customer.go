package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(custs *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: custs}
}

func (h *CustomerController) Details(c *fiber.Ctx) error {
	list, err := h.Customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": list})
}

func (h *CustomerController) Search(c *fiber.Ctx) error {
	var filter services.CustomerFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.ValidationError("invalid search filters")
	}
	list, err := h.Customers.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": list})
}

func (h *CustomerController) Summary(c *fiber.Ctx) error {
	summary, err := h.Customers.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"summary": summary})
}

// BlockUnblock writes is_active from the body as given.
func (h *CustomerController) BlockUnblock(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := controllers.ParseBody(c, &body); err != nil {
		return err
	}
	if body.IsActive == nil {
		return utils.ValidationError("is_active must be a boolean")
	}
	if err := h.Customers.SetActive(c.UserContext(), id, *body.IsActive); err != nil {
		return err
	}
	return controllers.Message(c, fiber.StatusOK, "Customer status updated successfully.")
}
