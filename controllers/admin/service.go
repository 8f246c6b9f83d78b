package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

type ServiceController struct {
	Catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{Catalog: catalog}
}

func (h *ServiceController) Add(c *fiber.Ctx) error {
	var in services.ServiceInput
	if err := controllers.ParseBody(c, &in); err != nil {
		return err
	}
	svc, err := h.Catalog.Add(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service added successfully.",
		"service": svc,
	})
}

func (h *ServiceController) Update(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var in services.ServiceInput
	if err := controllers.ParseBody(c, &in); err != nil {
		return err
	}
	svc, err := h.Catalog.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Service updated successfully.",
		"service": svc,
	})
}

func (h *ServiceController) Delete(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return controllers.Message(c, fiber.StatusOK, "Service deleted successfully.")
}

func (h *ServiceController) All(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"services": list})
}

func (h *ServiceController) One(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	svc, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"service": svc})
}

func (h *ServiceController) Search(c *fiber.Ctx) error {
	list, err := h.Catalog.Search(c.UserContext(), c.Params("term"), false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"services": list})
}

func (h *ServiceController) Summary(c *fiber.Ctx) error {
	summary, err := h.Catalog.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// Approve sets is_approved from the body; the flag is required.
func (h *ServiceController) Approve(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		IsApproved *bool `json:"is_approved"`
	}
	if err := controllers.ParseBody(c, &body); err != nil {
		return err
	}
	if body.IsApproved == nil {
		return utils.ValidationError("is_approved must be a boolean")
	}
	if err := h.Catalog.SetApproval(c.UserContext(), id, *body.IsApproved); err != nil {
		return err
	}
	return controllers.Message(c, fiber.StatusOK, "Service status updated successfully.")
}
