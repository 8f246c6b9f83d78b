package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

type ProfessionalController struct {
	Professionals *services.ProfessionalService
}

func NewProfessionalController(pros *services.ProfessionalService) *ProfessionalController {
	return &ProfessionalController{Professionals: pros}
}

func (h *ProfessionalController) Details(c *fiber.Ctx) error {
	list, err := h.Professionals.Details(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"professionals": list})
}

func (h *ProfessionalController) Search(c *fiber.Ctx) error {
	var filter services.ProfessionalFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.ValidationError("invalid search filters")
	}
	list, err := h.Professionals.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"professionals": list})
}

func (h *ProfessionalController) Summary(c *fiber.Ctx) error {
	summary, err := h.Professionals.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"summary": summary})
}

// BlockUnblock writes is_approved from the body as given.
func (h *ProfessionalController) BlockUnblock(c *fiber.Ctx) error {
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
	if err := h.Professionals.SetApproval(c.UserContext(), id, *body.IsApproved); err != nil {
		return err
	}
	return controllers.Message(c, fiber.StatusOK, "Professional status updated successfully.")
}
