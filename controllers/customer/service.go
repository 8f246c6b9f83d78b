package customer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/services"
)

type ServiceController struct {
	Catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{Catalog: catalog}
}

// Available lists approved services only.
func (h *ServiceController) Available(c *fiber.Ctx) error {
	list, err := h.Catalog.ListApproved(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"services": list})
}

func (h *ServiceController) Search(c *fiber.Ctx) error {
	list, err := h.Catalog.Search(c.UserContext(), c.Params("term"), true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"services": list})
}
