package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func (h *BookingController) All(c *fiber.Ctx) error {
	list, err := h.Bookings.ListAll(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bookings": list})
}

func (h *BookingController) Assign(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		ProfessionalID uint `json:"professional_id"`
	}
	if err := controllers.ParseBody(c, &body); err != nil {
		return err
	}
	if body.ProfessionalID == 0 {
		return utils.ValidationError("missing required fields: professional_id")
	}
	booking, err := h.Bookings.Assign(c.UserContext(), id, body.ProfessionalID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Booking assigned.", "booking": booking})
}

func (h *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Remarks string `json:"remarks"`
	}
	if len(c.Body()) > 0 {
		if err := controllers.ParseBody(c, &body); err != nil {
			return err
		}
	}
	booking, err := h.Bookings.CancelByAdmin(c.UserContext(), id, body.Remarks)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled.", "booking": booking})
}
