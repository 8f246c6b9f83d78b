package professional

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/services"
)

type BookingController struct {
	Bookings *services.BookingService
	Reviews  *services.ReviewService
}

func NewBookingController(bookings *services.BookingService, reviews *services.ReviewService) *BookingController {
	return &BookingController{Bookings: bookings, Reviews: reviews}
}

// Queue lists the caller's bookings and the open requests it could accept.
func (h *BookingController) Queue(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	list, err := h.Bookings.ProfessionalQueue(c.UserContext(), id.Professional.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bookings": list})
}

func (h *BookingController) Accept(c *fiber.Ctx) error {
	return h.act(c, "Booking accepted.", func(p *models.ProfessionalProfile, bookingID uint, _ string) (*models.Booking, error) {
		return h.Bookings.Accept(c.UserContext(), p, bookingID)
	})
}

func (h *BookingController) Start(c *fiber.Ctx) error {
	return h.act(c, "Booking started.", func(p *models.ProfessionalProfile, bookingID uint, _ string) (*models.Booking, error) {
		return h.Bookings.Start(c.UserContext(), p, bookingID)
	})
}

func (h *BookingController) Complete(c *fiber.Ctx) error {
	return h.act(c, "Booking completed.", func(p *models.ProfessionalProfile, bookingID uint, remarks string) (*models.Booking, error) {
		return h.Bookings.Complete(c.UserContext(), p, bookingID, remarks)
	})
}

func (h *BookingController) act(c *fiber.Ctx, msg string, do func(*models.ProfessionalProfile, uint, string) (*models.Booking, error)) error {
	bookingID, err := controllers.ParamID(c, "id")
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

	id := middleware.CurrentIdentity(c)
	booking, err := do(id.Professional, bookingID, body.Remarks)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": msg, "booking": booking})
}

// ListReviews lists the reviews written about the caller.
func (h *BookingController) ListReviews(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	list, err := h.Reviews.ListForProfessional(c.UserContext(), id.Professional.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reviews": list})
}
