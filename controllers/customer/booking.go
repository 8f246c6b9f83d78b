package customer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/services"
)

type BookingController struct {
	Bookings *services.BookingService
	Reviews  *services.ReviewService
}

func NewBookingController(bookings *services.BookingService, reviews *services.ReviewService) *BookingController {
	return &BookingController{Bookings: bookings, Reviews: reviews}
}

// Book handles POST /customer/book/:service_id
func (h *BookingController) Book(c *fiber.Ctx) error {
	serviceID, err := controllers.ParamID(c, "service_id")
	if err != nil {
		return err
	}
	id := middleware.CurrentIdentity(c)

	booking, err := h.Bookings.Create(c.UserContext(), id.Customer, serviceID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service requested successfully.",
		"booking": booking,
	})
}

// History handles GET /customer/bookings
func (h *BookingController) History(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	list, err := h.Bookings.History(c.UserContext(), id.Customer.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bookings": list})
}

func (h *BookingController) Cancel(c *fiber.Ctx) error {
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
	booking, err := h.Bookings.CancelByCustomer(c.UserContext(), id.Customer, bookingID, body.Remarks)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled.", "booking": booking})
}

// Review handles POST /customer/booking/review/:id
func (h *BookingController) Review(c *fiber.Ctx) error {
	bookingID, err := controllers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var in services.ReviewInput
	if err := controllers.ParseBody(c, &in); err != nil {
		return err
	}

	id := middleware.CurrentIdentity(c)
	review, err := h.Reviews.Create(c.UserContext(), id.Customer, bookingID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review submitted.",
		"review":  review,
	})
}
