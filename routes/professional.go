package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers/professional"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/models"
)

func SetupProfessionalRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	group := app.Group("/professional", protected, middleware.RequireRole(d.Gate, models.RoleProfessional))

	booking := professional.NewBookingController(d.Bookings, d.Reviews)
	group.Get("/bookings", booking.Queue)
	group.Put("/booking/accept/:id<int>", booking.Accept)
	group.Put("/booking/start/:id<int>", booking.Start)
	group.Put("/booking/complete/:id<int>", booking.Complete)
	group.Get("/reviews", booking.ListReviews)
}
