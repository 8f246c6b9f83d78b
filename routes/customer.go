package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers/customer"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/models"
)

func SetupCustomerRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	group := app.Group("/customer", protected, middleware.RequireRole(d.Gate, models.RoleCustomer))

	svc := customer.NewServiceController(d.Catalog)
	group.Get("/services", svc.Available)
	group.Get("/services/search/:term", svc.Search)

	booking := customer.NewBookingController(d.Bookings, d.Reviews)
	group.Post("/book/:service_id<int>", booking.Book)
	group.Get("/bookings", booking.History)
	group.Put("/booking/cancel/:id<int>", booking.Cancel)
	group.Post("/booking/review/:id<int>", booking.Review)
}
