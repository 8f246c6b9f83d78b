package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers/admin"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/models"
)

func SetupAdminRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	group := app.Group("/admin", protected, middleware.RequireRole(d.Gate, models.RoleAdmin))

	svc := admin.NewServiceController(d.Catalog)
	group.Post("/service/add", svc.Add)
	group.Put("/service/update/:id<int>", svc.Update)
	group.Delete("/service/delete/:id<int>", svc.Delete)
	group.Get("/service/all", svc.All)
	group.Get("/service/summary", svc.Summary)
	group.Get("/service/search/:term", svc.Search)
	group.Put("/service/approve/:id<int>", svc.Approve)
	group.Get("/service/:id<int>", svc.One)

	pro := admin.NewProfessionalController(d.Professionals)
	group.Get("/professional/details", pro.Details)
	group.Get("/professional/summary", pro.Summary)
	group.Get("/professional/search", pro.Search)
	group.Put("/professional/block_unblock/:id<int>", pro.BlockUnblock)

	cust := admin.NewCustomerController(d.Customers)
	group.Get("/customer/details", cust.Details)
	group.Get("/customer/summary", cust.Summary)
	group.Get("/customer/search", cust.Search)
	group.Put("/customer/block_unblock/:id<int>", cust.BlockUnblock)

	booking := admin.NewBookingController(d.Bookings)
	group.Get("/booking/all", booking.All)
	group.Put("/booking/assign/:id<int>", booking.Assign)
	group.Put("/booking/cancel/:id<int>", booking.Cancel)
}
