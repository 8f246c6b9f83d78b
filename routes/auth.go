package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/controllers"
)

// SetupAuthRoutes configures login, registration and /me
func SetupAuthRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	h := controllers.NewAuthController(d.Auth)

	app.Post("/login", h.Login)
	app.Post("/register/customer", h.RegisterCustomer)
	app.Post("/register/professional", h.RegisterProfessional)

	app.Get("/me", protected, h.Me)
}
