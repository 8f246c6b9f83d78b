package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	JWTSecret     string
	Gate          *services.Gate
	Auth          *services.AuthService
	Catalog       *services.CatalogService
	Professionals *services.ProfessionalService
	Customers     *services.CustomerService
	Bookings      *services.BookingService
	Reviews       *services.ReviewService
}

// New builds the fiber app with every route registered.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
		BodyLimit:    16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("household services api")
	})

	protected := middleware.Protected(d.JWTSecret)
	SetupAuthRoutes(app, d, protected)
	SetupAdminRoutes(app, d, protected)
	SetupCustomerRoutes(app, d, protected)
	SetupProfessionalRoutes(app, d, protected)

	return app
}
