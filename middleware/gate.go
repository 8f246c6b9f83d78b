package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

// RequireRole runs the access gate for the authenticated account. It must be
// mounted after Protected.
func RequireRole(gate *services.Gate, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok := AccountID(c)
		if !ok {
			return utils.Unauthenticated("authentication required")
		}

		identity, err := gate.Authorize(c.UserContext(), accountID, roles...)
		if err != nil {
			utils.Log.WithField("account_id", accountID).WithField("path", c.Path()).
				WithError(err).Info("access denied")
			return err
		}

		c.Locals(localIdentity, identity)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireRole.
func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	id, _ := c.Locals(localIdentity).(*services.Identity)
	return id
}
