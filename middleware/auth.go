package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/household-services/utils"
)

const (
	localAccountID = "accountID"
	localIdentity  = "identity"
)

// Protected verifies the bearer token and stores the account id for the
// handlers that follow.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Unauthenticated("invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Unauthenticated("invalid token claims")
			}

			accountID, err := utils.AccountIDFromClaims(claims)
			if err != nil {
				utils.Log.WithError(err).Debug("rejecting token")
				return utils.Unauthenticated("invalid user id in token")
			}

			c.Locals(localAccountID, accountID)
			return c.Next()
		},
	})
}

// AccountID returns the id stored by Protected.
func AccountID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localAccountID).(uint)
	return id, ok
}

func jwtError(c *fiber.Ctx, err error) error {
	if err != nil && err.Error() == "Missing or malformed JWT" {
		return utils.Unauthenticated("missing or malformed token")
	}
	return utils.Unauthenticated("invalid or expired token")
}
