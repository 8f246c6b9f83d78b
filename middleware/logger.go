package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				status = appErr.Status()
			} else if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := utils.Log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.OriginalURL(),
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return err
	}
}
