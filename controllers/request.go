package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/utils"
)

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, utils.ValidationError("invalid %s", name)
	}
	return uint(id), nil
}

// ParseBody decodes the request body into out.
func ParseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return utils.ValidationError("cannot parse request body")
	}
	return nil
}

// Message writes {"message": msg} with the given status.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
