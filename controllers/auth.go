package controllers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/middleware"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Login handles POST /login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := ParseBody(c, &in); err != nil {
		return err
	}

	res, err := h.Auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// RegisterCustomer handles POST /register/customer
func (h *AuthController) RegisterCustomer(c *fiber.Ctx) error {
	var in services.RegisterCustomerInput
	if err := ParseBody(c, &in); err != nil {
		return err
	}

	customer, err := h.Auth.RegisterCustomer(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Customer registered successfully.",
		"customer_id": customer.ID,
	})
}

// RegisterProfessional handles the multipart POST /register/professional.
// The documents file is optional.
func (h *AuthController) RegisterProfessional(c *fiber.Ctx) error {
	var in services.RegisterProfessionalInput
	if err := ParseBody(c, &in); err != nil {
		return err
	}

	var doc *services.Upload
	if fh, err := c.FormFile("documents"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return utils.ValidationError("cannot read uploaded document")
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		doc = &services.Upload{Filename: fh.Filename, Body: f}
	}

	professional, err := h.Auth.RegisterProfessional(c.UserContext(), in, doc)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Professional registered successfully. Awaiting approval.",
		"professional_id": professional.ID,
	})
}

// Me handles GET /me
func (h *AuthController) Me(c *fiber.Ctx) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return utils.Unauthenticated("authentication required")
	}
	identity, err := h.Auth.Me(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(identity)
}
