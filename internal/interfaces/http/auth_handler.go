package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/auth"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
)

// AuthHandler gère les requêtes HTTP d'authentification.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construit le handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Me GET /api/auth/me (protégé)
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
