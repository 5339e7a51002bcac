package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
)

// CompanyHandler gère les requêtes HTTP des profils sociétés (protégé).
type CompanyHandler struct {
	uc *billing.CompanyUseCase
}

// NewCompanyHandler construit le handler.
func NewCompanyHandler(uc *billing.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// List GET /api/companies?limit=20&offset=0
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(GetUserID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/companies/:id
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(company)
}

// Update PUT /api/companies/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(company)
}

// Delete DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
