package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
)

// QuoteHandler gère les requêtes HTTP des devis (protégé).
type QuoteHandler struct {
	uc   *billing.QuoteUseCase
	send *billing.SendUseCase
}

// NewQuoteHandler construit le handler.
func NewQuoteHandler(uc *billing.QuoteUseCase, send *billing.SendUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc, send: send}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	quote, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// List GET /api/quotes?limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(quote)
}

// UpdateStatus PATCH /api/quotes/:id/status
func (h *QuoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	quote, err := h.uc.UpdateStatus(GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(quote)
}

// Delete DELETE /api/quotes/:id
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SuggestNumber GET /api/quotes/next-number
func (h *QuoteHandler) SuggestNumber(c *fiber.Ctx) error {
	resp, err := h.uc.SuggestNumber(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// DownloadPDF GET /api/quotes/:id/pdf
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, name, err := h.send.DownloadQuotePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}

// Send POST /api/quotes/:id/send
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	resp, err := h.send.SendQuote(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
