package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
)

// InvoiceHandler gère les requêtes HTTP des factures (protégé).
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	send *billing.SendUseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, send *billing.SendUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, send: send}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	invoice, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List GET /api/invoices?limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// UpdateStatus PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	invoice, err := h.uc.UpdateStatus(GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SuggestNumber GET /api/invoices/next-number
func (h *InvoiceHandler) SuggestNumber(c *fiber.Ctx) error {
	resp, err := h.uc.SuggestNumber(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, name, err := h.send.DownloadInvoicePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}

// ExportXML GET /api/invoices/:id/xml
func (h *InvoiceHandler) ExportXML(c *fiber.Ctx) error {
	xml, name, err := h.send.ExportInvoiceXML(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(xml)
}

// Send POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	resp, err := h.send.SendInvoice(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Webhook POST /api/invoices/:id/webhook
func (h *InvoiceHandler) Webhook(c *fiber.Ctx) error {
	resp, err := h.send.NotifyInvoiceWebhook(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
