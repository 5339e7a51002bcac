package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/auth"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
)

// RouterDeps dépendances pour le routeur.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *billing.ClientUseCase
	CompanyUC *billing.CompanyUseCase
	InvoiceUC *billing.InvoiceUseCase
	QuoteUC   *billing.QuoteUseCase
	SendUC    *billing.SendUseCase
	JWTSecret string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Profils clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/search", clientHandler.Search)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Profils sociétés
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Factures
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.SendUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/next-number", invoiceHandler.SuggestNumber)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/webhook", invoiceHandler.Webhook)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Devis
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.SendUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/next-number", quoteHandler.SuggestNumber)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Post("/:id/send", quoteHandler.Send)
	quotes.Delete("/:id", quoteHandler.Delete)
}
