package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/auth"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	infraemail "github.com/mandaniainarandriambinintsoa/Factupro/internal/infrastructure/email"
	infrapdf "github.com/mandaniainarandriambinintsoa/Factupro/internal/infrastructure/pdf"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/infrastructure/postgres"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/infrastructure/ubl"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/infrastructure/webhook"
	httpRouter "github.com/mandaniainarandriambinintsoa/Factupro/internal/interfaces/http"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/config"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := billing.NewClientUseCase(clientRepo)
	companyUC := billing.NewCompanyUseCase(companyRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, clientRepo, companyRepo)
	quoteUC := billing.NewQuoteUseCase(quoteRepo, clientRepo, companyRepo)

	pdfGenerator := infrapdf.NewMarotoGenerator()
	xmlBuilder := ubl.NewBuilder()

	// Envoi d'email désactivé tant que la clé Brevo n'est pas configurée.
	var emailSender billing.EmailSender
	if cfg.Email.Enabled() {
		emailSender = infraemail.NewBrevoSender(cfg.Email)
		log.Info().Str("from", cfg.Email.FromEmail).Msg("envoi d'email activé")
	} else {
		log.Warn().Msg("BREVO_API_KEY absent, envoi d'email désactivé")
	}

	webhookNotifier := webhook.NewNotifier(cfg.Webhook, log)

	sendUC := billing.NewSendUseCase(
		invoiceUC, quoteUC,
		pdfGenerator, emailSender, webhookNotifier, xmlBuilder,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Factupro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		CompanyUC: companyUC,
		InvoiceUC: invoiceUC,
		QuoteUC:   quoteUC,
		SendUC:    sendUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
