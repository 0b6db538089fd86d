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

	appanalytics "github.com/RosaQuijije/FacturacionWeb/internal/application/analytics"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/auth"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/usecase"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/gateway"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/memory"
	infrapdf "github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/pdf"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/postgres"
	httpRouter "github.com/RosaQuijije/FacturacionWeb/internal/interfaces/http"
	"github.com/RosaQuijije/FacturacionWeb/pkg/config"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
)

// @title                       Facturación Web API
// @version                     1.0
// @description                 BFF de facturación: clientes, catálogo, servicios recurrentes y facturas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer {token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	repos := gateway.Open(cfg.Backend)
	log.Info().Str("backend", repos.Target).Dur("timeout", cfg.Backend.Timeout).Msg("backend de facturación")

	// Borradores: PostgreSQL si hay base configurada, si no en memoria.
	ctx := context.Background()
	var drafts repository.DraftRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		drafts = postgres.NewDraftStore(pool)
		log.Info().Msg("borradores en PostgreSQL")
	} else {
		drafts = memory.NewDraftRepository()
		log.Warn().Msg("sin base de datos: los borradores se pierden al reiniciar")
	}

	authUC := auth.NewAuthUseCase(repos.Auth, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(repos.Clients)
	catalogUC := usecase.NewCatalogUseCase(repos.Catalogs)
	serviceUC := usecase.NewServiceUseCase(repos.Services, repos.Catalogs, nil)
	recurringUC := billing.NewRecurringUseCase(repos.Services, repos.Invoices, log, nil)
	invoiceUC := billing.NewInvoiceUseCase(repos.Invoices, repos.Clients, repos.Catalogs)
	draftUC := billing.NewDraftUseCase(drafts, repos.Catalogs, repos.Clients, repos.Invoices, log, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Invoices, repos.Clients, repos.Services, nil)

	// PDF: representación gráfica de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(repos.Invoices, repos.Clients, repos.Catalogs, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación Web API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": repos.Target})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		CatalogUC:   catalogUC,
		ServiceUC:   serviceUC,
		RecurringUC: recurringUC,
		InvoiceUC:   invoiceUC,
		DraftUC:     draftUC,
		PDFUC:       invoicePDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
