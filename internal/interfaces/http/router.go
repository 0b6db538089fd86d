package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/analytics"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/auth"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/usecase"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ClientUC    *usecase.ClientUseCase
	CatalogUC   *usecase.CatalogUseCase
	ServiceUC   *usecase.ServiceUseCase
	RecurringUC *billing.RecurringUseCase
	InvoiceUC   *billing.InvoiceUseCase
	DraftUC     *billing.DraftUseCase
	PDFUC       *billing.PDFUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
	Logger      *logger.Logger // nil = sin registro de fallos
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", withLogger(log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Post("/", catalogHandler.Create)
	catalogs.Get("/:id", catalogHandler.GetByID)
	catalogs.Put("/:id", catalogHandler.Update)
	catalogs.Delete("/:id", catalogHandler.Delete)

	// Servicios recurrentes: las rutas fijas van antes de /:id
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.RecurringUC)
	services.Get("/", serviceHandler.List)
	services.Post("/", serviceHandler.Create)
	services.Get("/billable", serviceHandler.Billable)
	services.Post("/bill-due", serviceHandler.BillDue)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)
	services.Post("/:id/invoice", serviceHandler.Bill)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/void", invoiceHandler.Void)
	invoices.Delete("/:id", invoiceHandler.Delete)

	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Get("/", draftHandler.List)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.GetByID)
	drafts.Put("/:id", draftHandler.UpdateHeader)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Post("/:id/lines", draftHandler.AddLine)
	drafts.Put("/:id/lines/:idx", draftHandler.UpdateLine)
	drafts.Delete("/:id/lines/:idx", draftHandler.RemoveLine)
	drafts.Post("/:id/refresh", draftHandler.Refresh)
	drafts.Post("/:id/submit", draftHandler.Submit)

	protected.Post("/calculator/line", CalculateLine)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
