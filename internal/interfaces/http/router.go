package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/auth"
	"github.com/jhoicas/portal-intranet/internal/application/billing"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	MenuUC            *usecase.MenuUseCase
	DocumentUC        *usecase.DocumentUseCase
	IndicatorUC       *usecase.IndicatorUseCase
	TerceroUC         *usecase.TerceroUseCase
	SupplierInvoiceUC *billing.SupplierInvoiceUseCase
	JWTSecret         string
	Logger            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Logger != nil {
		api.Use(RequestLogger(deps.Logger))
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/mfa/verify", authHandler.VerifyMFA)

	// Rutas protegidas (requieren Bearer Token de acceso)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/mfa/setup", authHandler.SetupMFA)
	protected.Post("/auth/mfa/enable", authHandler.EnableMFA)
	protected.Post("/auth/mfa/disable", authHandler.DisableMFA)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.MenuUC)
	protected.Get("/menu", dashboardHandler.Menu)
	protected.Get("/dashboard/widgets", dashboardHandler.Widgets)

	// Procesos: documentos de calidad
	view, manage := RequirePermission(permission.AppProcesos, CanView), RequirePermission(permission.AppProcesos, CanManage)
	docs := protected.Group("/procesos/documents")
	docHandler := NewDocumentHandler(deps.DocumentUC)
	docs.Get("/", view, docHandler.List)
	docs.Post("/", manage, docHandler.Create)
	docs.Get("/:id", view, docHandler.Get)
	docs.Put("/:id", manage, docHandler.Update)
	docs.Put("/:id/file", manage, docHandler.ReplaceFile)
	docs.Patch("/:id/status", manage, docHandler.ChangeStatus)
	docs.Delete("/:id", manage, docHandler.Delete)
	docs.Get("/:id/download", view, docHandler.Download)

	// Indicadores
	view, manage = RequirePermission(permission.AppIndicadores, CanView), RequirePermission(permission.AppIndicadores, CanManage)
	indicators := protected.Group("/indicadores")
	indHandler := NewIndicatorHandler(deps.IndicatorUC)
	indicators.Get("/", view, indHandler.List)
	indicators.Post("/", manage, indHandler.Create)
	indicators.Get("/export", RequirePermission(permission.AppIndicadores, CanDownload), indHandler.Export)
	indicators.Get("/:id", view, indHandler.Get)
	indicators.Put("/:id", manage, indHandler.Update)
	indicators.Delete("/:id", manage, indHandler.Delete)
	indicators.Post("/:id/measurements", manage, indHandler.AddMeasurement)

	// Terceros
	view, manage = RequirePermission(permission.AppTerceros, CanView), RequirePermission(permission.AppTerceros, CanManage)
	terceros := protected.Group("/terceros")
	terceroHandler := NewTerceroHandler(deps.TerceroUC)
	terceros.Get("/", view, terceroHandler.List)
	terceros.Post("/", manage, terceroHandler.Create)
	terceros.Get("/:id", view, terceroHandler.Get)
	terceros.Put("/:id", manage, terceroHandler.Update)
	terceros.Delete("/:id", manage, terceroHandler.Delete)

	// Proveedores: facturas
	view, manage = RequirePermission(permission.AppProveedores, CanView), RequirePermission(permission.AppProveedores, CanManage)
	invoices := protected.Group("/proveedores/invoices")
	invHandler := NewSupplierInvoiceHandler(deps.SupplierInvoiceUC)
	invoices.Get("/", view, invHandler.List)
	invoices.Post("/", manage, invHandler.Create)
	invoices.Post("/import", manage, invHandler.Import)
	invoices.Get("/:id", view, invHandler.Get)
	invoices.Patch("/:id/status", manage, invHandler.ChangeStatus)
	invoices.Delete("/:id", manage, invHandler.Delete)
	invoices.Get("/:id/download", view, invHandler.Download)
	invoices.Get("/:id/pdf", RequirePermission(permission.AppProveedores, CanDownload), invHandler.SummaryPDF)
}
