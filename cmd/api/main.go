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
	"github.com/swaggo/swag"

	"github.com/jhoicas/portal-intranet/docs"
	"github.com/jhoicas/portal-intranet/internal/application/auth"
	"github.com/jhoicas/portal-intranet/internal/application/billing"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/portal-intranet/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/qr"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/storage"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/portal-intranet/internal/interfaces/http"
	"github.com/jhoicas/portal-intranet/pkg/config"
	"github.com/jhoicas/portal-intranet/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Portal Intranet API
// @version                     1.0
// @description                 Procesos, indicadores, terceros y facturas de proveedores.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	objects, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento S3")
	}

	userRepo := postgres.NewUserRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	indicatorRepo := postgres.NewIndicatorRepository(pool)
	terceroRepo := postgres.NewTerceroRepository(pool)
	invoiceRepo := postgres.NewSupplierInvoiceRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// 2FA: sin llave válida el login sigue funcionando pero no se puede activar.
	mfaKey, err := cfg.MFA.Key()
	if err != nil {
		log.Warn().Err(err).Msg("verificación en dos pasos deshabilitada")
		mfaKey = nil
	}
	authUC := auth.NewAuthUseCase(userRepo, qr.NewGenerator(0),
		auth.JWTConfig{
			Secret:        cfg.JWT.Secret,
			ExpMinutes:    cfg.JWT.Expiration,
			MFAExpMinutes: cfg.JWT.MFAExpiration,
			Issuer:        cfg.JWT.Issuer,
		},
		auth.MFAConfig{Issuer: cfg.MFA.Issuer, Key: mfaKey},
	)

	supplierInvoiceUC := billing.NewSupplierInvoiceUseCase(
		invoiceRepo, terceroRepo, objects,
		ubl.NewParser(),
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		txRunner,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin swagger.json; generar con swag init -g cmd/api/main.go")
	}
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		MenuUC:            usecase.NewMenuUseCase(dashboardRepo),
		DocumentUC:        usecase.NewDocumentUseCase(documentRepo, objects),
		IndicatorUC:       usecase.NewIndicatorUseCase(indicatorRepo, excel.NewIndicatorExporter()),
		TerceroUC:         usecase.NewTerceroUseCase(terceroRepo),
		SupplierInvoiceUC: supplierInvoiceUC,
		JWTSecret:         cfg.JWT.Secret,
		Logger:            log,
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
