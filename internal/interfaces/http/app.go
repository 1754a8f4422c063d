package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// AppConfig opciones del servidor HTTP.
type AppConfig struct {
	Name     string
	DocsFile string // swagger.json servido en /docs; vacío = sin UI de documentación
	Log      *logger.Logger
	Metrics  *Metrics // nil = sin /metrics
}

// NewApp construye la app Fiber con el manejo de errores centralizado, recover, log por petición,
// /health, /metrics y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(RequestObserver(log, cfg.Metrics))
	app.Use(recover.New())

	if cfg.DocsFile != "" {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.DocsFile,
			Path:     "docs",
			Title:    cfg.Name + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	Router(app, deps)
	return app
}
