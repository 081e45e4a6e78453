package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	StoreUC     *usecase.StoreUseCase
	InventoryUC *inventory.InventoryUseCase
	ReportUC    *inventory.ReportUseCase
	JWTSecret   string
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	SwaggerFile string
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // nil → prometheus.DefaultGatherer
}

// NewApp construye la aplicación Fiber con middlewares, /health, /metrics, /docs y la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(MetricsMiddleware(cfg.Metrics))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo generado)
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name + " API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	catalogWriters := RequireRole(entity.RoleAdmin, entity.RoleGerente)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup := protected.Group("/auth")
	authGroup.Post("/users", adminOnly, authHandler.CreateUser)
	authGroup.Get("/users", adminOnly, authHandler.GetUsers)
	authGroup.Post("/verify-password", authHandler.VerifyPassword)

	// Users (solo ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/roles", userHandler.AssignRole)

	// Stores (lectura para cualquier operador, escritura ADMIN)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", adminOnly, storeHandler.Create)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", adminOnly, storeHandler.Update)
	stores.Delete("/:id", adminOnly, storeHandler.Delete)
	stores.Get("/:id/users", adminOnly, userHandler.ListByStore)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.InventoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", catalogWriters, categoryHandler.Create)
	categories.Put("/:id", catalogWriters, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC)
	products.Get("/", productHandler.List)
	products.Post("/", catalogWriters, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", catalogWriters, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/stock.pdf", catalogWriters, reportHandler.StockPDF)
}
