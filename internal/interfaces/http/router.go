package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventaris-api/internal/application/auth"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/metrics"
	"github.com/jhoicas/inventaris-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	StockUC     *usecase.StockUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LookupUC    *usecase.LookupUseCase
	UserUC      *usecase.UserUseCase
	LabelUC     *usecase.LabelUseCase
	DashboardUC *usecase.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// AppConfig opciones de la aplicación Fiber que no son rutas de negocio.
type AppConfig struct {
	Name        string
	Log         *logger.Logger
	Metrics     *metrics.Metrics // nil: sin /metrics
	StorageDir  string           // si no está vacío se sirve en /storage (driver local)
	SwaggerFile string           // si el archivo existe se monta la UI en /docs
}

// NewApp construye la aplicación Fiber con middlewares, health, métricas y todas las rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // imágenes en base64
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Component("http")))
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Inventaris API",
			}))
		}
	}
	if cfg.StorageDir != "" {
		app.Static("/storage", cfg.StorageDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Get("/me", authHandler.Me)
	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).Summary)

	// Items y su stock por bodega
	itemHandler := NewItemHandler(deps.ItemUC)
	stockHandler := NewStockHandler(deps.StockUC)
	labelHandler := NewLabelHandler(deps.LabelUC)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", RequirePermission(entity.PermCreateItem), itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", RequirePermission(entity.PermUpdateItem), itemHandler.Update)
	items.Delete("/:id", RequirePermission(entity.PermDeleteItem), itemHandler.Delete)
	items.Post("/:id/restore", RequirePermission(entity.PermDeleteItem), itemHandler.Restore)
	items.Delete("/:id/purge", RequirePermission(entity.PermDeleteItem), itemHandler.Purge)
	items.Get("/:id/stocks", stockHandler.List)
	items.Put("/:id/stocks/:warehouse_id", RequirePermission(entity.PermUpdateItem), stockHandler.Set)
	items.Delete("/:id/stocks/:warehouse_id", RequirePermission(entity.PermUpdateItem), stockHandler.Remove)
	items.Get("/:id/qr", RequirePermission(entity.PermGenerateQR), labelHandler.ItemQR)
	items.Get("/:id/qr/pdf", RequirePermission(entity.PermGenerateQR), labelHandler.ItemLabels)

	qr := protected.Group("/qr", RequirePermission(entity.PermGenerateQR))
	qr.Get("/", labelHandler.AllQR)
	qr.Get("/pdf", labelHandler.AllLabels)

	// Warehouses
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	manageGudang := RequirePermission(entity.PermManageGudang)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", manageGudang, warehouseHandler.Create)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", manageGudang, warehouseHandler.Update)
	warehouses.Delete("/:id", manageGudang, warehouseHandler.Delete)

	// Catálogos
	manageMaster := RequirePermission(entity.PermManageMaster)
	for path, kind := range map[string]string{
		"/item-types": entity.LookupItemType,
		"/units":      entity.LookupUnit,
		"/categories": entity.LookupCategory,
	} {
		h := NewLookupHandler(deps.LookupUC, kind)
		g := protected.Group(path)
		g.Get("/", h.List)
		g.Post("/", manageMaster, h.Create)
		g.Delete("/:id", manageMaster, h.Delete)
	}

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	manageUsers := RequirePermission(entity.PermManageUsers)
	selfOrManager := RequireSelfOrPermission(entity.PermManageUsers)
	users.Get("/", manageUsers, userHandler.List)
	users.Post("/", manageUsers, userHandler.Create)
	users.Get("/operators", manageUsers, userHandler.ListOperators)
	users.Get("/:id", selfOrManager, userHandler.GetByID)
	users.Put("/:id", selfOrManager, userHandler.Update)
	users.Delete("/:id", manageUsers, userHandler.Delete)
	users.Delete("/:id/avatar", selfOrManager, userHandler.DeleteAvatar)
	users.Put("/:id/password", selfOrManager, userHandler.ChangePassword)
}
