package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/taller-inventario/internal/application/analytics"
	"github.com/jhoicas/taller-inventario/internal/application/auth"
	"github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/pkg/logger"
	"github.com/jhoicas/taller-inventario/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *usecase.SupplierUseCase
	VehicleUC        *usecase.VehicleUseCase
	TechnicianUC     *usecase.TechnicianUseCase
	CustomerUC       *usecase.CustomerUseCase
	Stock            inventory.StockReader
	Estimator        *inventory.DeliveryEstimator
	RegisterMovement *inventory.RegisterMovementUseCase
	Reports          *inventory.ReportUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string

	// Idempotency es opcional: nil desactiva la deduplicación de POST /inventory/movements.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
}

// Router registra las rutas de la API.
//
// Roles: admin todo; almacenero catálogo, proveedores, registros y movimientos;
// tecnico lectura y movimientos (retiro de repuestos).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	allRoles := RequireRole(entity.RoleAdmin, entity.RoleAlmacenero, entity.RoleTecnico)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleAlmacenero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: register es público solo mientras no existan usuarios
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), allRoles)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Stock, deps.Estimator, deps.Reports, deps.SupplierUC)
	products.Post("/", warehouse, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", warehouse, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/stock", productHandler.Stock)
	products.Get("/:id/delivery-estimate", productHandler.DeliveryEstimate)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/prices", productHandler.Prices)

	// Suppliers y precios
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", warehouse, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/:id/prices", warehouse, supplierHandler.RecordPrice)
	suppliers.Get("/:id/prices", supplierHandler.ListPrices)

	// Vehículos y técnicos
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", warehouse, vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)

	technicians := protected.Group("/technicians")
	technicianHandler := NewTechnicianHandler(deps.TechnicianUC)
	technicians.Post("/", adminOnly, technicianHandler.Create)
	technicians.Get("/", technicianHandler.List)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", warehouse, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Inventory: ledger y reportes
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Reports)
	invGroup.Post("/movements",
		Idempotency(deps.Idempotency, deps.IdempotencyTTL, deps.Logger, deps.Metrics),
		inventoryHandler.RegisterMovement,
	)
	invGroup.Get("/movements", inventoryHandler.RecentMovements)
	invGroup.Get("/stock", inventoryHandler.StockLevels)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/report.pdf", inventoryHandler.StockReportPDF)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
