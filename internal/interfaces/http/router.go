package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/youssefyouyoudev/GestionStock/internal/application/auth"
	"github.com/youssefyouyoudev/GestionStock/internal/application/ledger"
	"github.com/youssefyouyoudev/GestionStock/internal/application/report"
	"github.com/youssefyouyoudev/GestionStock/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	CustomerUC *usecase.CustomerUseCase
	LedgerUC   *ledger.UseCase
	ReportUC   *report.UseCase
	ExportUC   *report.ExportUseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Motor de transacciones (protegido)
	stockHandler := NewStockHandler(deps.LedgerUC, deps.ReportUC)
	protected.Post("/purchases", stockHandler.CreatePurchase)
	protected.Post("/sales", stockHandler.CreateSale)
	stock := protected.Group("/stock")
	stock.Post("/adjust", stockHandler.AdjustStock)
	stock.Get("/movements", stockHandler.ListMovements)

	// Reportes y exportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reports.Get("/metrics", reportHandler.Metrics)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/daily-totals", reportHandler.DailyTotals)
	reports.Get("/export/products.csv", reportHandler.ExportProductsCSV)
	reports.Get("/export/sales.csv", reportHandler.ExportSalesCSV)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
}
