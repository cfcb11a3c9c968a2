package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/receipts"
	"github.com/tu-usuario/retail-pos/internal/application/reports"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	BatchUC          *usecase.BatchUseCase
	StoreUC          *usecase.StoreUseCase
	ClientUC         *usecase.ClientUseCase
	CategoryUC       *usecase.CategoryUseCase
	SaleUC           *sales.SaleUseCase
	LineProcessor    *sales.LineProcessor
	RegisterMovement *inventory.RegisterMovementUseCase
	Traceability     *reports.TraceabilityUseCase
	ReceiptUC        *receipts.ReceiptUseCase
	ReceiptPDF       *receipts.PDFUseCase
	JWTSecret        string
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

	// Catálogo (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	batchHandler := NewBatchHandler(deps.BatchUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/batches", batchHandler.ListByProduct)

	// Lotes (protegido; alta y borrado restringidos a admin y bodeguero)
	batches := protected.Group("/batches")
	batches.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), batchHandler.Delete)

	// Tiendas, clientes y categorías (protegido)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", RequireRole(entity.RoleAdmin), storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequireRole(entity.RoleAdmin), categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	// Ventas y líneas (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	saleDetails := protected.Group("/sale-details")
	saleDetailHandler := NewSaleDetailHandler(deps.LineProcessor)
	saleDetails.Post("/", saleDetailHandler.Create)
	saleDetails.Put("/:id", saleDetailHandler.Update)
	saleDetails.Delete("/:id", saleDetailHandler.Delete)

	// Inventario y trazabilidad (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Traceability)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListByProduct)
	invGroup.Delete("/movements/:id", RequireRole(entity.RoleAdmin), inventoryHandler.DeleteMovement)
	invGroup.Get("/batches/:id/kardex", inventoryHandler.BatchKardex)

	// Recibos (protegido)
	receiptsGroup := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.ReceiptPDF)
	receiptsGroup.Post("/", receiptHandler.Issue)
	receiptsGroup.Get("/generate-number/:storeId", receiptHandler.GenerateNumber)
	receiptsGroup.Get("/:id", receiptHandler.GetByID)
	receiptsGroup.Put("/:id", receiptHandler.Update)
	receiptsGroup.Delete("/:id", receiptHandler.Delete)
	receiptsGroup.Post("/:id/cancel", receiptHandler.Cancel)
	receiptsGroup.Post("/:id/print", receiptHandler.Print)
	receiptsGroup.Get("/:id/pdf", receiptHandler.PDF)
}
