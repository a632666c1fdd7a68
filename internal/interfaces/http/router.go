package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"inventario-pos/internal/application/auth"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/application/pos"
	"inventario-pos/internal/application/purchasing"
	"inventario-pos/internal/application/usecase"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/infrastructure/pdf"
	"inventario-pos/internal/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	UserUC         *usecase.UserUseCase
	DashboardUC    *usecase.DashboardUseCase
	RecordMovement *ledger.RecordMovementUseCase
	LedgerQueries  *ledger.QueryUseCase
	CheckoutUC     *pos.CheckoutUseCase
	PurchasingUC   *purchasing.UseCase
	Receipt        *pdf.ReceiptGenerator
	Hub            *ws.Hub
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products (lectura para todos los roles; escritura admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", stockRoles, productHandler.Create)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", stockRoles, productHandler.Delete)

	// Inventory: el ledger (registrar admin/bodeguero; consultar todos)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.LedgerQueries)
	invGroup.Post("/movements", stockRoles, inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// POS (admin/vendedor)
	posGroup := protected.Group("/pos", salesRoles)
	posHandler := NewPOSHandler(deps.CheckoutUC, deps.Receipt)
	posGroup.Post("/checkout", posHandler.Checkout)
	posGroup.Get("/sales/:id", posHandler.GetSale)
	posGroup.Get("/sales/:id/receipt", posHandler.GetReceipt)

	// Suppliers (admin/bodeguero)
	suppliers := protected.Group("/suppliers", stockRoles)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Purchase orders (admin/bodeguero)
	purchases := protected.Group("/purchase-orders", stockRoles)
	purchaseHandler := NewPurchaseHandler(deps.PurchasingUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard (todos los roles autenticados)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)

	// Websocket de eventos de inventario
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/inventory", websocket.New(func(conn *websocket.Conn) {
			deps.Hub.Register <- conn
			defer func() { deps.Hub.Unregister <- conn }()
			for {
				// Solo difusión servidor -> cliente; leer detecta la desconexión.
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
	}
}
