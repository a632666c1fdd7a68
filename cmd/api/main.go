package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"inventario-pos/internal/application/auth"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/application/pos"
	"inventario-pos/internal/application/purchasing"
	"inventario-pos/internal/application/usecase"
	"inventario-pos/internal/domain/repository"
	"inventario-pos/internal/infrastructure/memory"
	infrapdf "inventario-pos/internal/infrastructure/pdf"
	"inventario-pos/internal/infrastructure/postgres"
	httpRouter "inventario-pos/internal/interfaces/http"
	"inventario-pos/internal/ws"
	"inventario-pos/pkg/config"
	"inventario-pos/pkg/logger"
)

// repos agrupa los puertos de persistencia más el runner transaccional,
// sea cual sea el backend (PostgreSQL o memoria en modo demo).
type repos struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	suppliers repository.SupplierRepository
	orders    repository.PurchaseOrderRepository
	users     repository.UserRepository
	sales     repository.SaleRepository

	ledgerTx   ledger.TxRunner
	saleTx     pos.TxRunner
	purchaseTx purchasing.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	if cfg.App.DemoMode() {
		store := memory.NewStore()
		if err := memory.Seed(store); err != nil {
			log.Fatal().Err(err).Msg("cargar datos demo")
		}
		tx := memory.NewTxRunner(store)
		r = repos{
			products: store.Products(), movements: store.Movements(),
			suppliers: store.Suppliers(), orders: store.PurchaseOrders(),
			users: store.Users(), sales: store.Sales(),
			ledgerTx: tx, saleTx: tx, purchaseTx: tx,
		}
		log.Info().Msg("modo demo: almacén en memoria con datos de muestra")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx := postgres.NewTxRunner(pool)
		r = repos{
			products: postgres.NewProductRepository(pool), movements: postgres.NewMovementRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool), orders: postgres.NewPurchaseOrderRepository(pool),
			users: postgres.NewUserRepository(pool), sales: postgres.NewSaleRepository(pool),
			ledgerTx: tx, saleTx: tx, purchaseTx: tx,
		}
	}

	// Hub de websockets: difunde cada movimiento al dashboard.
	hub := ws.NewHub(log.Zerolog())
	go hub.Run()
	publisher := ws.NewPublisher(hub, log.Zerolog())

	queries := ledger.NewQueryUseCase(r.movements, r.products)
	recordMovementUC := ledger.NewRecordMovementUseCase(r.ledgerTx, publisher)
	checkoutUC := pos.NewCheckoutUseCase(r.saleTx, r.products, r.sales, publisher)
	purchasingUC := purchasing.NewUseCase(r.purchaseTx, r.orders, r.suppliers, r.products, publisher)
	authUC := auth.NewUseCase(r.users, auth.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(r.products),
		SupplierUC:     usecase.NewSupplierUseCase(r.suppliers),
		UserUC:         usecase.NewUserUseCase(r.users),
		DashboardUC:    usecase.NewDashboardUseCase(r.products, r.movements, queries),
		RecordMovement: recordMovementUC,
		LedgerQueries:  queries,
		CheckoutUC:     checkoutUC,
		PurchasingUC:   purchasingUC,
		Receipt:        infrapdf.NewReceiptGenerator(cfg.App.Name),
		Hub:            hub,
		JWTSecret:      cfg.JWT.Secret,
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
