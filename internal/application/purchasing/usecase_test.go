package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/purchasing"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/infrastructure/memory"
)

func newPurchasing(t *testing.T) (*purchasing.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{
		ID: "s1", Name: "Proveedor Uno", Email: "uno@proveedor.com",
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "1", SKU: "PRD-1", Name: "Producto 1", Category: "Pruebas",
		Price: decimal.NewFromInt(10), Stock: 5, MinStock: 2,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "2", SKU: "PRD-2", Name: "Producto 2", Category: "Pruebas",
		Price: decimal.NewFromInt(20), Stock: 0, MinStock: 2,
		CreatedAt: now, UpdatedAt: now,
	}))
	uc := purchasing.NewUseCase(
		memory.NewTxRunner(store),
		store.PurchaseOrders(),
		store.Suppliers(),
		store.Products(),
		nil,
	)
	return uc, store
}

func ordenDemo() dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		SupplierID: "s1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "1", Quantity: 10, UnitCost: decimal.NewFromFloat(7.5)},
			{ProductID: "2", Quantity: 3, UnitCost: decimal.NewFromInt(15)},
		},
	}
}

func TestCreate_OrdenPendienteConTotal(t *testing.T) {
	uc, _ := newPurchasing(t)

	order, err := uc.Create("u1", ordenDemo())
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPendiente, order.Status)
	assert.Len(t, order.Items, 2)
	// 10*7.50 + 3*15 = 120
	assert.True(t, order.Total.Equal(decimal.NewFromInt(120)), order.Total.String())
	assert.Equal(t, "u1", order.CreatedBy)
	assert.Nil(t, order.ReceivedAt)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	uc, _ := newPurchasing(t)

	req := ordenDemo()
	req.SupplierID = "s99"
	_, err := uc.Create("u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ProductoFueraDeCatalogo(t *testing.T) {
	uc, _ := newPurchasing(t)

	req := ordenDemo()
	req.Items[0].ProductID = "99"
	_, err := uc.Create("u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_GeneraUnaEntradaPorLinea(t *testing.T) {
	uc, store := newPurchasing(t)

	order, err := uc.Create("u1", ordenDemo())
	require.NoError(t, err)

	received, err := uc.Receive(context.Background(), order.ID, "u3")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusRecibida, received.Status)
	require.NotNil(t, received.ReceivedAt)

	// El stock subió vía ledger.
	p1, _ := store.Products().GetByID("1")
	p2, _ := store.Products().GetByID("2")
	assert.EqualValues(t, 15, p1.Stock)
	assert.EqualValues(t, 3, p2.Stock)

	movs, err := store.Movements().List("", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeEntrada, m.Type)
		assert.Contains(t, m.Reason, order.ID)
		assert.Equal(t, "u3", m.UserID)
	}
}

func TestReceive_SoloUnaVez(t *testing.T) {
	uc, store := newPurchasing(t)

	order, err := uc.Create("u1", ordenDemo())
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), order.ID, "u3")
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), order.ID, "u3")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Sin doble entrada.
	movs, _ := store.Movements().List("", 10, 0)
	assert.Len(t, movs, 2)
}

func TestReceive_ConcurrenteAplicaUnaSolaVez(t *testing.T) {
	uc, store := newPurchasing(t)

	order, err := uc.Create("u1", ordenDemo())
	require.NoError(t, err)

	// Dos recepciones simultáneas de la misma orden: la transición condicional
	// de estado dentro de la transacción deja pasar exactamente a una.
	start := make(chan struct{})
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, err := uc.Receive(context.Background(), order.ID, "u3")
			errs <- err
		}()
	}
	close(start)

	var oks, conflictos int
	for i := 0; i < 2; i++ {
		err := <-errs
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrConflict):
			conflictos++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, conflictos)

	// Una sola tanda de entradas y el stock aplicado una vez.
	movs, err := store.Movements().List("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	p1, _ := store.Products().GetByID("1")
	p2, _ := store.Products().GetByID("2")
	assert.EqualValues(t, 15, p1.Stock)
	assert.EqualValues(t, 3, p2.Stock)
}

func TestCancel_SoloPendientes(t *testing.T) {
	uc, _ := newPurchasing(t)

	order, err := uc.Create("u1", ordenDemo())
	require.NoError(t, err)

	cancelled, err := uc.Cancel(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelada, cancelled.Status)

	// Una orden cancelada ya no se puede recibir.
	_, err = uc.Receive(context.Background(), order.ID, "u3")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestList_DevuelveOrdenesPaginadas(t *testing.T) {
	uc, _ := newPurchasing(t)

	for i := 0; i < 3; i++ {
		_, err := uc.Create("u1", ordenDemo())
		require.NoError(t, err)
	}

	list, err := uc.List(dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Limit)
}
