package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/internal/application/pos"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/infrastructure/memory"
)

func newCheckout(t *testing.T, products ...*entity.Product) (*pos.CheckoutUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, p := range products {
		require.NoError(t, store.Products().Create(p))
	}
	uc := pos.NewCheckoutUseCase(memory.NewTxRunner(store), store.Products(), store.Sales(), nil)
	return uc, store
}

func producto(id string, price float64, stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, SKU: "PRD-" + id, Name: "Producto " + id,
		Category: "Pruebas", Price: decimal.NewFromFloat(price),
		Stock: stock, MinStock: 2,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestCheckout_EmiteUnaSalidaPorLinea(t *testing.T) {
	uc, store := newCheckout(t, producto("1", 100, 10), producto("2", 50, 4))

	sale, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines: []pos.CartLine{
			{ProductID: "1", Quantity: 2},
			{ProductID: "2", Quantity: 1},
		},
		PaymentMethod: entity.PaymentTarjeta,
		UserID:        "u2",
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	// Subtotal 250, IVA 21% 52.50, total 302.50.
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(250)), sale.Subtotal.String())
	assert.True(t, sale.Tax.Equal(decimal.NewFromFloat(52.5)), sale.Tax.String())
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(302.5)), sale.Total.String())

	// El stock bajó vía ledger y el log tiene un movimiento por línea.
	p1, _ := store.Products().GetByID("1")
	p2, _ := store.Products().GetByID("2")
	assert.EqualValues(t, 8, p1.Stock)
	assert.EqualValues(t, 3, p2.Stock)

	movs, err := store.Movements().List("", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeSalida, m.Type)
		assert.Equal(t, "Venta POS - Pago con tarjeta", m.Reason)
		assert.Equal(t, "u2", m.UserID)
	}
}

func TestCheckout_RecortaCantidadAlStockDisponible(t *testing.T) {
	uc, store := newCheckout(t, producto("1", 10, 3))

	sale, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 99}},
		PaymentMethod: entity.PaymentTarjeta,
		UserID:        "u2",
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.EqualValues(t, 3, sale.Items[0].Quantity)

	p, _ := store.Products().GetByID("1")
	assert.EqualValues(t, 0, p.Stock)
}

func TestCheckout_LineasSinStockSeDescartan(t *testing.T) {
	uc, _ := newCheckout(t, producto("1", 10, 0))

	_, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 2}},
		PaymentMethod: entity.PaymentTarjeta,
		UserID:        "u2",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_EfectivoInsuficiente(t *testing.T) {
	uc, store := newCheckout(t, producto("1", 100, 5))

	_, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 1}},
		PaymentMethod: entity.PaymentEfectivo,
		CashReceived:  decimal.NewFromInt(100), // total es 121
		UserID:        "u2",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientCash)

	// Nada se cobró ni se movió.
	p, _ := store.Products().GetByID("1")
	assert.EqualValues(t, 5, p.Stock)
	movs, _ := store.Movements().List("", 10, 0)
	assert.Empty(t, movs)
}

func TestCheckout_EfectivoConCambio(t *testing.T) {
	uc, _ := newCheckout(t, producto("1", 100, 5))

	sale, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 1}},
		PaymentMethod: entity.PaymentEfectivo,
		CashReceived:  decimal.NewFromInt(150),
		UserID:        "u2",
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(121)), sale.Total.String())
	assert.True(t, sale.Change.Equal(decimal.NewFromInt(29)), sale.Change.String())
}

func TestCheckout_ProductoFueraDeCatalogo(t *testing.T) {
	uc, _ := newCheckout(t, producto("1", 100, 5))

	_, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "99", Quantity: 1}},
		PaymentMethod: entity.PaymentTarjeta,
		UserID:        "u2",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_MetodoDePagoInvalido(t *testing.T) {
	uc, _ := newCheckout(t, producto("1", 100, 5))

	_, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 1}},
		PaymentMethod: "cheque",
		UserID:        "u2",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_VentaQuedaPersistida(t *testing.T) {
	uc, _ := newCheckout(t, producto("1", 100, 5))

	sale, err := uc.Checkout(context.Background(), pos.CheckoutInput{
		Lines:         []pos.CartLine{{ProductID: "1", Quantity: 2}},
		PaymentMethod: entity.PaymentTarjeta,
		UserID:        "u2",
	})
	require.NoError(t, err)

	got, err := uc.GetSale(sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sale.ID, got.ID)
	assert.Len(t, got.Items, 1)
	assert.True(t, got.Total.Equal(sale.Total))
}
