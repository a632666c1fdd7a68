package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/domain/repository"
	"inventario-pos/internal/infrastructure/memory"
)

func newLedger(t *testing.T, products ...*entity.Product) (*ledger.RecordMovementUseCase, *ledger.QueryUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, p := range products {
		require.NoError(t, store.Products().Create(p))
	}
	rec := ledger.NewRecordMovementUseCase(memory.NewTxRunner(store), nil)
	q := ledger.NewQueryUseCase(store.Movements(), store.Products())
	return rec, q, store
}

func producto(id string, stock, minStock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, SKU: "PRD-" + id, Name: "Producto " + id,
		Category: "Pruebas", Price: decimal.NewFromInt(10),
		Stock: stock, MinStock: minStock,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestRecordMovement_EntradaYSalidaAjustanStock(t *testing.T) {
	rec, _, store := newLedger(t, producto("1", 15, 5))
	ctx := context.Background()

	res, err := rec.RecordMovement(ctx, ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 10, Reason: "Compra", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.EqualValues(t, 25, res.NewStock)

	// Salida mayor que la existencia: no hay piso, el stock queda negativo.
	res, err = rec.RecordMovement(ctx, ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 30, Reason: "Venta", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.EqualValues(t, -5, res.NewStock)

	p, err := store.Products().GetByID("1")
	require.NoError(t, err)
	assert.EqualValues(t, -5, p.Stock)
}

func TestRecordMovement_SumaDeDeltasDesdeStockInicial(t *testing.T) {
	// stock final == s0 + Σ entradas − Σ salidas para cualquier secuencia.
	rec, _, store := newLedger(t, producto("1", 100, 5))
	ctx := context.Background()

	seq := []struct {
		tipo string
		qty  int64
	}{
		{entity.MovementTypeEntrada, 7},
		{entity.MovementTypeSalida, 3},
		{entity.MovementTypeSalida, 50},
		{entity.MovementTypeEntrada, 1},
		{entity.MovementTypeSalida, 60},
		{entity.MovementTypeEntrada, 12},
	}
	expected := int64(100)
	for _, mv := range seq {
		_, err := rec.RecordMovement(ctx, ledger.MovementInput{
			ProductID: "1", Type: mv.tipo, Quantity: mv.qty, Reason: "x", UserID: "u1",
		})
		require.NoError(t, err)
		if mv.tipo == entity.MovementTypeEntrada {
			expected += mv.qty
		} else {
			expected -= mv.qty
		}
	}

	p, err := store.Products().GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, expected, p.Stock)
}

func TestRecordMovement_ProductoInexistenteQuedaSoloEnElLog(t *testing.T) {
	rec, q, store := newLedger(t, producto("1", 15, 5))
	ctx := context.Background()

	res, err := rec.RecordMovement(ctx, ledger.MovementInput{
		ProductID: "99", Type: entity.MovementTypeEntrada, Quantity: 5, Reason: "Ajuste", UserID: "u1",
	})
	require.NoError(t, err, "la política es de auditoría: sin error")
	assert.False(t, res.Applied)

	// El movimiento aparece en el log.
	list, err := q.ListMovements("99", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "99", list.Items[0].ProductID)

	// Ningún stock cambió.
	p, err := store.Products().GetByID("1")
	require.NoError(t, err)
	assert.EqualValues(t, 15, p.Stock)
}

func TestRecordMovement_EntradaInvalida(t *testing.T) {
	rec, _, _ := newLedger(t, producto("1", 15, 5))
	ctx := context.Background()

	casos := []ledger.MovementInput{
		{ProductID: "", Type: entity.MovementTypeEntrada, Quantity: 1},
		{ProductID: "1", Type: "ajuste", Quantity: 1},
		{ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 0},
		{ProductID: "1", Type: entity.MovementTypeSalida, Quantity: -4},
	}
	for _, in := range casos {
		_, err := rec.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRecordMovement_LedgerAsignaLaFecha(t *testing.T) {
	rec, q, _ := newLedger(t, producto("1", 15, 5))
	before := time.Now()

	res, err := rec.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "x", UserID: "u1",
	})
	require.NoError(t, err)
	assert.False(t, res.Movement.Date.Before(before))
	assert.False(t, res.Movement.Date.After(time.Now()))

	list, err := q.ListMovements("1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, res.Movement.ID, list.Items[0].ID)
}

func TestListMovements_MasRecientePrimeroYRepetible(t *testing.T) {
	rec, q, _ := newLedger(t, producto("1", 15, 5))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := rec.RecordMovement(ctx, ledger.MovementInput{
			ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: int64(i + 1), Reason: "x", UserID: "u1",
		})
		require.NoError(t, err)
	}

	first, err := q.ListMovements("1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, first.Items, 5)
	for i := 0; i < len(first.Items)-1; i++ {
		assert.False(t, first.Items[i].Date.Before(first.Items[i+1].Date),
			"el orden debe ser fecha descendente")
	}

	// Sin escrituras intermedias la consulta es idempotente.
	second, err := q.ListMovements("1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)
}

func TestRecordMovement_ElLogEsAppendOnly(t *testing.T) {
	rec, q, _ := newLedger(t, producto("1", 15, 5))
	ctx := context.Background()

	_, err := rec.RecordMovement(ctx, ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 3, Reason: "primero", UserID: "u1",
	})
	require.NoError(t, err)

	before, err := q.ListMovements("1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, before.Items, 1)
	original := before.Items[0]

	_, err = rec.RecordMovement(ctx, ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 1, Reason: "segundo", UserID: "u1",
	})
	require.NoError(t, err)

	after, err := q.ListMovements("1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, after.Items, 2)
	// El registro previo sigue intacto.
	assert.Equal(t, original, after.Items[1])
}

// lectorDesfasadoRepo simula un escritor que ajusta el stock justo después de la
// lectura del producto, como puede pasar entre transacciones concurrentes.
type lectorDesfasadoRepo struct {
	repository.ProductRepository
	deltaIntercalado int64
}

func (r *lectorDesfasadoRepo) GetByID(id string) (*entity.Product, error) {
	p, err := r.ProductRepository.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	_, err = r.ProductRepository.AdjustStock(id, r.deltaIntercalado, time.Now())
	return p, err
}

func TestApplyMovement_StockNuevoConEscritorIntercalado(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(producto("1", 10, 9)))
	productRepo := &lectorDesfasadoRepo{ProductRepository: store.Products(), deltaIntercalado: -5}

	res, err := ledger.ApplyMovement(store.Movements(), productRepo, ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 3, Reason: "x", UserID: "u1",
	}, time.Now())
	require.NoError(t, err)
	require.True(t, res.Applied)

	// 10 - 5 (intercalado) + 3 = 8; la lectura previa diría 13.
	assert.EqualValues(t, 8, res.NewStock)
	assert.True(t, res.Low, "8 <= 9 debe marcar stock bajo")

	p, err := store.Products().GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, res.NewStock, p.Stock)
}

type capturePublisher struct {
	events []ledger.MovementEvent
}

func (c *capturePublisher) PublishMovement(ev ledger.MovementEvent) {
	c.events = append(c.events, ev)
}

func TestRecordMovement_PublicaEventoConAvisoDeStockBajo(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(producto("1", 6, 5)))
	pub := &capturePublisher{}
	rec := ledger.NewRecordMovementUseCase(memory.NewTxRunner(store), pub)

	_, err := rec.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 2, Reason: "Venta", UserID: "u1",
	})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.True(t, ev.StockApplied)
	require.NotNil(t, ev.NewStock)
	assert.EqualValues(t, 4, *ev.NewStock)
	assert.True(t, ev.LowStock, "4 <= 5 debe marcar stock bajo")
}
