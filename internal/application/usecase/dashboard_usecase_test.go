package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/application/usecase"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/infrastructure/memory"
)

func TestDashboardSummary(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	alta := func(id string, price float64, stock, minStock int64) {
		require.NoError(t, store.Products().Create(&entity.Product{
			ID: id, SKU: "PRD-" + id, Name: "Producto " + id, Category: "Pruebas",
			Price: decimal.NewFromFloat(price), Stock: stock, MinStock: minStock,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	alta("1", 100, 10, 5) // valor 1000
	alta("2", 50, 2, 5)   // valor 100, stock bajo
	alta("3", 10, -3, 0)  // valor -30, stock bajo (negativo)

	rec := ledger.NewRecordMovementUseCase(memory.NewTxRunner(store), nil)
	for i := 0; i < 3; i++ {
		_, err := rec.RecordMovement(context.Background(), ledger.MovementInput{
			ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "x", UserID: "u1",
		})
		require.NoError(t, err)
	}

	queries := ledger.NewQueryUseCase(store.Movements(), store.Products())
	dash := usecase.NewDashboardUseCase(store.Products(), store.Movements(), queries)

	sum, err := dash.Summary()
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalProducts)
	// 100*13 + 50*2 + 10*(-3) = 1370 (las tres entradas subieron el stock de "1").
	assert.True(t, sum.InventoryValue.Equal(decimal.NewFromInt(1370)), sum.InventoryValue.String())
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, 3, sum.MovementsToday)
	assert.Len(t, sum.RecentMovements, 3)
	require.Len(t, sum.LowStock, 2)
	ids := []string{sum.LowStock[0].ID, sum.LowStock[1].ID}
	assert.Contains(t, ids, "2")
	assert.Contains(t, ids, "3")
}

func TestDashboardSummary_CatalogoVacio(t *testing.T) {
	store := memory.NewStore()
	queries := ledger.NewQueryUseCase(store.Movements(), store.Products())
	dash := usecase.NewDashboardUseCase(store.Products(), store.Movements(), queries)

	sum, err := dash.Summary()
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalProducts)
	assert.True(t, sum.InventoryValue.IsZero())
	assert.Equal(t, 0, sum.LowStockCount)
	assert.Empty(t, sum.RecentMovements)
	assert.Empty(t, sum.LowStock)
}

func TestDashboard_MovimientosRecientesLimitadosACinco(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "1", SKU: "PRD-1", Name: "Producto 1", Category: "Pruebas",
		Price: decimal.NewFromInt(10), Stock: 100, MinStock: 1,
		CreatedAt: now, UpdatedAt: now,
	}))

	rec := ledger.NewRecordMovementUseCase(memory.NewTxRunner(store), nil)
	for i := 0; i < 8; i++ {
		_, err := rec.RecordMovement(context.Background(), ledger.MovementInput{
			ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 1, Reason: "x", UserID: "u1",
		})
		require.NoError(t, err)
	}

	queries := ledger.NewQueryUseCase(store.Movements(), store.Products())
	dash := usecase.NewDashboardUseCase(store.Products(), store.Movements(), queries)

	sum, err := dash.Summary()
	require.NoError(t, err)
	assert.Len(t, sum.RecentMovements, 5)
	assert.Equal(t, 8, sum.MovementsToday)
}
