package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/domain/repository"
)

// DashboardUseCase arma el resumen de la vista principal: totales del catálogo,
// valor del inventario, actividad del día y los avisos de stock bajo.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	queries     *ledger.QueryUseCase
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	queries *ledger.QueryUseCase,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		queries:     queries,
	}
}

const recentMovementsLimit = 5

// Summary calcula el resumen completo en el momento de la consulta.
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummaryResponse, error) {
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}

	value, err := uc.inventoryValue()
	if err != nil {
		return nil, err
	}

	// Movimientos desde la medianoche local.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := uc.movRepo.CountSince(midnight)
	if err != nil {
		return nil, err
	}

	recent, err := uc.queries.ListMovements("", dto.PageRequest{Limit: recentMovementsLimit})
	if err != nil {
		return nil, err
	}

	lowStock, err := uc.queries.LowStock()
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryResponse{
		TotalProducts:   total,
		InventoryValue:  value,
		LowStockCount:   len(lowStock),
		MovementsToday:  today,
		RecentMovements: recent.Items,
		LowStock:        lowStock,
	}, nil
}

// inventoryValue suma precio * stock de todo el catálogo. El stock negativo
// resta: refleja compromisos de venta aún no repuestos.
func (uc *DashboardUseCase) inventoryValue() (decimal.Decimal, error) {
	value := decimal.Zero
	const batch = 200
	for offset := 0; ; offset += batch {
		products, err := uc.productRepo.List(batch, offset)
		if err != nil {
			return decimal.Zero, err
		}
		if len(products) == 0 {
			return value, nil
		}
		for _, p := range products {
			value = value.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
		}
		if len(products) < batch {
			return value, nil
		}
	}
}
