package ledger

import (
	"math"
	"sort"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/domain/entity"
	domledger "inventario-pos/internal/domain/ledger"
	"inventario-pos/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro: historial de movimientos
// y listado de stock bajo. Usa repositorios atados al pool (sin transacción).
type QueryUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(movRepo repository.MovementRepository, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListMovements devuelve movimientos más recientes primero; a igual fecha, en
// orden de inserción. productID vacío lista el log completo.
func (uc *QueryUseCase) ListMovements(productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movs, err := uc.movRepo.List(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock devuelve los productos con stock <= min_stock en orden de urgencia:
// razón stock/min_stock ascendente, mayor déficit primero a igual razón, SKU
// como último desempate.
func (uc *QueryUseCase) LowStock() ([]dto.LowStockItemResponse, error) {
	products, err := uc.productRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return domledger.MoreUrgent(products[i], products[j])
	})
	items := make([]dto.LowStockItemResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toLowStockItem(p))
	}
	return items, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Date:      m.Date,
		UserID:    m.UserID,
	}
}

func toLowStockItem(p *entity.Product) dto.LowStockItemResponse {
	item := dto.LowStockItemResponse{
		ProductResponse: dto.ProductResponse{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		},
	}
	ratio := domledger.UrgencyRatio(p)
	if !math.IsInf(ratio, 1) {
		item.UrgencyRatio = &ratio
	}
	return item
}
