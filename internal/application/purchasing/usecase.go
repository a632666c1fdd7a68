// Package purchasing gestiona órdenes de compra a proveedores. Recibir una orden
// pendiente genera una entrada en el ledger por cada línea, en una sola transacción.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/domain/repository"
)

// TxRunner transacción de recepción: cambio de estado + movimientos en un commit.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// UseCase casos de uso de órdenes de compra.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	publisher    ledger.EventPublisher
}

// NewUseCase construye el caso de uso. publisher puede ser nil.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	publisher ledger.EventPublisher,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		publisher:    publisher,
	}
}

// Create registra una orden pendiente contra un proveedor existente.
// Cada línea debe referir un producto del catálogo.
func (uc *UseCase) Create(userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseStatusPendiente,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, it := range in.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (uc *UseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// List devuelve órdenes paginadas, más recientes primero.
func (uc *UseCase) List(page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Receive marca la orden como recibida y emite una entrada por línea.
// Solo órdenes pendientes pueden recibirse.
func (uc *UseCase) Receive(ctx context.Context, id, userID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.PurchaseStatusPendiente {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	var results []*ledger.Result
	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		// La transición condicional dentro de la transacción decide quién recibe:
		// si otra recepción ganó entre la lectura y este punto, aquí se corta
		// antes de emitir ningún movimiento.
		ok, err := orderRepo.UpdateStatus(id, entity.PurchaseStatusPendiente, entity.PurchaseStatusRecibida, &now, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		for _, item := range order.Items {
			res, err := ledger.ApplyMovement(movRepo, productRepo, ledger.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeEntrada,
				Quantity:  item.Quantity,
				Reason:    fmt.Sprintf("Recepción orden de compra %s", order.ID),
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAll(results)

	order.Status = entity.PurchaseStatusRecibida
	order.ReceivedAt = &now
	order.UpdatedAt = now
	return toOrderResponse(order), nil
}

// Cancel cancela una orden pendiente; las recibidas no se pueden cancelar.
func (uc *UseCase) Cancel(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	ok, err := uc.orderRepo.UpdateStatus(id, entity.PurchaseStatusPendiente, entity.PurchaseStatusCancelada, nil, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConflict
	}
	order.Status = entity.PurchaseStatusCancelada
	order.UpdatedAt = now
	return toOrderResponse(order), nil
}

func (uc *UseCase) publishAll(results []*ledger.Result) {
	if uc.publisher == nil {
		return
	}
	for _, res := range results {
		ev := ledger.MovementEvent{
			MovementID:   res.Movement.ID,
			ProductID:    res.Movement.ProductID,
			Type:         res.Movement.Type,
			Quantity:     res.Movement.Quantity,
			StockApplied: res.Applied,
			LowStock:     res.Applied && res.Low,
		}
		if res.Applied {
			stock := res.NewStock
			ev.NewStock = &stock
		}
		uc.publisher.PublishMovement(ev)
	}
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Status:     o.Status,
		Total:      o.Total(),
		CreatedBy:  o.CreatedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		ReceivedAt: o.ReceivedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return resp
}
