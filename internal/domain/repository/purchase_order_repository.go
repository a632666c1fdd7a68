package repository

import (
	"time"

	"inventario-pos/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas.
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	// UpdateStatus cambia el estado solo si la orden sigue en fromStatus (comparar
	// y cambiar en una sola operación). Devuelve false sin error si la orden no
	// existe o su estado ya cambió. receivedAt solo se escribe al recibir.
	UpdateStatus(id, fromStatus, toStatus string, receivedAt *time.Time, now time.Time) (bool, error)
}
