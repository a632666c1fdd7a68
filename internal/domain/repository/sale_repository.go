package repository

import "inventario-pos/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas del punto de venta.
type SaleRepository interface {
	// Create persiste la venta y sus líneas.
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas.
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
