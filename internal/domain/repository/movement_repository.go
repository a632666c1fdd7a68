package repository

import (
	"time"

	"inventario-pos/internal/domain/entity"
)

// MovementRepository puerto de persistencia para el log de movimientos.
// El log es append-only: no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve movimientos ordenados por fecha descendente; a igual fecha,
	// por orden de inserción. productID vacío lista todos.
	List(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// CountSince cuenta movimientos con fecha >= t.
	CountSince(t time.Time) (int, error)
}
