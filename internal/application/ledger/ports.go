package ledger

import (
	"context"

	"inventario-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el par "anexar movimiento + ajustar stock" sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// EventPublisher recibe el evento de cada movimiento registrado (para el hub de
// websockets u otros consumidores). Las implementaciones no deben bloquear.
type EventPublisher interface {
	PublishMovement(ev MovementEvent)
}

// MovementEvent evento emitido tras registrar un movimiento.
type MovementEvent struct {
	MovementID string `json:"movement_id"`
	ProductID  string `json:"product_id"`
	Type       string `json:"type"`
	Quantity   int64  `json:"quantity"`
	// StockApplied es false cuando el producto no existe y el movimiento
	// quedó solo como registro de auditoría.
	StockApplied bool   `json:"stock_applied"`
	NewStock     *int64 `json:"new_stock,omitempty"`
	LowStock     bool   `json:"low_stock"`
}
