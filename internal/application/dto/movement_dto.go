package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=entrada salida"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"required,min=1,max=500"`
}

// MovementResponse salida de un movimiento del log.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
}

// RecordMovementResponse confirma el registro e indica si el stock fue ajustado.
// StockApplied es false cuando el producto referenciado no existe: el movimiento
// queda en el log como registro de auditoría pero ningún stock cambió.
type RecordMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	StockApplied bool             `json:"stock_applied"`
	// NewStock solo viene cuando StockApplied es true.
	NewStock *int64 `json:"new_stock,omitempty"`
}

// MovementListResponse lista paginada de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
