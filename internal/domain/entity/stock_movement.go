package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// ValidMovementType indica si el tipo es uno de los dos enumerados.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// StockMovement representa un movimiento de inventario (entrada o salida).
// Es un registro inmutable: una vez creado nunca se actualiza ni se elimina.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada | salida
	Quantity  int64  // siempre positiva; el signo lo da Type
	Reason    string
	Date      time.Time // asignada por el ledger, no por el caller
	UserID    string
}

// Delta devuelve el cambio de stock que implica el movimiento:
// +Quantity para entrada, -Quantity para salida.
func (m *StockMovement) Delta() int64 {
	if m.Type == MovementTypeSalida {
		return -m.Quantity
	}
	return m.Quantity
}
