package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusPendiente = "pendiente"
	PurchaseStatusRecibida  = "recibida"
	PurchaseStatusCancelada = "cancelada"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Al recibirla, cada línea genera un movimiento de entrada en el ledger.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     string // pendiente | recibida | cancelada
	Items      []PurchaseOrderItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReceivedAt *time.Time
}

// PurchaseOrderItem es una línea de la orden: producto, cantidad y costo unitario.
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// Total devuelve el costo total de la orden (Σ cantidad * costo unitario).
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitCost.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
