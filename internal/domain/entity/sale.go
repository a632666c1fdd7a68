package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago del punto de venta.
const (
	PaymentEfectivo = "efectivo"
	PaymentTarjeta  = "tarjeta"
)

// TaxRate IVA aplicado en el checkout (21%).
var TaxRate = decimal.NewFromFloat(0.21)

// Sale representa una venta completada en el punto de venta.
// Cada línea vendida genera un movimiento de salida en el ledger.
type Sale struct {
	ID            string
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string // efectivo | tarjeta
	CashReceived  decimal.Decimal
	Change        decimal.Decimal
	UserID        string
	CreatedAt     time.Time
}

// SaleItem es una línea de la venta con el precio congelado al momento del cobro.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// LineTotal devuelve cantidad * precio unitario.
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
