package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest línea del carrito: producto y cantidad deseada.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest body para POST /api/pos/checkout.
// CashReceived solo aplica con pago en efectivo.
type CheckoutRequest struct {
	Items         []CartLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=efectivo tarjeta"`
	CashReceived  decimal.Decimal   `json:"cash_received"`
}

// SaleItemResponse línea de la venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CashReceived  decimal.Decimal    `json:"cash_received,omitempty"`
	Change        decimal.Decimal    `json:"change,omitempty"`
	UserID        string             `json:"user_id"`
	CreatedAt     time.Time          `json:"created_at"`
}
