package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Stock aquí es la existencia inicial; después de la creación solo se mueve por el ledger.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock" validate:"min=0"`
	MinStock    int64           `json:"min_stock" validate:"min=0"`
	Image       string          `json:"image" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Sin Stock: el stock solo se mueve registrando movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *int64           `json:"min_stock" validate:"omitempty,min=0"`
	Image       *string          `json:"image" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LowStockItemResponse producto bajo umbral con su razón de urgencia.
type LowStockItemResponse struct {
	ProductResponse
	// UrgencyRatio es stock/min_stock; null representa la convención "sin mínimo
	// con existencias" (nunca urgente).
	UrgencyRatio *float64 `json:"urgency_ratio"`
}
