package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Stock es un valor derivado: su único camino de mutación legítimo es el libro
// de movimientos (ledger). Las actualizaciones genéricas de producto nunca lo tocan.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Stock       int64           // existencia actual, puede quedar negativa
	MinStock    int64           // umbral de reorden
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
