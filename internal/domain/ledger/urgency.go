// Package ledger contiene los servicios de dominio del libro de inventario:
// la regla de stock bajo y el orden de urgencia de reposición.
package ledger

import (
	"math"

	"inventario-pos/internal/domain/entity"
)

// IsLowStock indica si un producto está en o por debajo de su umbral de reorden.
func IsLowStock(p *entity.Product) bool {
	return p.Stock <= p.MinStock
}

// UrgencyRatio devuelve stock/minStock como medida de urgencia (menor = más urgente).
//
// Convención para MinStock == 0 (la división no está definida): agotado o en
// negativo la razón es 0 (máxima urgencia); con existencias la razón es +Inf,
// el producto nunca cuenta como urgente.
func UrgencyRatio(p *entity.Product) float64 {
	if p.MinStock == 0 {
		if p.Stock <= 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(p.Stock) / float64(p.MinStock)
}

// MoreUrgent define el orden total del listado de stock bajo: razón de urgencia
// ascendente; a igual razón, mayor déficit absoluto (minStock - stock) primero;
// último desempate por SKU ascendente para que el orden sea determinista.
func MoreUrgent(a, b *entity.Product) bool {
	ra, rb := UrgencyRatio(a), UrgencyRatio(b)
	if ra != rb {
		return ra < rb
	}
	defA := a.MinStock - a.Stock
	defB := b.MinStock - b.Stock
	if defA != defB {
		return defA > defB
	}
	return a.SKU < b.SKU
}
