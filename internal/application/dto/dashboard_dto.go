package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse resumen para la vista principal del dashboard.
type DashboardSummaryResponse struct {
	TotalProducts   int                    `json:"total_products"`
	InventoryValue  decimal.Decimal        `json:"inventory_value"` // Σ precio * stock
	LowStockCount   int                    `json:"low_stock_count"`
	MovementsToday  int                    `json:"movements_today"`
	RecentMovements []MovementResponse     `json:"recent_movements"` // 5 más recientes
	LowStock        []LowStockItemResponse `json:"low_stock"`        // orden de urgencia
}
