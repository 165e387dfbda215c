package models

import "github.com/shopspring/decimal"

// StockStatus classifies an ingredient's stock position relative to its safety level.
type StockStatus string

const (
	StockStatusCritical  StockStatus = "critical"
	StockStatusLow       StockStatus = "low"
	StockStatusNormal    StockStatus = "normal"
	StockStatusOverstock StockStatus = "overstock"
)

// InventoryItem captures one ingredient (or packaging material) tracked by the factory.
type InventoryItem struct {
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CurrentStock int             `json:"current_stock"`
	SafetyStock  int             `json:"safety_stock"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LeadTimeDays int             `json:"lead_time_days"`
}

// StockValue returns the capital tied up in this item (current stock * unit cost).
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

// StockRatio is current stock expressed as a multiple of the safety level.
func (i InventoryItem) StockRatio() float64 {
	if i.SafetyStock == 0 {
		return 0
	}
	return float64(i.CurrentStock) / float64(i.SafetyStock)
}

// IsBelowSafety reports whether the item has fallen under its safety stock.
func (i InventoryItem) IsBelowSafety() bool {
	return i.CurrentStock < i.SafetyStock
}

// HeatmapStatus bands an item for the stock status heatmap: critical under
// safety level, low under 1.5x, normal otherwise.
func (i InventoryItem) HeatmapStatus() StockStatus {
	ratio := i.StockRatio()
	switch {
	case ratio >= 1.5:
		return StockStatusNormal
	case ratio >= 1.0:
		return StockStatusLow
	default:
		return StockStatusCritical
	}
}

// HealthStatus bands an item for the inventory health breakdown, where
// anything above twice the safety level counts as overstock.
func (i InventoryItem) HealthStatus() StockStatus {
	switch {
	case i.CurrentStock < i.SafetyStock:
		return StockStatusLow
	case i.CurrentStock > i.SafetyStock*2:
		return StockStatusOverstock
	default:
		return StockStatusNormal
	}
}
