package models

import (
	"strings"
	"time"
)

// Volatility enumerates the demand-volatility profiles used when sizing safety stock.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// ParseVolatility derives a Volatility from free-form query input, defaulting to medium.
func ParseVolatility(value string) Volatility {
	switch Volatility(strings.TrimSpace(strings.ToLower(value))) {
	case VolatilityLow:
		return VolatilityLow
	case VolatilityHigh:
		return VolatilityHigh
	default:
		return VolatilityMedium
	}
}

// ForecastPoint is one forecast day with its confidence band.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Demand     float64   `json:"demand"`
	UpperBound float64   `json:"upper_bound"`
	LowerBound float64   `json:"lower_bound"`
}

// HistoryPoint is one observed demand day included alongside the forecast.
type HistoryPoint struct {
	Date   time.Time `json:"date"`
	Demand int       `json:"demand"`
}

// DemandForecast carries a product's demand history, projection and trend diagnostics.
type DemandForecast struct {
	ProductID int             `json:"product_id"`
	History   []HistoryPoint  `json:"history"`
	Forecast  []ForecastPoint `json:"forecast"`
	Trend     float64         `json:"trend"`
	AvgDemand float64         `json:"avg_demand"`
}

// ReorderAdvice is the reorder-point and order-sizing output for one item.
type ReorderAdvice struct {
	ProductID          int     `json:"product_id"`
	ReorderPoint       float64 `json:"reorder_point"`
	ReorderQuantity    float64 `json:"reorder_quantity"`
	EconomicOrderQty   float64 `json:"economic_order_qty"`
	PredictedDemand    float64 `json:"predicted_demand"`
	SafetyStock        int     `json:"safety_stock"`
	LeadTimeDays       int     `json:"lead_time_days"`
	CurrentStock       int     `json:"current_stock"`
	OptimizedSafety    int     `json:"optimized_safety_stock"`
	AssumedDailyDemand float64 `json:"assumed_daily_demand"`
}
