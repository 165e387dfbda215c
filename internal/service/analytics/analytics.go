// Package analytics aggregates the dataset into the per-page KPI blocks
// (overview, inventory, production lines) and provides the statistical
// tooling behind them: outlier detection, rolling statistics and the cost
// calculators.
package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
)

// HeadlineAnnualSavingsJOD is the fixed savings figure the overview page
// advertises.
const HeadlineAnnualSavingsJOD = 476564

// Heatmap layout: first 15 items on a 3x5 grid, names truncated to fit the
// cells.
const (
	heatmapSize     = 15
	displayNameRune = 18
)

// Output-trend baseline: units per hour with gaussian noise and a slow
// sinusoidal swing.
const (
	trendBaseUnits = 2500.0
	trendNoiseStd  = 150.0
	trendSwing     = 200.0
)

// Service aggregates dataset snapshots into dashboard page figures.
type Service struct {
	noise *jitter.Source
}

// NewService wires a new analytics service instance.
func NewService(noise *jitter.Source) *Service {
	return &Service{noise: noise}
}

// OverviewKPIs is the factory overview metric row.
type OverviewKPIs struct {
	FactoryRiskPct          float64         `json:"factory_risk_pct"`
	ProductionEfficiencyPct float64         `json:"production_efficiency_pct"`
	IngredientStabilityPct  float64         `json:"ingredient_stability_pct"`
	RobotHealthPct          float64         `json:"robot_health_pct"`
	AnnualSavingsJOD        decimal.Decimal `json:"annual_savings_jod"`
}

// KPIs computes the overview metric row. The risk score comes from the
// decision engine so both panels show the same figure.
func (s *Service) KPIs(ds *models.Dataset, riskScore float64) OverviewKPIs {
	var efficiency float64
	if len(ds.Operations) > 0 {
		rates := make([]float64, len(ds.Operations))
		for i, area := range ds.Operations {
			rates[i] = area.EfficiencyRate
		}
		efficiency, _ = stats.Mean(rates)
	}

	var stability float64
	if len(ds.Inventory) > 0 {
		var stable int
		for _, item := range ds.Inventory {
			if item.CurrentStock > item.SafetyStock {
				stable++
			}
		}
		stability = float64(stable) / float64(len(ds.Inventory)) * 100
	}

	var robotHealth float64
	if robots := ds.Robots(); len(robots) > 0 {
		rates := make([]float64, len(robots))
		for i, robot := range robots {
			rates[i] = float64(robot.ProductionRate)
		}
		robotHealth, _ = stats.Mean(rates)
	}

	return OverviewKPIs{
		FactoryRiskPct:          riskScore,
		ProductionEfficiencyPct: efficiency,
		IngredientStabilityPct:  stability,
		RobotHealthPct:          robotHealth,
		AnnualSavingsJOD:        decimal.NewFromInt(HeadlineAnnualSavingsJOD),
	}
}

// RiskDistribution buckets production lines by temperature for the overview
// pie: critical above 90, warning above 80, stable otherwise.
type RiskDistribution struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Stable   int `json:"stable"`
}

// Distribution counts machines per risk bucket.
func (s *Service) Distribution(machines []models.Machine) RiskDistribution {
	var dist RiskDistribution
	for _, m := range machines {
		switch {
		case m.Temperature > 90:
			dist.Critical++
		case m.Temperature > 80:
			dist.Warning++
		default:
			dist.Stable++
		}
	}
	return dist
}

// InsightCounts backs the overview insight panel.
type InsightCounts struct {
	ElevatedTemperatureLines int `json:"elevated_temperature_lines"`
	LowStockIngredients      int `json:"low_stock_ingredients"`
	BottleneckAreas          int `json:"bottleneck_areas"`
}

// Insights counts the findings the overview insight panel calls out.
func (s *Service) Insights(ds *models.Dataset) InsightCounts {
	var counts InsightCounts
	for _, m := range ds.Machines {
		if m.Temperature > 80 {
			counts.ElevatedTemperatureLines++
		}
	}
	for _, item := range ds.Inventory {
		if item.IsBelowSafety() {
			counts.LowStockIngredients++
		}
	}
	for _, area := range ds.Operations {
		if area.Utilization > 85 {
			counts.BottleneckAreas++
		}
	}
	return counts
}

// InventorySummary is the ingredients page metric row plus the health pie.
type InventorySummary struct {
	TotalStockValueJOD decimal.Decimal            `json:"total_stock_value_jod"`
	CarryingCostJOD    decimal.Decimal            `json:"carrying_cost_jod"`
	LowStockItems      int                        `json:"low_stock_items"`
	OverstockItems     int                        `json:"overstock_items"`
	StatusBreakdown    map[models.StockStatus]int `json:"status_breakdown"`
}

// Inventory aggregates the ingredients page headline figures.
func (s *Service) Inventory(items []models.InventoryItem) InventorySummary {
	summary := InventorySummary{
		TotalStockValueJOD: decimal.Zero,
		StatusBreakdown:    make(map[models.StockStatus]int, 3),
	}

	for _, item := range items {
		summary.TotalStockValueJOD = summary.TotalStockValueJOD.Add(item.StockValue())

		status := item.HealthStatus()
		summary.StatusBreakdown[status]++
		switch status {
		case models.StockStatusLow:
			summary.LowStockItems++
		case models.StockStatusOverstock:
			summary.OverstockItems++
		}
	}

	summary.CarryingCostJOD = CarryingCost(items, DefaultCarryingRate)
	return summary
}

// HeatmapCell is one tile of the stock status heatmap.
type HeatmapCell struct {
	ProductID    int                `json:"product_id"`
	DisplayName  string             `json:"display_name"`
	CurrentStock int                `json:"current_stock"`
	SafetyStock  int                `json:"safety_stock"`
	Unit         string             `json:"unit"`
	StockRatio   float64            `json:"stock_ratio"`
	Status       models.StockStatus `json:"status"`
}

// Heatmap builds the stock status grid from the first 15 items.
func (s *Service) Heatmap(items []models.InventoryItem) []HeatmapCell {
	if len(items) > heatmapSize {
		items = items[:heatmapSize]
	}

	cells := make([]HeatmapCell, 0, len(items))
	for _, item := range items {
		cells = append(cells, HeatmapCell{
			ProductID:    item.ProductID,
			DisplayName:  truncate(item.ProductName, displayNameRune),
			CurrentStock: item.CurrentStock,
			SafetyStock:  item.SafetyStock,
			Unit:         item.Unit,
			StockRatio:   item.StockRatio(),
			Status:       item.HeatmapStatus(),
		})
	}
	return cells
}

// OperationsSummary is the production lines page metric row.
type OperationsSummary struct {
	TotalThroughput    int     `json:"total_throughput"`
	AvgUtilizationPct  float64 `json:"avg_utilization_pct"`
	TotalDowntimeHours float64 `json:"total_downtime_hours"`
	AvgEfficiencyPct   float64 `json:"avg_efficiency_pct"`
}

// Operations aggregates the production lines headline figures.
func (s *Service) Operations(areas []models.OperationsArea) OperationsSummary {
	var summary OperationsSummary
	if len(areas) == 0 {
		return summary
	}

	utils := make([]float64, len(areas))
	rates := make([]float64, len(areas))
	for i, area := range areas {
		summary.TotalThroughput += area.Throughput
		summary.TotalDowntimeHours += area.DowntimeHours
		utils[i] = area.Utilization
		rates[i] = area.EfficiencyRate
	}
	summary.AvgUtilizationPct, _ = stats.Mean(utils)
	summary.AvgEfficiencyPct, _ = stats.Mean(rates)
	return summary
}

// OutputTrend simulates the last N hours of production output, newest last.
func (s *Service) OutputTrend(hours int) []models.ProductionSample {
	if hours <= 0 {
		return nil
	}

	samples := make([]models.ProductionSample, 0, hours)
	for h := 0; h < hours; h++ {
		samples = append(samples, models.ProductionSample{
			HoursAgo: h,
			Units:    trendBaseUnits + s.noise.Normal(0, trendNoiseStd) + math.Sin(float64(h)/6)*trendSwing,
		})
	}
	return samples
}

// OutliersIQR returns the indices of values outside [Q1-k*IQR, Q3+k*IQR].
// Series shorter than four points have no meaningful quartiles.
func OutliersIQR(values []float64, k float64) []int {
	if len(values) < 4 {
		return nil
	}

	quartiles, err := stats.Quartile(values)
	if err != nil {
		return nil
	}
	iqr := quartiles.Q3 - quartiles.Q1
	lower := quartiles.Q1 - k*iqr
	upper := quartiles.Q3 + k*iqr

	var outliers []int
	for i, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// OutliersZScore returns the indices of values whose absolute z-score
// exceeds the threshold. A zero-variance series has no outliers.
func OutliersZScore(values []float64, threshold float64) []int {
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)
	if std == 0 {
		return nil
	}

	var outliers []int
	for i, v := range values {
		if math.Abs(v-mean)/std > threshold {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// RollingPoint is one window's statistics, indexed by the window's last
// element.
type RollingPoint struct {
	Index int     `json:"index"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Rolling computes windowed mean/std/min/max over the series. The first
// point lands at index window-1, once a full window exists.
func Rolling(values []float64, window int) []RollingPoint {
	if window <= 0 || len(values) < window {
		return nil
	}

	points := make([]RollingPoint, 0, len(values)-window+1)
	for end := window; end <= len(values); end++ {
		slice := values[end-window : end]

		mean, _ := stats.Mean(slice)
		min, _ := stats.Min(slice)
		max, _ := stats.Max(slice)
		std := 0.0
		if window > 1 {
			std, _ = stats.StandardDeviationSample(slice)
		}

		points = append(points, RollingPoint{
			Index: end - 1,
			Mean:  mean,
			Std:   std,
			Min:   min,
			Max:   max,
		})
	}
	return points
}

// truncate shortens a name to fit a heatmap cell.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
