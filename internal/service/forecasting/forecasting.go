// Package forecasting implements the demand-projection and ordering
// heuristics behind the ingredients pages: trend+seasonality demand
// forecasts, EOQ-based reorder advice, safety-stock sizing and inventory
// health aggregates.
package forecasting

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
)

// DefaultHorizonDays is the forecast length used when none is requested.
const DefaultHorizonDays = 14

// Ordering assumptions behind the EOQ and reorder-point formulas. The demo
// treats every ingredient as selling ten units a day on average.
const (
	AssumedDailyDemand = 10
	AnnualDemandUnits  = 365 * AssumedDailyDemand
	OrderingCostJOD    = 100
	HoldingCostRate    = 0.25
)

const (
	// trendWindow is how many trailing days feed the trend fit and the
	// confidence band.
	trendWindow = 30

	// Fallback series parameters when a product has no demand history.
	fallbackHistoryDays = 60
	fallbackDemandMean  = 150

	// Demand below this total over the lookback window marks an item as
	// slow-moving.
	slowMovingDemandFloor = 10

	defaultSlowMovingDays = 90

	// Safety-stock sizing assumes a 30% coefficient of variation on demand.
	demandStdDev = AssumedDailyDemand * 0.3
)

// zScores maps demand-volatility profiles onto service-level z factors
// (90%, 95% and 99% respectively).
var zScores = map[models.Volatility]float64{
	models.VolatilityLow:    1.28,
	models.VolatilityMedium: 1.65,
	models.VolatilityHigh:   2.33,
}

// Service produces demand forecasts and inventory ordering advice.
type Service struct {
	noise *jitter.Source
	now   func() time.Time
}

// NewService wires a new forecasting service instance.
func NewService(noise *jitter.Source) *Service {
	return &Service{noise: noise, now: time.Now}
}

// ForecastDemand projects daily demand for one product: a least-squares
// trend over the trailing window, weekday seasonality factors from the full
// history, and gaussian noise for realism. Values and the lower confidence
// bound never go negative. Products without history get a synthetic
// fallback series.
func (s *Service) ForecastDemand(history []models.DemandRecord, productID, daysAhead int) models.DemandForecast {
	if daysAhead <= 0 {
		daysAhead = DefaultHorizonDays
	}

	var records []models.DemandRecord
	for _, rec := range history {
		if rec.ProductID == productID {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		records = s.fallbackHistory(productID)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	recent := records
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	recentValues := make([]float64, len(recent))
	series := make(stats.Series, len(recent))
	for i, rec := range recent {
		recentValues[i] = float64(rec.Demand)
		series[i] = stats.Coordinate{X: float64(i), Y: float64(rec.Demand)}
	}

	base, _ := stats.Mean(recentValues)
	trend := slope(series)
	stdDev, _ := stats.StandardDeviation(recentValues)
	pattern := weekdayMeans(records)

	lastDate := records[len(records)-1].Date
	forecast := make([]models.ForecastPoint, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		date := lastDate.AddDate(0, 0, i+1)

		seasonal := 1.0
		if base > 0 {
			if mean, ok := pattern[date.Weekday()]; ok {
				seasonal = mean / base
			}
		}

		value := (base+trend*float64(i))*seasonal + s.noise.Normal(0, 5)
		value = math.Max(0, value)

		forecast = append(forecast, models.ForecastPoint{
			Date:       date,
			Demand:     value,
			UpperBound: value + 1.96*stdDev,
			LowerBound: math.Max(0, value-1.96*stdDev),
		})
	}

	points := make([]models.HistoryPoint, len(records))
	for i, rec := range records {
		points[i] = models.HistoryPoint{Date: rec.Date, Demand: rec.Demand}
	}

	return models.DemandForecast{
		ProductID: productID,
		History:   points,
		Forecast:  forecast,
		Trend:     trend,
		AvgDemand: base,
	}
}

// ReorderAdvice computes the EOQ, reorder point and order size for one item.
func (s *Service) ReorderAdvice(item models.InventoryItem) models.ReorderAdvice {
	var eoq float64
	if holdingCost := item.UnitCost.InexactFloat64() * HoldingCostRate; holdingCost > 0 {
		eoq = math.Sqrt(2 * AnnualDemandUnits * OrderingCostJOD / holdingCost)
	}

	deficit := item.SafetyStock - item.CurrentStock
	if deficit < 0 {
		deficit = 0
	}

	return models.ReorderAdvice{
		ProductID:          item.ProductID,
		ReorderPoint:       float64(AssumedDailyDemand*item.LeadTimeDays + item.SafetyStock),
		ReorderQuantity:    eoq + float64(deficit),
		EconomicOrderQty:   eoq,
		PredictedDemand:    AssumedDailyDemand * 7 * s.noise.Uniform(0.8, 1.2),
		SafetyStock:        item.SafetyStock,
		LeadTimeDays:       item.LeadTimeDays,
		CurrentStock:       item.CurrentStock,
		AssumedDailyDemand: AssumedDailyDemand,
	}
}

// OptimizeSafetyStock sizes the safety stock as z * sigma * sqrt(lead time),
// with z picked by the demand-volatility profile.
func (s *Service) OptimizeSafetyStock(item models.InventoryItem, volatility models.Volatility) int {
	z, ok := zScores[volatility]
	if !ok {
		z = zScores[models.VolatilityMedium]
	}
	return int(z * demandStdDev * math.Sqrt(float64(item.LeadTimeDays)))
}

// InventoryHealth scores the whole inventory 0-100: stock adequacy carries
// 40 points, overstock avoidance 30 and value distribution 30.
func (s *Service) InventoryHealth(items []models.InventoryItem) float64 {
	if len(items) == 0 {
		return 0
	}

	n := float64(len(items))
	var adequate, overstocked int
	values := make([]float64, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.CurrentStock >= item.SafetyStock {
			adequate++
		}
		if item.CurrentStock > item.SafetyStock*3 {
			overstocked++
		}
		value := item.StockValue()
		values = append(values, value.InexactFloat64())
		total = total.Add(value)
	}

	adequacyScore := float64(adequate) / n * 40
	turnoverScore := (n - float64(overstocked)) / n * 30

	// A single item hoarding half the stock value halves the distribution
	// score.
	distributionScore := 15.0
	if totalValue := total.InexactFloat64(); totalValue > 0 {
		maxValue, _ := stats.Max(values)
		if maxShare := maxValue / totalValue; maxShare < 0.5 {
			distributionScore = (1 - maxShare) * 30
		}
	}

	return adequacyScore + turnoverScore + distributionScore
}

// SlowMovingItems lists products whose demand over the lookback window
// stayed under the slow-moving floor. A non-positive thresholdDays selects
// the default 90-day window.
func (s *Service) SlowMovingItems(items []models.InventoryItem, demand []models.DemandRecord, thresholdDays int) []int {
	if thresholdDays <= 0 {
		thresholdDays = defaultSlowMovingDays
	}

	if len(demand) == 0 {
		ids := make([]int, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		return ids
	}

	var latest time.Time
	for _, rec := range demand {
		if rec.Date.After(latest) {
			latest = rec.Date
		}
	}
	cutoff := latest.AddDate(0, 0, -thresholdDays)

	totals := make(map[int]int)
	for _, rec := range demand {
		if rec.Date.Before(cutoff) {
			continue
		}
		totals[rec.ProductID] += rec.Demand
	}

	var slow []int
	for _, item := range items {
		if totals[item.ProductID] < slowMovingDemandFloor {
			slow = append(slow, item.ProductID)
		}
	}
	return slow
}

// InventoryTurnover estimates the annual stock turnover ratio from the
// assumed per-product demand rate and the current stock valuation.
func (s *Service) InventoryTurnover(items []models.InventoryItem) float64 {
	if len(items) == 0 {
		return 0
	}

	costs := make([]float64, 0, len(items))
	value := decimal.Zero
	for _, item := range items {
		costs = append(costs, item.UnitCost.InexactFloat64())
		value = value.Add(item.StockValue())
	}
	totalValue := value.InexactFloat64()
	if totalValue == 0 {
		return 0
	}

	meanCost, _ := stats.Mean(costs)
	cogs := float64(AnnualDemandUnits*len(items)) * meanCost
	return cogs / totalValue
}

// DaysOfInventory converts a turnover ratio into days of stock on hand.
// Returns +Inf for a zero ratio.
func (s *Service) DaysOfInventory(turnover float64) float64 {
	if turnover == 0 {
		return math.Inf(1)
	}
	return 365 / turnover
}

// fallbackHistory synthesizes a demand series for products with no recorded
// history, mirroring the demo's Poisson-with-jitter sample.
func (s *Service) fallbackHistory(productID int) []models.DemandRecord {
	end := s.now()
	records := make([]models.DemandRecord, 0, fallbackHistoryDays)
	for i := fallbackHistoryDays - 1; i >= 0; i-- {
		records = append(records, models.DemandRecord{
			Date:      end.AddDate(0, 0, -i),
			ProductID: productID,
			Demand:    s.noise.Poisson(fallbackDemandMean) + s.noise.IntBetween(-20, 20),
		})
	}
	return records
}

// slope extracts the per-day slope of the least-squares fit over the series.
func slope(series stats.Series) float64 {
	if len(series) < 2 {
		return 0
	}
	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return 0
	}
	first, last := fitted[0], fitted[len(fitted)-1]
	if last.X == first.X {
		return 0
	}
	return (last.Y - first.Y) / (last.X - first.X)
}

// weekdayMeans averages demand per weekday across the whole history.
func weekdayMeans(records []models.DemandRecord) map[time.Weekday]float64 {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, rec := range records {
		wd := rec.Date.Weekday()
		sums[wd] += float64(rec.Demand)
		counts[wd]++
	}

	means := make(map[time.Weekday]float64, len(sums))
	for wd, sum := range sums {
		means[wd] = sum / float64(counts[wd])
	}
	return means
}
