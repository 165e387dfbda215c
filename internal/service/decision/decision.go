// Package decision implements the factory-wide risk scoring and the
// rule-based recommendation engine behind the decision center page, plus
// the per-session cache its results live in.
package decision

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
)

// Thresholds shared by the risk score, the summary counters and the
// recommendation rules.
const (
	criticalTempC       = 85.0
	elevatedTempC       = 80.0
	highVibrationMMS    = 3.5
	bottleneckUtilPct   = 85.0
	overstockMultiplier = 2.5

	// Per-bottleneck throughput impact shown on the decision center.
	bottleneckImpactPct = 15.0
)

// Per-group caps, matching the original engine's head() calls.
const (
	lowStockCap   = 3
	mediumTempCap = 2
	bottleneckCap = 2
	overstockCap  = 2
)

// modelsExecuted is the number of "AI models" the demo reports running per
// generation pass.
const modelsExecuted = 5

// Service scores factory risk and generates operational recommendations.
type Service struct {
	noise *jitter.Source
	now   func() time.Time
}

// NewService wires a new decision service instance.
func NewService(noise *jitter.Source) *Service {
	return &Service{noise: noise, now: time.Now}
}

// Summary carries the decision center's headline figures.
type Summary struct {
	RiskScore           float64           `json:"risk_score"`
	RiskStatus          models.RiskStatus `json:"risk_status"`
	CriticalMachines    int               `json:"critical_machines"`
	LowStockItems       int               `json:"low_stock_items"`
	Bottlenecks         int               `json:"bottlenecks"`
	BottleneckImpactPct float64           `json:"bottleneck_impact_pct"`
}

// RiskScore blends machine stress, stock shortfalls and a simulated
// operational component into one 0-100 figure. Machines carry half the
// weight, inventory 30 points and operations the rest.
func (s *Service) RiskScore(machines []models.Machine, items []models.InventoryItem) float64 {
	var machineRisk float64
	if len(machines) > 0 {
		var hot, shaking int
		for _, m := range machines {
			if m.Temperature > criticalTempC {
				hot++
			}
			if m.Vibration > highVibrationMMS {
				shaking++
			}
		}
		n := float64(len(machines))
		machineRisk = (float64(hot)/n + float64(shaking)/n) / 2 * 50
	}

	var inventoryRisk float64
	if len(items) > 0 {
		var low int
		for _, item := range items {
			if item.IsBelowSafety() {
				low++
			}
		}
		inventoryRisk = float64(low) / float64(len(items)) * 30
	}

	operationalRisk := s.noise.Uniform(5, 15)

	return math.Min(100, machineRisk+inventoryRisk+operationalRisk)
}

// Summarize computes the decision center headline for a dataset snapshot.
func (s *Service) Summarize(ds *models.Dataset) Summary {
	score := s.RiskScore(ds.Machines, ds.Inventory)

	var critical int
	for _, m := range ds.Machines {
		if m.Temperature > criticalTempC {
			critical++
		}
	}

	var low int
	for _, item := range ds.Inventory {
		if item.IsBelowSafety() {
			low++
		}
	}

	var bottlenecks int
	for _, area := range ds.Operations {
		if area.Utilization > bottleneckUtilPct {
			bottlenecks++
		}
	}

	return Summary{
		RiskScore:           score,
		RiskStatus:          models.RiskStatusFor(score),
		CriticalMachines:    critical,
		LowStockItems:       low,
		Bottlenecks:         bottlenecks,
		BottleneckImpactPct: float64(bottlenecks) * bottleneckImpactPct,
	}
}

// Recommendations runs the five rule groups over the current snapshot and
// returns the combined list sorted by priority. Group order and per-group
// caps follow the demo's fixed playbook.
func (s *Service) Recommendations(machines []models.Machine, items []models.InventoryItem, areas []models.OperationsArea) []models.Recommendation {
	now := s.now()
	var recs []models.Recommendation

	add := func(priority int, category models.RecommendationCategory, action, reason, impact, timeline, methods string) {
		recs = append(recs, models.Recommendation{
			ID:        uuid.NewString(),
			Priority:  priority,
			Category:  category,
			Action:    action,
			Reason:    reason,
			Impact:    impact,
			Timeline:  timeline,
			AIMethods: methods,
			CreatedAt: now,
		})
	}

	for _, m := range machines {
		if m.Temperature <= criticalTempC {
			continue
		}
		failurePct := math.Min(100, (m.Temperature-60)/40*100+m.Vibration/5*30)
		downtimeHours := s.noise.IntBetween(8, 18)
		costPerHour := s.noise.IntBetween(400, 800)
		potentialLoss := int64(downtimeHours * costPerHour)

		add(models.PriorityCritical, models.CategoryPredictiveMaintenance,
			fmt.Sprintf("Schedule emergency maintenance for %s", m.MachineName),
			fmt.Sprintf("Critical temperature level (%.1f°C) detected. Failure probability: %.0f%%. Vibration exceeds safe threshold (%.2f mm/s).",
				m.Temperature, failurePct, m.Vibration),
			fmt.Sprintf("Prevent unplanned downtime of %d hours. Estimated cost avoidance: %s JOD. Maintain production continuity.",
				downtimeHours, humanize.Comma(potentialLoss)),
			"Within 24-48 hours (CRITICAL)",
			"Random Forest Classification, Anomaly Detection (Isolation Forest), Remaining Useful Life Estimation, Feature Importance Analysis")
	}

	var lowStock int
	for _, item := range items {
		if !item.IsBelowSafety() || lowStock >= lowStockCap {
			continue
		}
		lowStock++

		daysUntilStockout := s.noise.IntBetween(2, 7)
		demandPerDay := s.noise.IntBetween(8, 15)
		lostSales := item.UnitCost.Mul(decimal.NewFromInt(int64(daysUntilStockout * demandPerDay)))
		reorderQty := item.SafetyStock*2 - item.CurrentStock
		serviceLevel := 95
		if daysUntilStockout < 4 {
			serviceLevel = 98
		}

		add(models.PriorityHigh, models.CategoryInventoryManagement,
			fmt.Sprintf("Emergency reorder for %s", item.ProductName),
			fmt.Sprintf("Current stock (%d units) below safety level (%d units). Predicted stockout in %d days based on demand forecast.",
				item.CurrentStock, item.SafetyStock, daysUntilStockout),
			fmt.Sprintf("Prevent lost sales of %s JOD. Maintain %d%% service level. Avoid customer dissatisfaction and backorders.",
				commaDecimal(lostSales), serviceLevel),
			fmt.Sprintf("Immediate - Order %d units within 24 hours", reorderQty),
			"ARIMA Time Series Forecasting, Prophet Demand Prediction, Safety Stock Optimization, Economic Order Quantity (EOQ) Calculation")
	}

	var medium int
	for _, m := range machines {
		if m.Temperature <= elevatedTempC || m.Temperature > criticalTempC || medium >= mediumTempCap {
			continue
		}
		medium++

		rulDays := s.noise.IntBetween(5, 12)
		if rulDays < 3 {
			rulDays = 3
		}

		add(models.PriorityHigh, models.CategoryPredictiveMaintenance,
			fmt.Sprintf("Schedule preventive maintenance for %s", m.MachineName),
			fmt.Sprintf("Elevated temperature trend (%.1f°C). Estimated RUL: %d days. Early intervention recommended to prevent escalation.",
				m.Temperature, rulDays),
			"Extend equipment lifespan by 15-20%. Reduce failure risk from 45% to 15%. Optimize maintenance scheduling and resource allocation.",
			fmt.Sprintf("Within %d days", rulDays-2),
			"Random Forest Regression for RUL, Gradient Boosting, Time-Series Feature Extraction, Predictive Analytics")
	}

	var congested int
	for _, area := range areas {
		if area.Utilization <= bottleneckUtilPct || congested >= bottleneckCap {
			continue
		}
		congested++

		efficiencyLoss := 100 - area.EfficiencyRate
		monthlyImpact := int64(s.noise.IntBetween(1500, 3500))
		throughputGain := s.noise.IntBetween(12, 20)
		efficiencyGain := s.noise.IntBetween(8, 15)

		add(models.PriorityMedium, models.CategoryOperationsOptimize,
			fmt.Sprintf("Optimize resource allocation in %s", area.Area),
			fmt.Sprintf("Utilization at %.0f%% (critical threshold: 85%%). Efficiency loss: %.0f%%. Creating downstream delays and reducing overall throughput.",
				area.Utilization, efficiencyLoss),
			fmt.Sprintf("Increase throughput by %d%%. Monthly cost savings: %s JOD. Improve overall warehouse efficiency by %d%%.",
				throughputGain, humanize.Comma(monthlyImpact), efficiencyGain),
			"Implement within next shift planning cycle (3-5 days)",
			"K-Means Clustering for pattern detection, Bottleneck Analysis, Resource Optimization Algorithms, Heuristic Optimization")
	}

	var overstocked int
	for _, item := range items {
		if float64(item.CurrentStock) <= float64(item.SafetyStock)*overstockMultiplier || overstocked >= overstockCap {
			continue
		}
		overstocked++

		tiedCapital := item.StockValue()
		holdingMonthly := tiedCapital.Mul(decimal.NewFromFloat(0.02))
		released := tiedCapital.Mul(decimal.NewFromFloat(0.4))
		optimal := int(float64(item.SafetyStock) * 1.5)

		add(models.PriorityMedium, models.CategoryInventoryOptimize,
			fmt.Sprintf("Reduce stock level for %s", item.ProductName),
			fmt.Sprintf("Overstock detected: %d units vs optimal %d units. Excess capital tied up: %s JOD.",
				item.CurrentStock, optimal, commaDecimal(tiedCapital)),
			fmt.Sprintf("Release %s JOD in working capital. Reduce monthly holding costs by %s JOD. Improve inventory turnover ratio.",
				commaDecimal(released), commaDecimal(holdingMonthly)),
			"Gradual reduction over next 30-60 days",
			"Inventory Turnover Analysis, ABC Classification, Demand Pattern Recognition, Stock Optimization Algorithms")
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority < recs[j].Priority })
	return recs
}

// EstimateSavings prices the monthly upside of acting on the current
// critical machines and stock shortfalls, plus a simulated operational
// component.
func (s *Service) EstimateSavings(machines []models.Machine, items []models.InventoryItem) decimal.Decimal {
	var critical int
	for _, m := range machines {
		if m.Temperature > criticalTempC {
			critical++
		}
	}

	var low int
	for _, item := range items {
		if item.IsBelowSafety() {
			low++
		}
	}

	maintenance := critical * s.noise.IntBetween(3000, 6000)
	inventory := low * s.noise.IntBetween(1000, 2500)
	operational := s.noise.IntBetween(2000, 4000)

	return decimal.NewFromInt(int64(maintenance + inventory + operational))
}

// ROI simulates an investment breakdown for one recommendation. Costs scale
// with priority; benefits are drawn fresh per call.
func (s *Service) ROI(rec models.Recommendation) models.ROIEstimate {
	var cost int
	switch rec.Priority {
	case models.PriorityCritical:
		cost = s.noise.IntBetween(2000, 5000)
	case models.PriorityHigh:
		cost = s.noise.IntBetween(1000, 3000)
	default:
		cost = s.noise.IntBetween(500, 1500)
	}

	monthly := s.noise.IntBetween(3000, 10000)
	annual := monthly * 12

	return models.ROIEstimate{
		ImplementationCost:  decimal.NewFromInt(int64(cost)),
		MonthlyBenefit:      decimal.NewFromInt(int64(monthly)),
		AnnualBenefit:       decimal.NewFromInt(int64(annual)),
		PaybackPeriodMonths: float64(cost) / float64(monthly),
		ROIPercentage:       float64(annual-cost) / float64(cost) * 100,
	}
}

// Generate runs the full engine pass over a dataset snapshot: the
// recommendation rules plus the savings estimate.
func (s *Service) Generate(ds *models.Dataset) models.DecisionResult {
	return models.DecisionResult{
		Recommendations: s.Recommendations(ds.Machines, ds.Inventory, ds.Operations),
		MonthlySavings:  s.EstimateSavings(ds.Machines, ds.Inventory),
		ModelsExecuted:  modelsExecuted,
		GeneratedAt:     s.now(),
	}
}

// commaDecimal renders a money amount with thousands separators and no
// decimal places.
func commaDecimal(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}
