package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recommendation priorities, highest urgency first.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
)

// RecommendationCategory groups recommendations by the subsystem they act on.
type RecommendationCategory string

const (
	CategoryPredictiveMaintenance RecommendationCategory = "Predictive Maintenance"
	CategoryInventoryManagement   RecommendationCategory = "Inventory Management"
	CategoryOperationsOptimize    RecommendationCategory = "Operations Optimization"
	CategoryInventoryOptimize     RecommendationCategory = "Inventory Optimization"
)

// Difficulty grades how hard a recommendation is to implement.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyModerate  Difficulty = "Moderate"
	DifficultyDifficult Difficulty = "Difficult"
)

// Recommendation is one actionable suggestion produced by the decision engine.
type Recommendation struct {
	ID        string                 `json:"id"`
	Priority  int                    `json:"priority"`
	Category  RecommendationCategory `json:"category"`
	Action    string                 `json:"action"`
	Reason    string                 `json:"reason"`
	Impact    string                 `json:"impact"`
	Timeline  string                 `json:"timeline"`
	AIMethods string                 `json:"ai_methods"`
	CreatedAt time.Time              `json:"created_at"`
}

// ImplementationDifficulty grades the recommendation by its category.
func (r Recommendation) ImplementationDifficulty() Difficulty {
	switch r.Category {
	case CategoryPredictiveMaintenance:
		return DifficultyModerate
	case CategoryInventoryManagement:
		return DifficultyEasy
	case CategoryOperationsOptimize:
		return DifficultyDifficult
	default:
		return DifficultyModerate
	}
}

// ROIEstimate is the simulated return-on-investment breakdown for one recommendation.
type ROIEstimate struct {
	ImplementationCost  decimal.Decimal `json:"implementation_cost"`
	MonthlyBenefit      decimal.Decimal `json:"monthly_benefit"`
	AnnualBenefit       decimal.Decimal `json:"annual_benefit"`
	PaybackPeriodMonths float64         `json:"payback_period_months"`
	ROIPercentage       float64         `json:"roi_percentage"`
}

// DecisionResult bundles a generated recommendation set with its summary figures.
// It is what the per-session results cache stores.
type DecisionResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	MonthlySavings  decimal.Decimal  `json:"monthly_savings"`
	ModelsExecuted  int              `json:"models_executed"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// RiskStatus bands the factory-wide risk score for the decision center.
type RiskStatus string

const (
	RiskStatusStable   RiskStatus = "STABLE"
	RiskStatusMedium   RiskStatus = "MEDIUM"
	RiskStatusCritical RiskStatus = "CRITICAL"
)

// RiskStatusFor maps a 0-100 risk score onto the decision-center bands.
func RiskStatusFor(score float64) RiskStatus {
	switch {
	case score > 60:
		return RiskStatusCritical
	case score > 30:
		return RiskStatusMedium
	default:
		return RiskStatusStable
	}
}

// HealthBadge bands the risk score for the sidebar / overview badge.
type HealthBadge string

const (
	BadgeExcellent HealthBadge = "EXCELLENT"
	BadgeGood      HealthBadge = "GOOD"
	BadgeAttention HealthBadge = "ATTENTION"
)

// HealthBadgeFor maps a 0-100 risk score onto the overview badge bands.
func HealthBadgeFor(score float64) HealthBadge {
	switch {
	case score < 25:
		return BadgeExcellent
	case score < 50:
		return BadgeGood
	default:
		return BadgeAttention
	}
}
