// Package maintenance implements the predictive-maintenance heuristics
// behind the machinery pages: failure probability, remaining useful life,
// anomaly detection and fleet health aggregates.
package maintenance

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
)

const (
	// maxOperationalHours is the assumed end-of-life point for every line.
	maxOperationalHours = 10000

	// Normal operating ranges; readings outside them count as anomalies.
	tempNormalMin = 65.0
	tempNormalMax = 85.0
	vibNormalMin  = 0.5
	vibNormalMax  = 3.5

	detectionMethod = "Isolation Forest (Simulated)"
)

// OEE inputs assumed for the fleet when no measured figures exist.
const (
	DefaultAvailability = 0.95
	DefaultPerformance  = 0.90
	DefaultQuality      = 0.98
)

// Failure-model feature weights: temperature, vibration, operational hours.
var featureWeights = [3]float64{0.45, 0.35, 0.20}

// Service evaluates machine condition from the latest sensor snapshot.
type Service struct {
	noise *jitter.Source
	now   func() time.Time
}

// NewService wires a new maintenance service instance.
func NewService(noise *jitter.Source) *Service {
	return &Service{noise: noise, now: time.Now}
}

// PredictFailure scores a machine's failure probability as a weighted blend
// of normalized temperature, vibration and wear, plus noise for realism.
func (s *Service) PredictFailure(m models.Machine) models.FailurePrediction {
	tempRisk := clamp01((m.Temperature - 60) / 40)
	vibRisk := clamp01(m.Vibration / 5)
	hoursRisk := clamp01(float64(m.OperationalHours) / maxOperationalHours)

	probability := tempRisk*featureWeights[0] + vibRisk*featureWeights[1] + hoursRisk*featureWeights[2]
	probability = clamp01(probability + s.noise.Uniform(-0.1, 0.1))

	return models.FailurePrediction{
		MachineID:          m.MachineID,
		FailureProbability: probability,
		RiskLevel:          riskLevelFor(probability),
		FeatureImportance:  append([]float64(nil), featureWeights[:]...),
		TemperatureRisk:    tempRisk,
		VibrationRisk:      vibRisk,
		HoursRisk:          hoursRisk,
	}
}

// EstimateRUL projects the remaining useful life from accumulated hours,
// degraded by the machine's current temperature and vibration condition.
// The estimate never drops below one day.
func (s *Service) EstimateRUL(m models.Machine) models.RULEstimate {
	baseHours := float64(maxOperationalHours - m.OperationalHours)

	tempFactor := 1.0
	switch {
	case m.Temperature > 90:
		tempFactor = 0.5
	case m.Temperature > 85:
		tempFactor = 0.7
	case m.Temperature > 80:
		tempFactor = 0.85
	}

	vibFactor := 1.0
	switch {
	case m.Vibration > 4.0:
		vibFactor = 0.6
	case m.Vibration > 3.5:
		vibFactor = 0.75
	case m.Vibration > 3.0:
		vibFactor = 0.9
	}

	hours := baseHours * tempFactor * vibFactor
	if hours < 24 {
		hours = 24
	}

	confidence := 0.85 + s.noise.Uniform(-0.1, 0.1)
	confidence = math.Max(0.70, math.Min(0.95, confidence))

	return models.RULEstimate{
		MachineID:       m.MachineID,
		RULHours:        hours,
		RULDays:         hours / 24,
		Confidence:      confidence,
		MaintenanceDate: s.now().Add(time.Duration(hours * float64(time.Hour))),
		TempFactor:      tempFactor,
		VibFactor:       vibFactor,
	}
}

// DetectAnomalies flags readings outside the normal operating ranges and
// scores how far outside they are, normalized to [0,1].
func (s *Service) DetectAnomalies(m models.Machine) models.AnomalyReport {
	tempAnomaly := m.Temperature < tempNormalMin || m.Temperature > tempNormalMax
	vibAnomaly := m.Vibration < vibNormalMin || m.Vibration > vibNormalMax

	tempScore := 0.0
	switch {
	case m.Temperature > tempNormalMax:
		tempScore = (m.Temperature - tempNormalMax) / 20
	case m.Temperature < tempNormalMin:
		tempScore = (tempNormalMin - m.Temperature) / 20
	}

	vibScore := 0.0
	switch {
	case m.Vibration > vibNormalMax:
		vibScore = (m.Vibration - vibNormalMax) / 2
	case m.Vibration < vibNormalMin:
		vibScore = (vibNormalMin - m.Vibration) / 2
	}

	return models.AnomalyReport{
		MachineID:       m.MachineID,
		IsAnomaly:       tempAnomaly || vibAnomaly,
		AnomalyScore:    math.Min(1.0, math.Max(tempScore, vibScore)),
		TempAnomaly:     tempAnomaly,
		VibAnomaly:      vibAnomaly,
		DetectionMethod: detectionMethod,
	}
}

// FleetHealth aggregates a 0-100 health score over the whole fleet:
// temperature weighted 40%, vibration 35%, accumulated hours 25%.
func (s *Service) FleetHealth(machines []models.Machine) float64 {
	if len(machines) == 0 {
		return 0
	}

	tempScores := make([]float64, 0, len(machines))
	vibScores := make([]float64, 0, len(machines))
	hoursScores := make([]float64, 0, len(machines))
	for _, m := range machines {
		tempScores = append(tempScores, piecewiseScore(m.Temperature, 75, 5))
		vibScores = append(vibScores, piecewiseScore(m.Vibration, 2.5, 20))
		hoursScores = append(hoursScores, piecewiseScore(float64(m.OperationalHours), 3000, 1.0/50))
	}

	tempMean, _ := stats.Mean(tempScores)
	vibMean, _ := stats.Mean(vibScores)
	hoursMean, _ := stats.Mean(hoursScores)

	return tempMean*0.40 + vibMean*0.35 + hoursMean*0.25
}

// MachineHealth is the per-line health percentage shown on the maintenance
// and robotics pages, driven by temperature alone.
func (s *Service) MachineHealth(m models.Machine) float64 {
	health := 100 - (m.Temperature-60)*2
	return math.Max(0, math.Min(100, health))
}

// MTBF estimates mean time between failures, assuming 1.5 failures per
// machine running above 85°C. Returns +Inf when no machine is critical.
func (s *Service) MTBF(machines []models.Machine) float64 {
	var totalHours int
	var critical int
	for _, m := range machines {
		totalHours += m.OperationalHours
		if m.Temperature > 85 {
			critical++
		}
	}
	if critical == 0 {
		return math.Inf(1)
	}
	return float64(totalHours) / (1.5 * float64(critical))
}

// OEE is overall equipment effectiveness as a percentage.
func (s *Service) OEE(availability, performance, quality float64) float64 {
	return availability * performance * quality * 100
}

// SensorHistory synthesizes hourly telemetry around a machine's current
// readings: gaussian noise plus a slow sinusoidal drift, ending at now.
func (s *Service) SensorHistory(m models.Machine, hours int) []models.SensorReading {
	if hours <= 0 {
		return nil
	}

	first := s.now().Add(-time.Duration(hours-1) * time.Hour)
	readings := make([]models.SensorReading, 0, hours)
	for i := 0; i < hours; i++ {
		readings = append(readings, models.SensorReading{
			Timestamp:   first.Add(time.Duration(i) * time.Hour),
			Temperature: m.Temperature + s.noise.Normal(0, 2) + math.Sin(float64(i)/4)*3,
			Vibration:   m.Vibration + s.noise.Normal(0, 0.3) + math.Sin(float64(i)/3)*0.5,
		})
	}
	return readings
}

// piecewiseScore returns 100 below the knee and degrades by slope per unit
// above it, floored at 0.
func piecewiseScore(value, knee, slope float64) float64 {
	if value <= knee {
		return 100
	}
	return math.Max(0, 100-(value-knee)*slope)
}

func riskLevelFor(probability float64) models.RiskLevel {
	switch {
	case probability > 0.6:
		return models.RiskLevelHigh
	case probability > 0.3:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
