package models

import "time"

// RiskLevel grades a machine's failure risk.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// FailurePrediction is the output of the failure-probability heuristic for one machine.
type FailurePrediction struct {
	MachineID          int       `json:"machine_id"`
	FailureProbability float64   `json:"failure_probability"`
	RiskLevel          RiskLevel `json:"risk_level"`
	FeatureImportance  []float64 `json:"feature_importance"`
	TemperatureRisk    float64   `json:"temperature_risk"`
	VibrationRisk      float64   `json:"vibration_risk"`
	HoursRisk          float64   `json:"hours_risk"`
}

// RULEstimate is the remaining-useful-life heuristic output for one machine.
type RULEstimate struct {
	MachineID       int       `json:"machine_id"`
	RULHours        float64   `json:"rul_hours"`
	RULDays         float64   `json:"rul_days"`
	Confidence      float64   `json:"confidence"`
	MaintenanceDate time.Time `json:"maintenance_date"`
	TempFactor      float64   `json:"temp_factor"`
	VibFactor       float64   `json:"vib_factor"`
}

// AnomalyReport flags sensor readings that left their normal operating ranges.
type AnomalyReport struct {
	MachineID       int     `json:"machine_id"`
	IsAnomaly       bool    `json:"is_anomaly"`
	AnomalyScore    float64 `json:"anomaly_score"`
	TempAnomaly     bool    `json:"temp_anomaly"`
	VibAnomaly      bool    `json:"vib_anomaly"`
	DetectionMethod string  `json:"detection_method"`
}
