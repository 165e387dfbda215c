package models

import (
	"strings"
	"time"
)

// Machine captures one production line's identity and latest sensor readings.
type Machine struct {
	MachineID        int       `json:"machine_id"`
	MachineName      string    `json:"machine_name"`
	Temperature      float64   `json:"temperature"`
	Vibration        float64   `json:"vibration"`
	OperationalHours int       `json:"operational_hours"`
	ProductionRate   int       `json:"production_rate"`
	LastMaintenance  time.Time `json:"last_maintenance"`
}

// IsRobot reports whether the line is one of the robotic arms.
func (m Machine) IsRobot() bool {
	return strings.Contains(m.MachineName, "Robot")
}

// OperationsArea captures throughput and efficiency figures for one operational area.
// Areas map 1:1 onto production lines by name.
type OperationsArea struct {
	Area              string  `json:"area"`
	Utilization       float64 `json:"utilization"`
	ProductivityScore float64 `json:"productivity_score"`
	DowntimeHours     float64 `json:"downtime_hours"`
	EfficiencyRate    float64 `json:"efficiency_rate"`
	Throughput        int     `json:"throughput"`
}

// UtilizationStatus bands an area's load for the production lines page.
type UtilizationStatus string

const (
	UtilizationCritical UtilizationStatus = "critical"
	UtilizationWarning  UtilizationStatus = "warning"
	UtilizationNormal   UtilizationStatus = "normal"
)

// LoadStatus classifies the area by utilization: critical above 90%,
// warning above 80%, normal otherwise.
func (a OperationsArea) LoadStatus() UtilizationStatus {
	switch {
	case a.Utilization > 90:
		return UtilizationCritical
	case a.Utilization > 80:
		return UtilizationWarning
	default:
		return UtilizationNormal
	}
}

// SensorReading is one synthesized point of a machine's recent telemetry history.
type SensorReading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Vibration   float64   `json:"vibration"`
}

// ProductionSample is one hourly point of the simulated production output trend.
type ProductionSample struct {
	HoursAgo int     `json:"hours_ago"`
	Units    float64 `json:"units"`
}
