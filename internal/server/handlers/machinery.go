package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/maintenance"
)

// sensorHistoryHours is how much synthesized telemetry the prediction and
// robot views include.
const sensorHistoryHours = 24

type machineView struct {
	models.Machine
	HealthPct float64 `json:"health_pct"`
}

type machinesResponse struct {
	Machines    []machineView `json:"machines"`
	FleetHealth float64       `json:"fleet_health"`
	MTBFHours   *float64      `json:"mtbf_hours"`
	OEEPct      float64       `json:"oee_pct"`
}

// Machines serves the production fleet with its health aggregates.
func (h *Handlers) Machines(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	machines := make([]machineView, 0, len(ds.Machines))
	for _, m := range ds.Machines {
		machines = append(machines, machineView{Machine: m, HealthPct: h.maintenance.MachineHealth(m)})
	}

	c.JSON(http.StatusOK, machinesResponse{
		Machines:    machines,
		FleetHealth: h.maintenance.FleetHealth(ds.Machines),
		MTBFHours:   finiteOrNil(h.maintenance.MTBF(ds.Machines)),
		OEEPct:      h.maintenance.OEE(maintenance.DefaultAvailability, maintenance.DefaultPerformance, maintenance.DefaultQuality),
	})
}

type machinePredictionResponse struct {
	Machine       models.Machine           `json:"machine"`
	HealthPct     float64                  `json:"health_pct"`
	Failure       models.FailurePrediction `json:"failure"`
	RUL           models.RULEstimate       `json:"rul"`
	Anomaly       models.AnomalyReport     `json:"anomaly"`
	SensorHistory []models.SensorReading   `json:"sensor_history"`
}

// MachinePrediction serves the predictive-maintenance view for one line:
// failure probability, remaining useful life, anomaly status and the last
// day of telemetry.
func (h *Handlers) MachinePrediction(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	machineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}

	m, err := ds.MachineByID(machineID)
	if err != nil {
		if errors.Is(err, models.ErrMachineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "machine not found"})
			return
		}
		h.logger.Error("failed resolving machine", zap.Int("machine_id", machineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve machine"})
		return
	}

	c.JSON(http.StatusOK, machinePredictionResponse{
		Machine:       m,
		HealthPct:     h.maintenance.MachineHealth(m),
		Failure:       h.maintenance.PredictFailure(m),
		RUL:           h.maintenance.EstimateRUL(m),
		Anomaly:       h.maintenance.DetectAnomalies(m),
		SensorHistory: h.maintenance.SensorHistory(m, sensorHistoryHours),
	})
}

type robotView struct {
	models.Machine
	HealthPct float64              `json:"health_pct"`
	RUL       models.RULEstimate   `json:"rul"`
	Anomaly   models.AnomalyReport `json:"anomaly"`
}

type robotsResponse struct {
	Robots                []robotView `json:"robots"`
	TotalRobots           int         `json:"total_robots"`
	AvgHealthPct          float64     `json:"avg_health_pct"`
	TotalOperationalHours int         `json:"total_operational_hours"`
	MaintenanceDue        int         `json:"maintenance_due"`
}

// Robots serves the robotics page. A factory without robots gets an empty
// list, not an error.
func (h *Handlers) Robots(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	fleet := ds.Robots()
	robots := make([]robotView, 0, len(fleet))

	var rateSum, hoursSum, due int
	for _, robot := range fleet {
		rateSum += robot.ProductionRate
		hoursSum += robot.OperationalHours
		if robot.Temperature > 85 {
			due++
		}
		robots = append(robots, robotView{
			Machine:   robot,
			HealthPct: h.maintenance.MachineHealth(robot),
			RUL:       h.maintenance.EstimateRUL(robot),
			Anomaly:   h.maintenance.DetectAnomalies(robot),
		})
	}

	var avgHealth float64
	if len(fleet) > 0 {
		avgHealth = float64(rateSum) / float64(len(fleet))
	}

	c.JSON(http.StatusOK, robotsResponse{
		Robots:                robots,
		TotalRobots:           len(fleet),
		AvgHealthPct:          avgHealth,
		TotalOperationalHours: hoursSum,
		MaintenanceDue:        due,
	})
}
