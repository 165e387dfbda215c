package datagen

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(DefaultSeed, testNow)
	second := Generate(DefaultSeed, testNow)

	assert.Equal(t, first, second)

	other := Generate(DefaultSeed+1, testNow)
	assert.NotEqual(t, first.Inventory, other.Inventory)
}

func TestGenerateShapes(t *testing.T) {
	ds := Generate(DefaultSeed, testNow)

	assert.Len(t, ds.Inventory, 20)
	assert.Len(t, ds.Machines, 8)
	assert.Len(t, ds.Operations, 8)
	assert.Len(t, ds.Demand, 20*180)
	assert.Equal(t, int64(DefaultSeed), ds.Seed)
	assert.Equal(t, testNow, ds.GeneratedAt)
}

func TestGenerateInventoryRangesAndValuation(t *testing.T) {
	ds := Generate(DefaultSeed, testNow)

	total := decimal.Zero
	for _, item := range ds.Inventory {
		assert.GreaterOrEqual(t, item.CurrentStock, 50)
		assert.Less(t, item.CurrentStock, 400)
		assert.GreaterOrEqual(t, item.SafetyStock, 80)
		assert.Less(t, item.SafetyStock, 150)
		assert.GreaterOrEqual(t, item.LeadTimeDays, 2)
		assert.Less(t, item.LeadTimeDays, 10)
		assert.True(t, item.UnitCost.IsPositive(), "unit cost must be positive for %s", item.ProductName)
		assert.NotEmpty(t, item.Unit)

		total = total.Add(item.StockValue())
	}

	// Costs are rescaled so the fleet-wide valuation hits the fixed headline
	// figure, modulo per-item 2dp rounding.
	diff := total.Sub(decimal.NewFromInt(totalStockValueJOD)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromInt(50)),
		"total stock value %s too far from %d", total, totalStockValueJOD)
}

func TestGenerateMachines(t *testing.T) {
	ds := Generate(DefaultSeed, testNow)

	robots := 0
	for i, m := range ds.Machines {
		assert.Equal(t, i+1, m.MachineID)
		assert.GreaterOrEqual(t, m.Temperature, 60.0)
		assert.Less(t, m.Temperature, 95.0)
		assert.GreaterOrEqual(t, m.Vibration, 0.5)
		assert.Less(t, m.Vibration, 4.5)
		assert.GreaterOrEqual(t, m.OperationalHours, 500)
		assert.Less(t, m.OperationalHours, 7500)
		assert.GreaterOrEqual(t, m.ProductionRate, 75)
		assert.Less(t, m.ProductionRate, 100)
		if m.IsRobot() {
			robots++
		}
	}
	assert.Equal(t, 2, robots)

	// Maintenance visits are spaced 25 days apart with the latest at
	// generation time.
	last := ds.Machines[len(ds.Machines)-1]
	assert.Equal(t, testNow, last.LastMaintenance)
	for i := 1; i < len(ds.Machines); i++ {
		gap := ds.Machines[i].LastMaintenance.Sub(ds.Machines[i-1].LastMaintenance)
		assert.Equal(t, 25*24*time.Hour, gap)
	}
}

func TestGenerateDemandHistory(t *testing.T) {
	ds := Generate(DefaultSeed, testNow)

	perProduct := make(map[int]int)
	for _, rec := range ds.Demand {
		perProduct[rec.ProductID]++
		assert.GreaterOrEqual(t, rec.Demand, 0)
	}
	require.Len(t, perProduct, 20)
	for id, n := range perProduct {
		assert.Equal(t, 180, n, "product %d", id)
	}

	// History covers 180 consecutive days ending on the generation day.
	first, last := ds.Demand[0], ds.Demand[179]
	assert.Equal(t, 1, first.ProductID)
	wantEnd := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantEnd, last.Date)
	assert.Equal(t, wantEnd.AddDate(0, 0, -179), first.Date)

	// Weekends are dampened, so their mean demand sits below weekdays.
	var weekdaySum, weekendSum, weekdayN, weekendN float64
	for _, rec := range ds.Demand {
		if wd := rec.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendSum += float64(rec.Demand)
			weekendN++
		} else {
			weekdaySum += float64(rec.Demand)
			weekdayN++
		}
	}
	require.NotZero(t, weekendN)
	require.NotZero(t, weekdayN)
	assert.Less(t, weekendSum/weekendN, weekdaySum/weekdayN)
}

func TestGenerateOperationsRanges(t *testing.T) {
	ds := Generate(DefaultSeed, testNow)

	for _, area := range ds.Operations {
		assert.NotEmpty(t, area.Area)
		assert.GreaterOrEqual(t, area.Utilization, 65.0)
		assert.Less(t, area.Utilization, 95.0)
		assert.GreaterOrEqual(t, area.ProductivityScore, 70.0)
		assert.Less(t, area.ProductivityScore, 98.0)
		assert.GreaterOrEqual(t, area.DowntimeHours, 0.2)
		assert.Less(t, area.DowntimeHours, 2.8)
		assert.GreaterOrEqual(t, area.EfficiencyRate, 75.0)
		assert.Less(t, area.EfficiencyRate, 98.0)
		assert.GreaterOrEqual(t, area.Throughput, 800)
		assert.Less(t, area.Throughput, 3000)
	}
}
