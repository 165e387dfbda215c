// Package datagen builds the synthetic CookiesJO factory datasets. All data
// is derived from a single seeded random stream so a given seed always
// produces identical datasets, mirroring how the demo regenerates its world
// at process start.
package datagen

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// DefaultSeed reproduces the canonical demo dataset.
const DefaultSeed = 42

// totalStockValueJOD is the headline inventory valuation the demo data is
// rescaled to match.
const totalStockValueJOD = 476564

// ingredientCatalog pairs every tracked ingredient with its stock-keeping unit.
var ingredientCatalog = []struct {
	name string
	unit string
}{
	{"Wheat Flour Premium", "kg"},
	{"Cane Sugar", "kg"},
	{"Butter Unsalted", "kg"},
	{"Fresh Eggs", "dozen"},
	{"Chocolate Chips Dark", "kg"},
	{"Cocoa Powder", "kg"},
	{"Vanilla Extract", "L"},
	{"Baking Powder", "kg"},
	{"Sea Salt Fine", "kg"},
	{"Milk Powder", "kg"},
	{"Organic Honey", "L"},
	{"Ground Cinnamon", "kg"},
	{"Chopped Walnuts", "kg"},
	{"Almond Flour", "kg"},
	{"Brown Sugar", "kg"},
	{"Coconut Oil", "L"},
	{"Packaging Boxes", "boxes"},
	{"Plastic Film Wrap", "rolls"},
	{"Product Labels", "sheets"},
	{"Shipping Pallets", "units"},
}

// productionLines is the fixed set of CookiesJO production lines. Two of them
// are robotic arms, which the robotics page filters on by name.
var productionLines = []string{
	"Mixing Station Alpha",
	"Dough Forming Line",
	"Baking Oven Line 1",
	"Cooling Conveyor Belt",
	"Quality Control Scanner",
	"Packaging Robot ARM-1",
	"Palletizing Robot ARM-2",
	"Storage Conveyor System",
}

const demandHistoryDays = 180

// Generate produces a complete demo dataset from the given seed, anchored at
// the supplied generation time. Generation order is fixed (inventory,
// machines, operations, demand) so outputs are reproducible.
func Generate(seed int64, now time.Time) *models.Dataset {
	rng := rand.New(rand.NewSource(seed))

	dataset := &models.Dataset{
		Inventory:   generateInventory(rng),
		Machines:    generateMachines(rng, now),
		Operations:  nil,
		Demand:      nil,
		GeneratedAt: now,
		Seed:        seed,
	}
	dataset.Operations = generateOperations(rng)
	dataset.Demand = generateDemand(rng, now)

	return dataset
}

func generateInventory(rng *rand.Rand) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(ingredientCatalog))
	costs := make([]float64, 0, len(ingredientCatalog))

	for i, ing := range ingredientCatalog {
		cost := uniform(rng, 2, 50)
		costs = append(costs, cost)
		items = append(items, models.InventoryItem{
			ProductID:    i + 1,
			ProductName:  ing.name,
			CurrentStock: randInt(rng, 50, 400),
			SafetyStock:  randInt(rng, 80, 150),
			Unit:         ing.unit,
			LeadTimeDays: randInt(rng, 2, 10),
		})
	}

	// Rescale unit costs so the headline stock valuation lands on the demo's
	// fixed 476,564 JOD figure (up to 2dp rounding).
	var total float64
	for i, item := range items {
		total += float64(item.CurrentStock) * costs[i]
	}
	factor := totalStockValueJOD / total
	for i := range items {
		items[i].UnitCost = decimal.NewFromFloat(costs[i] * factor).Round(2)
	}

	return items
}

func generateMachines(rng *rand.Rand, now time.Time) []models.Machine {
	n := len(productionLines)
	// Maintenance dates are spaced 25 days apart, the most recent landing on
	// the generation time.
	firstMaintenance := now.AddDate(0, 0, -25*(n-1))

	machines := make([]models.Machine, 0, n)
	for i, name := range productionLines {
		machines = append(machines, models.Machine{
			MachineID:        i + 1,
			MachineName:      name,
			Temperature:      uniform(rng, 60, 95),
			Vibration:        uniform(rng, 0.5, 4.5),
			OperationalHours: randInt(rng, 500, 7500),
			ProductionRate:   randInt(rng, 75, 100),
			LastMaintenance:  firstMaintenance.AddDate(0, 0, 25*i),
		})
	}
	return machines
}

func generateOperations(rng *rand.Rand) []models.OperationsArea {
	areas := make([]models.OperationsArea, 0, len(productionLines))
	for _, name := range productionLines {
		areas = append(areas, models.OperationsArea{
			Area:              name,
			Utilization:       uniform(rng, 65, 95),
			ProductivityScore: uniform(rng, 70, 98),
			DowntimeHours:     uniform(rng, 0.2, 2.8),
			EfficiencyRate:    uniform(rng, 75, 98),
			Throughput:        randInt(rng, 800, 3000),
		})
	}
	return areas
}

func generateDemand(rng *rand.Rand, now time.Time) []models.DemandRecord {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -(demandHistoryDays - 1))

	records := make([]models.DemandRecord, 0, len(ingredientCatalog)*demandHistoryDays)
	for productID := 1; productID <= len(ingredientCatalog); productID++ {
		for day := 0; day < demandHistoryDays; day++ {
			date := start.AddDate(0, 0, day)

			base := randInt(rng, 10, 30)
			if isWeekend(date) {
				base = int(float64(base) * 0.7)
			}

			demand := base + randInt(rng, -5, 6)
			if demand < 0 {
				demand = 0
			}

			records = append(records, models.DemandRecord{
				Date:      date,
				ProductID: productID,
				Demand:    demand,
			})
		}
	}
	return records
}

// randInt draws an integer uniformly from [low, high).
func randInt(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low)
}

// uniform draws from [low, high).
func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
