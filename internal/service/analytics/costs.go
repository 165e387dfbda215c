package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// Default rates for the cost calculators.
const (
	DefaultCarryingRate = 0.25
	DefaultLostSaleRate = 0.30
	DefaultOrderCostJOD = 100
)

// ordersPerItemPerYear assumes monthly replenishment cycles when pricing
// the ordering component of the breakdown.
const ordersPerItemPerYear = 12

// InventoryCostBreakdown is the ingredients page cost-analysis block, all
// figures annual JOD.
type InventoryCostBreakdown struct {
	HoldingCostJOD     decimal.Decimal `json:"holding_cost_jod"`
	SafetyStockCostJOD decimal.Decimal `json:"safety_stock_cost_jod"`
	OrderingCostJOD    decimal.Decimal `json:"ordering_cost_jod"`
	StockoutRiskJOD    decimal.Decimal `json:"stockout_risk_jod"`
	TotalCostJOD       decimal.Decimal `json:"total_cost_jod"`
}

// CostBreakdown prices the inventory position: holding cost on the current
// stock, the safety-stock carry, monthly order cycles per item, and the
// stockout exposure of items already below their safety level over one
// lead time.
func CostBreakdown(items []models.InventoryItem, dailyDemand float64) InventoryCostBreakdown {
	safety := decimal.Zero
	stockout := decimal.Zero
	for _, item := range items {
		safety = safety.Add(SafetyStockCost(item.SafetyStock, item.UnitCost, DefaultCarryingRate))
		if item.IsBelowSafety() {
			stockout = stockout.Add(StockoutCost(float64(item.LeadTimeDays), dailyDemand, item.UnitCost, DefaultLostSaleRate))
		}
	}

	holding := CarryingCost(items, DefaultCarryingRate)
	ordering := ReorderCost(ordersPerItemPerYear*len(items), decimal.NewFromInt(DefaultOrderCostJOD))

	return InventoryCostBreakdown{
		HoldingCostJOD:     holding,
		SafetyStockCostJOD: safety,
		OrderingCostJOD:    ordering,
		StockoutRiskJOD:    stockout,
		TotalCostJOD:       TotalInventoryCost(holding, ordering, stockout),
	}
}

// CarryingCost is the annual cost of holding the current inventory, as a
// share of its total value.
func CarryingCost(items []models.InventoryItem, annualRate float64) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.StockValue())
	}
	return total.Mul(decimal.NewFromFloat(annualRate))
}

// StockoutCost prices the sales lost while an item is out of stock.
func StockoutCost(stockoutDays, dailyDemand float64, unitPrice decimal.Decimal, lostSaleRate float64) decimal.Decimal {
	lostUnits := stockoutDays * dailyDemand * lostSaleRate
	return unitPrice.Mul(decimal.NewFromFloat(lostUnits))
}

// SafetyStockCost is the annual cost of carrying an item's safety stock.
func SafetyStockCost(units int, unitCost decimal.Decimal, holdingRate float64) decimal.Decimal {
	value := unitCost.Mul(decimal.NewFromInt(int64(units)))
	return value.Mul(decimal.NewFromFloat(holdingRate))
}

// ReorderCost is the annual fixed cost of placing orders.
func ReorderCost(numOrders int, costPerOrder decimal.Decimal) decimal.Decimal {
	return costPerOrder.Mul(decimal.NewFromInt(int64(numOrders)))
}

// TotalInventoryCost sums the holding, ordering and stockout components.
func TotalInventoryCost(holding, ordering, stockout decimal.Decimal) decimal.Decimal {
	return holding.Add(ordering).Add(stockout)
}

// DowntimeCost prices the production lost while a line is down.
func DowntimeCost(downtimeHours float64, productionRate int, unitValue decimal.Decimal) decimal.Decimal {
	lostUnits := downtimeHours * float64(productionRate)
	return unitValue.Mul(decimal.NewFromFloat(lostUnits))
}

// FillRate is the share of demand fulfilled, as a percentage. No demand
// counts as fully served.
func FillRate(demandMet, totalDemand int) float64 {
	if totalDemand == 0 {
		return 100
	}
	return float64(demandMet) / float64(totalDemand) * 100
}

// ServiceLevel is the share of orders fulfilled on time, as a percentage.
func ServiceLevel(ordersFulfilled, totalOrders int) float64 {
	if totalOrders == 0 {
		return 100
	}
	return float64(ordersFulfilled) / float64(totalOrders) * 100
}

// WarehouseUtilization is the share of storage space in use, as a percentage.
func WarehouseUtilization(usedSpace, totalSpace float64) float64 {
	if totalSpace == 0 {
		return 0
	}
	return usedSpace / totalSpace * 100
}

// LaborProductivity is units processed per labor hour.
func LaborProductivity(unitsProcessed int, laborHours float64) float64 {
	if laborHours == 0 {
		return 0
	}
	return float64(unitsProcessed) / laborHours
}

// CostPerUnit spreads a total cost over the units produced.
func CostPerUnit(totalCost decimal.Decimal, unitsProduced int) decimal.Decimal {
	if unitsProduced == 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(int64(unitsProduced)))
}

// MaintenanceEfficiency is the planned share of all maintenance hours, as a
// percentage. No maintenance at all counts as fully planned.
func MaintenanceEfficiency(plannedHours, totalHours float64) float64 {
	if totalHours == 0 {
		return 100
	}
	return plannedHours / totalHours * 100
}
