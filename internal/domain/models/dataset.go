package models

import (
	"errors"
	"time"
)

// Lookup errors shared by the dataset accessors and the HTTP layer.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrMachineNotFound = errors.New("machine not found")
)

// Dataset bundles the four tabular datasets every dashboard page reads.
// It is an immutable snapshot: refreshes build a new Dataset and swap it in.
type Dataset struct {
	Inventory   []InventoryItem  `json:"inventory"`
	Machines    []Machine        `json:"machines"`
	Operations  []OperationsArea `json:"operations"`
	Demand      []DemandRecord   `json:"demand"`
	GeneratedAt time.Time        `json:"generated_at"`
	Seed        int64            `json:"seed"`
}

// ItemByID resolves an inventory item by product id.
func (d *Dataset) ItemByID(productID int) (InventoryItem, error) {
	for _, item := range d.Inventory {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return InventoryItem{}, ErrProductNotFound
}

// MachineByID resolves a production line by machine id.
func (d *Dataset) MachineByID(machineID int) (Machine, error) {
	for _, m := range d.Machines {
		if m.MachineID == machineID {
			return m, nil
		}
	}
	return Machine{}, ErrMachineNotFound
}

// DemandFor returns the demand history for one product, preserving order.
func (d *Dataset) DemandFor(productID int) []DemandRecord {
	var records []DemandRecord
	for _, rec := range d.Demand {
		if rec.ProductID == productID {
			records = append(records, rec)
		}
	}
	return records
}

// Robots returns the subset of machines that are robotic arms.
func (d *Dataset) Robots() []Machine {
	var robots []Machine
	for _, m := range d.Machines {
		if m.IsRobot() {
			robots = append(robots, m)
		}
	}
	return robots
}
