package models

import "time"

// DemandRecord is one day's observed demand for a product.
type DemandRecord struct {
	Date      time.Time `json:"date"`
	ProductID int       `json:"product_id"`
	Demand    int       `json:"demand"`
}
