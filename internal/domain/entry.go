package domain

import "time"

// DefaultUnit is stored with entries whose quantity is expressed in grams.
const DefaultUnit = "g"

// Entry is a single journal line: a product eaten at a given time.
// Nutrient values are per 100g and nil when the product does not declare them.
type Entry struct {
	ID                int64     `json:"id"`
	Barcode           string    `json:"barcode"`
	ProductName       string    `json:"product_name"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	Nutriscore        string    `json:"nutriscore,omitempty"`
	EnergyKcal100g    *float64  `json:"energy_kcal"`
	Proteins100g      *float64  `json:"proteins"`
	Carbohydrates100g *float64  `json:"carbohydrates"`
	Fat100g           *float64  `json:"fat"`
	Timestamp         time.Time `json:"timestamp"`
}

// ConsumedKcal returns the energy of the eaten quantity, 0 when unknown.
func (e Entry) ConsumedKcal() float64 {
	if e.EnergyKcal100g == nil || e.Quantity <= 0 {
		return 0
	}
	return *e.EnergyKcal100g * e.Quantity / 100
}

// NewEntry snapshots the product nutriments at the time it is logged.
func NewEntry(p Product, quantity float64, at time.Time) Entry {
	return Entry{
		Barcode:           p.Barcode,
		ProductName:       p.Name,
		Quantity:          quantity,
		Unit:              DefaultUnit,
		Nutriscore:        p.Nutriscore,
		EnergyKcal100g:    p.EnergyKcal,
		Proteins100g:      p.Proteins,
		Carbohydrates100g: p.Carbohydrates,
		Fat100g:           p.Fat,
		Timestamp:         at,
	}
}
