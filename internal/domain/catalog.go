package domain

import "strings"

// CatalogEntry represents one sellable beverage combination from the
// catalog: a product at a specific size and temperature.
type CatalogEntry struct {
	ProductName   string `json:"productName"`
	Category      string `json:"category"`
	SizeName      string `json:"sizeName"`
	Ounce         string `json:"ounce"`
	TemperatureL1 string `json:"temperatureL1"`
	TemperatureL2 string `json:"temperatureL2,omitempty"`
}

// IsLatte reports whether the entry is a latte variant. Lattes and
// non-lattes are never matched against each other.
func (e CatalogEntry) IsLatte() bool {
	return strings.Contains(strings.ToLower(e.ProductName), "latte")
}

// NutritionLabel is one row of the nutrition dataset: a free-form beverage
// identifier (e.g. "16 oz Jasmine Green Tea Hot") plus nutrition facts.
// Numeric fields are nil when the source cell is empty.
type NutritionLabel struct {
	Identifier string   `json:"identifier"`
	Calories   *float64 `json:"calories,omitempty"`
	Caffeine   *float64 `json:"caffeine,omitempty"`
	Sodium     *float64 `json:"sodium,omitempty"`
	Protein    *float64 `json:"protein,omitempty"`
}
