package usecase

import (
	"fmt"

	"github.com/bevmap/backend/internal/domain"
)

// ProductOption is one row of the upstream product option table.
type ProductOption struct {
	Name     string
	Category string
}

// TemperatureOption is one row of the upstream temperature option table.
type TemperatureOption struct {
	L1 string
	L2 string
}

// SizeOption is one row of the upstream size option table.
type SizeOption struct {
	Name  string
	Ounce string
}

// BuildCatalog expands the option tables into the full joinable catalog:
// the ordered cross product of products x temperatures x sizes. Iteration
// order is products outermost, sizes innermost, matching the order the
// existing datasets were generated in; the resolver's tie-break depends on
// a stable catalog sequence. A size option with no explicit ounce falls
// back to the fixed size table.
func BuildCatalog(products []ProductOption, temperatures []TemperatureOption, sizes []SizeOption) []domain.CatalogEntry {
	catalog := make([]domain.CatalogEntry, 0, len(products)*len(temperatures)*len(sizes))
	for _, p := range products {
		for _, t := range temperatures {
			for _, sz := range sizes {
				ounce := sz.Ounce
				if ounce == "" {
					ounce = MapSize(sz.Name)
				}
				catalog = append(catalog, domain.CatalogEntry{
					ProductName:   p.Name,
					Category:      p.Category,
					SizeName:      sz.Name,
					Ounce:         ounce,
					TemperatureL1: t.L1,
					TemperatureL2: t.L2,
				})
			}
		}
	}
	return catalog
}

// BuildIdentifier renders a catalog entry in the nutrition dataset's
// identifier convention, for reporting which label a row is expected to
// join with.
func BuildIdentifier(entry domain.CatalogEntry) string {
	return fmt.Sprintf("%s %s %s %s",
		entry.Ounce,
		NormalizeName(entry.ProductName),
		MapTemperature(entry.TemperatureL1),
		entry.Category,
	)
}
