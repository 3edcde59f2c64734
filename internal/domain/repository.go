package domain

import "context"

// CatalogSource supplies the read-only catalog table for a run.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]CatalogEntry, error)
}

// LabelSource supplies the read-only nutrition label table for a run.
type LabelSource interface {
	LoadLabels(ctx context.Context) ([]NutritionLabel, error)
}

// MappingStore persists completed resolution runs and serves them back in
// saved order.
type MappingStore interface {
	SaveRun(ctx context.Context, records []MappingRecord) (int64, error)
	LatestRun(ctx context.Context) ([]MappingRecord, error)
}
