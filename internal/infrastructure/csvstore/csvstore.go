// Package csvstore supplies catalog and nutrition tables from CSV files
// and writes the mapping output table.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bevmap/backend/internal/domain"
	"github.com/bevmap/backend/internal/usecase"
)

// Catalog table headers as produced upstream.
const (
	colProductName   = "Product Name"
	colCategory      = "Category"
	colSize          = "Size"
	colOunce         = "Ounce"
	colTemperatureL1 = "Temperature L1"
	colTemperatureL2 = "Temperature L2"
)

// Nutrition table headers.
const (
	colIdentifier = "Identifier"
	colCalories   = "Calories"
	colCaffeine   = "Caffeine (mg)"
	colSodium     = "Sodium (mg)"
	colProtein    = "Protein (g)"
)

// CatalogFile is a CSV-backed domain.CatalogSource.
type CatalogFile struct {
	path string
}

// NewCatalogFile creates a catalog source reading from path.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

// LoadCatalog reads and parses the catalog table. Row order is preserved;
// the resolver's tie-break depends on it.
func (f *CatalogFile) LoadCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := readCSV(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return ParseCatalog(rows)
}

// LabelFile is a CSV-backed domain.LabelSource.
type LabelFile struct {
	path string
}

// NewLabelFile creates a label source reading from path.
func NewLabelFile(path string) *LabelFile {
	return &LabelFile{path: path}
}

// LoadLabels reads and parses the nutrition label table.
func (f *LabelFile) LoadLabels(ctx context.Context) ([]domain.NutritionLabel, error) {
	rows, err := readCSV(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLabelsUnavailable, err)
	}
	return ParseLabels(rows)
}

// ParseCatalog converts raw CSV rows (header row first) into catalog
// entries. The Ounce column may be absent; it is then derived from the
// size name via the fixed size table. Also used by the sheet-backed
// sources, which fetch the same tables as CSV exports.
func ParseCatalog(rows [][]string) ([]domain.CatalogEntry, error) {
	header, data, err := splitHeader(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	idx, err := requireColumns(header, colProductName, colCategory, colSize, colTemperatureL1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	entries := make([]domain.CatalogEntry, 0, len(data))
	for _, row := range data {
		entry := domain.CatalogEntry{
			ProductName:   field(row, idx, colProductName),
			Category:      field(row, idx, colCategory),
			SizeName:      field(row, idx, colSize),
			Ounce:         field(row, idx, colOunce),
			TemperatureL1: field(row, idx, colTemperatureL1),
			TemperatureL2: field(row, idx, colTemperatureL2),
		}
		if entry.Ounce == "" {
			entry.Ounce = usecase.MapSize(entry.SizeName)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseLabels converts raw CSV rows (header row first) into nutrition
// labels. Numeric cells that are empty or non-numeric become nil.
func ParseLabels(rows [][]string) ([]domain.NutritionLabel, error) {
	header, data, err := splitHeader(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLabelsUnavailable, err)
	}

	idx, err := requireColumns(header, colIdentifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLabelsUnavailable, err)
	}

	labels := make([]domain.NutritionLabel, 0, len(data))
	for _, row := range data {
		labels = append(labels, domain.NutritionLabel{
			Identifier: field(row, idx, colIdentifier),
			Calories:   numericField(row, idx, colCalories),
			Caffeine:   numericField(row, idx, colCaffeine),
			Sodium:     numericField(row, idx, colSodium),
			Protein:    numericField(row, idx, colProtein),
		})
	}
	return labels, nil
}

// WriteMappings writes the output table in the column order downstream
// consumers expect. Unmapped rows already carry the sentinel in every
// descriptive field, so records are written unchanged.
func WriteMappings(path string, records []domain.MappingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"identifier", "product_name", "ounce", "size", "category", "temperature_l1"}); err != nil {
		return fmt.Errorf("write mapping header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Identifier, r.ProductName, r.Ounce, r.Size, r.Category, r.TemperatureL1}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write mapping row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func splitHeader(rows [][]string) (header []string, data [][]string, err error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty table")
	}
	return rows[0], rows[1:], nil
}

// requireColumns indexes the header and fails on any missing required
// column: a renamed upstream column must abort the run, not silently load
// blanks.
func requireColumns(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numericField(row []string, idx map[string]int, name string) *float64 {
	raw := field(row, idx, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
