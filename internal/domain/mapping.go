package domain

// Unmapped is the literal written into every descriptive field of a record
// whose label found no acceptable catalog entry. Downstream consumers key
// off this exact string, so it is part of the output contract.
const Unmapped = "unmapped"

// MappingRecord is the outcome of resolving one nutrition label against the
// catalog. Exactly one record exists per label: either a matched catalog
// entry with its score, or the unmapped sentinel.
type MappingRecord struct {
	Identifier    string `json:"identifier"`
	ProductName   string `json:"productName"`
	Ounce         string `json:"ounce"`
	Size          string `json:"size"`
	Category      string `json:"category"`
	TemperatureL1 string `json:"temperatureL1"`
	Score         int    `json:"score,omitempty"`
	Mapped        bool   `json:"mapped"`
}

// NewMappedRecord builds the record for a label resolved to entry.
func NewMappedRecord(identifier string, entry CatalogEntry, score int) MappingRecord {
	return MappingRecord{
		Identifier:    identifier,
		ProductName:   entry.ProductName,
		Ounce:         entry.Ounce,
		Size:          entry.SizeName,
		Category:      entry.Category,
		TemperatureL1: entry.TemperatureL1,
		Score:         score,
		Mapped:        true,
	}
}

// NewUnmappedRecord builds the terminal record for a label that matched
// nothing. Every field except the identifier carries the sentinel.
func NewUnmappedRecord(identifier string) MappingRecord {
	return MappingRecord{
		Identifier:    identifier,
		ProductName:   Unmapped,
		Ounce:         Unmapped,
		Size:          Unmapped,
		Category:      Unmapped,
		TemperatureL1: Unmapped,
	}
}

// MappingSummary aggregates one resolution run.
type MappingSummary struct {
	Total    int `json:"total"`
	Mapped   int `json:"mapped"`
	Unmapped int `json:"unmapped"`
}
