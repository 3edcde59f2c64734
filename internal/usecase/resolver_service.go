package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/bevmap/backend/internal/domain"
)

// ResolverService runs one full resolution pass: every nutrition label
// against the whole catalog, emitting exactly one mapping record per label.
type ResolverService struct {
	matcher            *MatchingService
	enableDebugLogging bool
}

// NewResolverService creates a resolver around a matching service built
// from config.
func NewResolverService(config MatchConfig) *ResolverService {
	return &ResolverService{
		matcher:            NewMatchingService(config),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ResolveAll maps each label to its best catalog entry or to the unmapped
// sentinel, preserving label input order. An empty catalog or label table
// aborts the run: resolving against a missing table would silently emit an
// all-unmapped output that looks like a successful run.
func (s *ResolverService) ResolveAll(ctx context.Context, catalog []domain.CatalogEntry, labels []domain.NutritionLabel) ([]domain.MappingRecord, error) {
	if len(catalog) == 0 {
		return nil, domain.ErrCatalogUnavailable
	}
	if len(labels) == 0 {
		return nil, domain.ErrLabelsUnavailable
	}

	records := make([]domain.MappingRecord, 0, len(labels))

	for _, label := range labels {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry, score, err := s.matcher.FindBestMatch(label.Identifier, catalog)
		if err != nil {
			if !errors.Is(err, domain.ErrNoMatch) {
				return nil, err
			}
			log.Printf("[RESOLVE] no good match for: %s", label.Identifier)
			records = append(records, domain.NewUnmappedRecord(label.Identifier))
			continue
		}

		records = append(records, domain.NewMappedRecord(label.Identifier, *entry, score))
	}

	return records, nil
}

// Summarize counts mapped and unmapped records for run reporting.
func Summarize(records []domain.MappingRecord) domain.MappingSummary {
	summary := domain.MappingSummary{Total: len(records)}
	for _, r := range records {
		if r.Mapped {
			summary.Mapped++
		} else {
			summary.Unmapped++
		}
	}
	return summary
}
