package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bevmap/backend/config"
	httpDelivery "github.com/bevmap/backend/internal/delivery/http"
	"github.com/bevmap/backend/internal/domain"
	"github.com/bevmap/backend/internal/infrastructure/cache"
	"github.com/bevmap/backend/internal/infrastructure/csvstore"
	"github.com/bevmap/backend/internal/infrastructure/sheets"
	"github.com/bevmap/backend/internal/infrastructure/sqlitestore"
	"github.com/bevmap/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting bevmap v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Threshold: %d, keyword bonus: %d", cfg.Matching.MinScore, cfg.Matching.KeywordBonus)

	ctx := context.Background()

	// Pick input sources: published sheets win over local CSV when both set
	catalogSource, labelSource := buildSources(cfg)

	// Upstream data must be present and loadable; resolving against a
	// missing table would silently emit an all-unmapped output
	catalog, err := catalogSource.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	labels, err := labelSource.LoadLabels(ctx)
	if err != nil {
		log.Fatalf("Failed to load nutrition labels: %v", err)
	}
	log.Printf("Loaded %d catalog entries, %d nutrition labels", len(catalog), len(labels))

	// Run the resolution pass
	resolver := usecase.NewResolverService(usecase.MatchConfig{
		MinScore:           cfg.Matching.MinScore,
		KeywordBonus:       cfg.Matching.KeywordBonus,
		BoostKeywords:      cfg.Matching.BoostKeywords,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	records, err := resolver.ResolveAll(ctx, catalog, labels)
	if err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}

	// Write the mapping output table
	if err := csvstore.WriteMappings(cfg.Data.OutputCSV, records); err != nil {
		log.Fatalf("Failed to write mapping output: %v", err)
	}
	log.Printf("Wrote mapping output to %s", cfg.Data.OutputCSV)

	summary := usecase.Summarize(records)
	log.Printf("Mapping summary: total=%d mapped=%d unmapped=%d", summary.Total, summary.Mapped, summary.Unmapped)

	// Persist the run when a store is configured
	var store *sqlitestore.Store
	if cfg.Data.SQLitePath != "" {
		store, err = sqlitestore.Open(cfg.Data.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open mapping store: %v", err)
		}
		defer store.Close()

		runID, err := store.SaveRun(ctx, records)
		if err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
		log.Printf("Persisted run %d to %s", runID, cfg.Data.SQLitePath)
	}

	if !cfg.Server.Enabled {
		return
	}

	// Serve the completed run
	resultCache := cache.NewResultCache(cfg.Server.CacheTTL)
	resultCache.Set(records)

	handler := httpDelivery.NewHandler(store, resultCache)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Results server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildSources wires catalog and label sources from config.
func buildSources(cfg *config.Config) (domain.CatalogSource, domain.LabelSource) {
	var client *sheets.Client
	if cfg.Data.CatalogSheetURL != "" || cfg.Data.NutritionSheetURL != "" {
		client = sheets.NewClient("")
	}

	var catalogSource domain.CatalogSource
	if cfg.Data.CatalogSheetURL != "" {
		catalogSource = sheets.NewCatalogSheet(client, cfg.Data.CatalogSheetURL)
	} else {
		catalogSource = csvstore.NewCatalogFile(cfg.Data.CatalogCSV)
	}

	var labelSource domain.LabelSource
	if cfg.Data.NutritionSheetURL != "" {
		labelSource = sheets.NewLabelSheet(client, cfg.Data.NutritionSheetURL)
	} else {
		labelSource = csvstore.NewLabelFile(cfg.Data.NutritionCSV)
	}

	return catalogSource, labelSource
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
