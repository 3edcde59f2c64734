package http

import (
	"errors"
	"net/http"

	"github.com/bevmap/backend/internal/domain"
	"github.com/bevmap/backend/internal/infrastructure/cache"
	"github.com/bevmap/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Handler serves the completed mapping run. It is read-only over batch
// results; labels are never matched on request.
type Handler struct {
	store       domain.MappingStore
	resultCache *cache.ResultCache
}

// NewHandler creates a new HTTP handler over the mapping store.
func NewHandler(store domain.MappingStore, resultCache *cache.ResultCache) *Handler {
	return &Handler{store: store, resultCache: resultCache}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bevmap-backend",
		"version": "1.0.0",
	})
}

// GetMappings returns the latest resolution run's records in run order.
func (h *Handler) GetMappings(c *gin.Context) {
	records, err := h.latestRun(c)
	if err != nil {
		h.writeRunError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"mappings": records,
	})
}

// GetUnmapped returns only the records that failed to map, for review.
func (h *Handler) GetUnmapped(c *gin.Context) {
	records, err := h.latestRun(c)
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	var unmapped []domain.MappingRecord
	for _, r := range records {
		if !r.Mapped {
			unmapped = append(unmapped, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(unmapped),
		"mappings": unmapped,
	})
}

// GetSummary returns mapped/unmapped counts for the latest run.
func (h *Handler) GetSummary(c *gin.Context) {
	records, err := h.latestRun(c)
	if err != nil {
		h.writeRunError(c, err)
		return
	}
	c.JSON(http.StatusOK, usecase.Summarize(records))
}

func (h *Handler) latestRun(c *gin.Context) ([]domain.MappingRecord, error) {
	if records, ok := h.resultCache.Get(); ok {
		return records, nil
	}

	records, err := h.store.LatestRun(c.Request.Context())
	if err != nil {
		return nil, err
	}

	h.resultCache.Set(records)
	return records, nil
}

func (h *Handler) writeRunError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mapping run available yet"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
