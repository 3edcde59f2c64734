package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bevmap/backend/config"
	"github.com/bevmap/backend/internal/domain"
	"github.com/bevmap/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
)

// fakeStore implements domain.MappingStore for handler tests
type fakeStore struct {
	records []domain.MappingRecord
	err     error
	calls   int
}

func (f *fakeStore) SaveRun(ctx context.Context, records []domain.MappingRecord) (int64, error) {
	f.records = records
	return 1, nil
}

func (f *fakeStore) LatestRun(ctx context.Context) ([]domain.MappingRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func testRouter(store domain.MappingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
	}
	handler := NewHandler(store, cache.NewResultCache(time.Minute))
	return SetupRouter(cfg, handler)
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(&fakeStore{})
	w := doRequest(t, router, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestGetMappings(t *testing.T) {
	store := &fakeStore{records: []domain.MappingRecord{
		{Identifier: "16 oz Jasmine Green Tea Hot", ProductName: "Jasmine Green Tea", Mapped: true, Score: 110},
		domain.NewUnmappedRecord("22 oz Mystery Drink Hot"),
	}}
	router := testRouter(store)

	w := doRequest(t, router, "/api/v1/mappings")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Count    int                    `json:"count"`
		Mappings []domain.MappingRecord `json:"mappings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Count != 2 || len(body.Mappings) != 2 {
		t.Errorf("count = %d, mappings = %d, want 2/2", body.Count, len(body.Mappings))
	}
	if body.Mappings[1].ProductName != domain.Unmapped {
		t.Errorf("second record product = %q, want sentinel", body.Mappings[1].ProductName)
	}
}

func TestGetMappings_NoRunYet(t *testing.T) {
	router := testRouter(&fakeStore{err: domain.ErrRunNotFound})

	w := doRequest(t, router, "/api/v1/mappings")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetMappings_UsesCache(t *testing.T) {
	store := &fakeStore{records: []domain.MappingRecord{
		{Identifier: "a", Mapped: true},
	}}
	router := testRouter(store)

	doRequest(t, router, "/api/v1/mappings")
	doRequest(t, router, "/api/v1/mappings")

	if store.calls != 1 {
		t.Errorf("store hit %d times, want 1 (second request served from cache)", store.calls)
	}
}

func TestGetUnmapped(t *testing.T) {
	store := &fakeStore{records: []domain.MappingRecord{
		{Identifier: "a", Mapped: true},
		domain.NewUnmappedRecord("b"),
		domain.NewUnmappedRecord("c"),
	}}
	router := testRouter(store)

	w := doRequest(t, router, "/api/v1/mappings/unmapped")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Count    int                    `json:"count"`
		Mappings []domain.MappingRecord `json:"mappings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
	for _, r := range body.Mappings {
		if r.Mapped {
			t.Errorf("record %q is mapped, want only unmapped", r.Identifier)
		}
	}
}

func TestGetSummary(t *testing.T) {
	store := &fakeStore{records: []domain.MappingRecord{
		{Identifier: "a", Mapped: true},
		{Identifier: "b", Mapped: true},
		domain.NewUnmappedRecord("c"),
	}}
	router := testRouter(store)

	w := doRequest(t, router, "/api/v1/mappings/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var summary domain.MappingSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Total != 3 || summary.Mapped != 2 || summary.Unmapped != 1 {
		t.Errorf("summary = %+v, want total=3 mapped=2 unmapped=1", summary)
	}
}
