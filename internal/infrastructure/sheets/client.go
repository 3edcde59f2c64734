// Package sheets loads the catalog and nutrition tables from published
// Google Sheets via their CSV export endpoint. Published sheets need no
// credentials; OAuth-gated write-back stays outside this service.
package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bevmap/backend/internal/domain"
	"github.com/bevmap/backend/internal/infrastructure/csvstore"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://docs.google.com"

// Client fetches CSV exports of published spreadsheets.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a sheets client. An empty baseURL uses the public
// docs.google.com endpoint. The export endpoint throttles aggressively on
// bursts, so requests are limited to 1/sec with a small burst allowance.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// ParseSheetURL extracts the spreadsheet id and gid from a share URL.
// Share URLs look like .../spreadsheets/d/<id>/edit?gid=<gid>#gid=<gid>;
// a missing gid defaults to the first sheet.
func ParseSheetURL(shareURL string) (sheetID, gid string, err error) {
	_, after, found := strings.Cut(shareURL, "/d/")
	if !found {
		return "", "", fmt.Errorf("%w: %q has no /d/ segment", domain.ErrInvalidSheetURL, shareURL)
	}
	sheetID, _, found = strings.Cut(after, "/")
	if !found || sheetID == "" {
		return "", "", fmt.Errorf("%w: %q has no spreadsheet id", domain.ErrInvalidSheetURL, shareURL)
	}

	gid = "0"
	if _, rest, ok := strings.Cut(shareURL, "gid="); ok {
		gid, _, _ = strings.Cut(rest, "#")
	}
	return sheetID, gid, nil
}

func (c *Client) exportURL(shareURL string) (string, error) {
	sheetID, gid, err := ParseSheetURL(shareURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=%s", c.baseURL, sheetID, gid), nil
}

// FetchCSV downloads and parses one sheet. Transient failures are retried
// up to 3 times with linear backoff.
func (c *Client) FetchCSV(ctx context.Context, shareURL string) ([][]string, error) {
	exportURL, err := c.exportURL(shareURL)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, exportURL)
		if err != nil {
			log.Printf("[SHEETS] fetch error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		r := csv.NewReader(bytes.NewReader(body))
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: parse export: %v", domain.ErrSheetFetchFailed, err)
		}
		return rows, nil
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "bevmap/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrSheetFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSheetFetchFailed, resp.StatusCode)
	}

	return body, nil
}

// CatalogSheet is a published-sheet domain.CatalogSource.
type CatalogSheet struct {
	client   *Client
	shareURL string
}

// NewCatalogSheet creates a catalog source backed by a published sheet.
func NewCatalogSheet(client *Client, shareURL string) *CatalogSheet {
	return &CatalogSheet{client: client, shareURL: shareURL}
}

// LoadCatalog fetches the sheet and parses it with the same table parser
// the CSV files use.
func (s *CatalogSheet) LoadCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := s.client.FetchCSV(ctx, s.shareURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return csvstore.ParseCatalog(rows)
}

// LabelSheet is a published-sheet domain.LabelSource.
type LabelSheet struct {
	client   *Client
	shareURL string
}

// NewLabelSheet creates a label source backed by a published sheet.
func NewLabelSheet(client *Client, shareURL string) *LabelSheet {
	return &LabelSheet{client: client, shareURL: shareURL}
}

// LoadLabels fetches the sheet and parses the nutrition table.
func (s *LabelSheet) LoadLabels(ctx context.Context) ([]domain.NutritionLabel, error) {
	rows, err := s.client.FetchCSV(ctx, s.shareURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLabelsUnavailable, err)
	}
	return csvstore.ParseLabels(rows)
}
