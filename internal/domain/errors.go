package domain

import "errors"

var (
	// ErrNoMatch is returned when no catalog entry meets the acceptance
	// threshold for a label. Callers translate it into an unmapped record,
	// never into a failed run.
	ErrNoMatch = errors.New("no catalog entry met the match threshold")

	// ErrCatalogUnavailable is returned when the catalog table is missing or
	// empty. Resolving against an empty catalog would silently mark every
	// label unmapped, so this aborts the run instead.
	ErrCatalogUnavailable = errors.New("catalog data unavailable")

	// ErrLabelsUnavailable is returned when the nutrition label table is
	// missing or empty.
	ErrLabelsUnavailable = errors.New("nutrition label data unavailable")

	// ErrInvalidSheetURL is returned when a spreadsheet share URL cannot be
	// parsed into a spreadsheet id.
	ErrInvalidSheetURL = errors.New("invalid spreadsheet URL")

	// ErrSheetFetchFailed is returned when the CSV export download fails.
	ErrSheetFetchFailed = errors.New("spreadsheet export download failed")

	// ErrRunNotFound is returned when the mapping store holds no completed
	// run yet.
	ErrRunNotFound = errors.New("no mapping run found")
)
