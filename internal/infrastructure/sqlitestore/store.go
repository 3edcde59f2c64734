// Package sqlitestore persists completed mapping runs in a local sqlite
// database so the results API can serve them after the batch exits.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bevmap/backend/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS mapping_runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS mappings (
	run_id         INTEGER NOT NULL REFERENCES mapping_runs(id),
	seq            INTEGER NOT NULL,
	identifier     TEXT NOT NULL,
	product_name   TEXT NOT NULL,
	ounce          TEXT NOT NULL,
	size           TEXT NOT NULL,
	category       TEXT NOT NULL,
	temperature_l1 TEXT NOT NULL,
	score          INTEGER NOT NULL,
	mapped         INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Store is a sqlite-backed domain.MappingStore.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the mapping database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mapping db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create mapping schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores one completed resolution run transactionally and returns
// its run id. The seq column preserves record order.
func (s *Store) SaveRun(ctx context.Context, records []domain.MappingRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin run tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO mapping_runs (created_at) VALUES (?)`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mappings
			(run_id, seq, identifier, product_name, ounce, size, category, temperature_l1, score, mapped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		mapped := 0
		if r.Mapped {
			mapped = 1
		}
		if _, err := stmt.ExecContext(ctx, runID, i, r.Identifier, r.ProductName, r.Ounce, r.Size, r.Category, r.TemperatureL1, r.Score, mapped); err != nil {
			return 0, fmt.Errorf("insert mapping %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the records of the most recent run in saved order, or
// domain.ErrRunNotFound when no run exists yet.
func (s *Store) LatestRun(ctx context.Context) ([]domain.MappingRecord, error) {
	var runID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM mapping_runs ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest run id: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, product_name, ounce, size, category, temperature_l1, score, mapped
		FROM mappings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []domain.MappingRecord
	for rows.Next() {
		var r domain.MappingRecord
		var mapped int
		if err := rows.Scan(&r.Identifier, &r.ProductName, &r.Ounce, &r.Size, &r.Category, &r.TemperatureL1, &r.Score, &mapped); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		r.Mapped = mapped != 0
		records = append(records, r)
	}
	return records, rows.Err()
}
