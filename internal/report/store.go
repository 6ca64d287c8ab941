// Package report persists and renders the results of canonicalization runs.
package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/patcanon/internal/diagnostics"
)

// Store is the SQLite data access layer for run reports.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at dbPath with foreign keys enforced.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(30000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS runs (
  id              INTEGER PRIMARY KEY,
  module          TEXT NOT NULL,
  file            TEXT NOT NULL,
  created_at      TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS diagnostics (
  id              INTEGER PRIMARY KEY,
  run_id          INTEGER NOT NULL REFERENCES runs(id),
  case_name       TEXT NOT NULL,
  code            TEXT NOT NULL,
  severity        TEXT NOT NULL,
  file            TEXT,
  start_offset    INTEGER NOT NULL,
  end_offset      INTEGER NOT NULL,
  message         TEXT NOT NULL,
  original_start  INTEGER,
  original_end    INTEGER
);

CREATE TABLE IF NOT EXISTS bindings (
  id              INTEGER PRIMARY KEY,
  run_id          INTEGER NOT NULL REFERENCES runs(id),
  case_name       TEXT NOT NULL,
  ordinal         INTEGER NOT NULL,
  name            TEXT NOT NULL,
  symbol          TEXT NOT NULL,
  start_offset    INTEGER NOT NULL,
  end_offset      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(run_id);
CREATE INDEX IF NOT EXISTS idx_diagnostics_code ON diagnostics(code);
CREATE INDEX IF NOT EXISTS idx_bindings_run ON bindings(run_id);
`

// InsertRun records a new run and sets r.ID.
func (s *Store) InsertRun(r *Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		"INSERT INTO runs (module, file, created_at) VALUES (?, ?, ?)",
		r.Module, r.File, r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	r.ID = id
	return id, nil
}

// SaveRun is InsertRun for a module and file.
func (s *Store) SaveRun(module, file string) (int64, error) {
	return s.InsertRun(&Run{Module: module, File: file})
}

func (s *Store) Run(id int64) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRow(
		"SELECT id, module, file, created_at FROM runs WHERE id = ?", id,
	).Scan(&r.ID, &r.Module, &r.File, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return r, nil
}

// LatestRun returns the most recent run, or nil when the store is empty.
func (s *Store) LatestRun() (*Run, error) {
	r := &Run{}
	err := s.db.QueryRow(
		"SELECT id, module, file, created_at FROM runs ORDER BY id DESC LIMIT 1",
	).Scan(&r.ID, &r.Module, &r.File, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// SaveDiagnostics stores the problems reported for one case in a single transaction.
func (s *Store) SaveDiagnostics(runID int64, caseName string, errs []*diagnostics.DiagnosticError) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO diagnostics
		(run_id, case_name, code, severity, file, start_offset, end_offset, message, original_start, original_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare diagnostics: %w", err)
	}
	defer stmt.Close()

	for _, e := range errs {
		var origStart, origEnd *uint32
		if e.OriginalRegion != nil {
			origStart = &e.OriginalRegion.Start.Offset
			origEnd = &e.OriginalRegion.End.Offset
		}
		if _, err := stmt.Exec(
			runID, caseName, string(e.Code), e.Severity.String(), e.File,
			e.Region.Start.Offset, e.Region.End.Offset, e.Message(), origStart, origEnd,
		); err != nil {
			return fmt.Errorf("insert diagnostic %s: %w", e.Code, err)
		}
	}
	return tx.Commit()
}

// SaveBindings stores the ordered bindings of one case. Ordinals are
// assigned from the slice order.
func (s *Store) SaveBindings(runID int64, caseName string, bindings []Binding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO bindings
		(run_id, case_name, ordinal, name, symbol, start_offset, end_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare bindings: %w", err)
	}
	defer stmt.Close()

	for i, b := range bindings {
		if _, err := stmt.Exec(runID, caseName, i, b.Name, b.Symbol, b.Start, b.End); err != nil {
			return fmt.Errorf("insert binding %s: %w", b.Name, err)
		}
	}
	return tx.Commit()
}

// Diagnostics lists the stored diagnostics of a run by case, then position.
func (s *Store) Diagnostics(runID int64) ([]*Diagnostic, error) {
	rows, err := s.db.Query(`SELECT id, run_id, case_name, code, severity, COALESCE(file, ''),
		start_offset, end_offset, message, original_start, original_end
		FROM diagnostics WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	defer rows.Close()

	var out []*Diagnostic
	for rows.Next() {
		d := &Diagnostic{}
		var origStart, origEnd sql.NullInt64
		if err := rows.Scan(&d.ID, &d.RunID, &d.Case, &d.Code, &d.Severity, &d.File,
			&d.Start, &d.End, &d.Message, &origStart, &origEnd); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		if origStart.Valid && origEnd.Valid {
			start, end := uint32(origStart.Int64), uint32(origEnd.Int64)
			d.OriginalStart, d.OriginalEnd = &start, &end
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountByCode tallies the diagnostics of a run per error code.
func (s *Store) CountByCode(runID int64) (map[string]int, error) {
	rows, err := s.db.Query("SELECT code, COUNT(*) FROM diagnostics WHERE run_id = ? GROUP BY code", runID)
	if err != nil {
		return nil, fmt.Errorf("count by code: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[code] = n
	}
	return counts, rows.Err()
}

// Bindings lists the stored bindings of a run in case and source order.
func (s *Store) Bindings(runID int64) ([]*Binding, error) {
	rows, err := s.db.Query(`SELECT id, run_id, case_name, ordinal, name, symbol, start_offset, end_offset
		FROM bindings WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	defer rows.Close()

	var out []*Binding
	for rows.Next() {
		b := &Binding{}
		if err := rows.Scan(&b.ID, &b.RunID, &b.Case, &b.Ordinal, &b.Name, &b.Symbol, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
