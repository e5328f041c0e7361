// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite ledger of processed inputs and the
// cumulative stats derived from it. Recording is best-effort: the ledger
// never fails a conversion. See docs/ARCHITECTURE § Run History.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scandoc/pkg/types"
)

const dbFile = "history.db"

// wattHoursPerPage is the approximate embodied energy of one A4 sheet,
// used for the savings estimate shown after a run.
const wattHoursPerPage = 50

// Ledger wraps the run-history database.
type Ledger struct {
	db *sql.DB
}

// Entry is one recorded input.
type Entry struct {
	ID       int64     `json:"id"`
	RunAt    time.Time `json:"run_at"`
	Input    string    `json:"input"`
	Output   string    `json:"output,omitempty"`
	Pages    int       `json:"pages"`
	Status   string    `json:"status"`
	ErrorMsg string    `json:"error,omitempty"`
}

// Stats aggregates the whole ledger.
type Stats struct {
	Runs  int `json:"runs"`
	Pages int `json:"pages"`

	// WhSaved is the estimated energy saved by not printing and scanning
	// the converted pages, in watt hours.
	WhSaved int64 `json:"wh_saved"`
}

// DefaultPath returns the ledger location, ~/.scandoc/history.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dbFile
	}
	return filepath.Join(home, ".scandoc", dbFile)
}

// Open opens or creates the ledger at path, bootstrapping the schema.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT,
		pages INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT
	)`)
	return err
}

// Record appends one per-input result to the ledger.
func (l *Ledger) Record(res types.Result) error {
	status := "converted"
	var errMsg string
	if !res.OK() {
		status = string(res.Kind())
		errMsg = res.Err.Error()
	}

	_, err := l.db.Exec(
		`INSERT INTO runs (run_at, input, output, pages, status, error) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		res.Input.String(), res.OutputPath, res.Pages, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id, run_at, input, output, pages, status, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var runAt string
		if err := rows.Scan(&e.ID, &runAt, &e.Input, &e.Output, &e.Pages, &e.Status, &e.ErrorMsg); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		e.RunAt, _ = time.Parse(time.RFC3339, runAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary aggregates all recorded runs.
func (l *Ledger) Summary() (Stats, error) {
	var s Stats
	err := l.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(pages), 0) FROM runs`,
	).Scan(&s.Runs, &s.Pages)
	if err != nil {
		return Stats{}, fmt.Errorf("summarizing runs: %w", err)
	}
	s.WhSaved = int64(s.Pages) * wattHoursPerPage
	return s, nil
}

// EnergySaved estimates the energy saved by not printing and scanning
// pages, formatted for display.
func EnergySaved(pages int) string {
	wh := int64(pages) * wattHoursPerPage
	switch {
	case wh < 1000:
		return fmt.Sprintf("%d Wh", wh)
	case wh < 1_000_000:
		return fmt.Sprintf("%.2f kWh", float64(wh)/1000)
	default:
		return fmt.Sprintf("%.2f MWh", float64(wh)/1_000_000)
	}
}
