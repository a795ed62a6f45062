// Package history persists completed simulation runs to a SQLite
// ledger (spec §6.6) so a later `rtalgs history` or `rtalgs serve`
// invocation can look one up by run ID.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
	"github.com/rtalgs/rtalgs/internal/metrics"
)

// migrations is executed in order against a fresh or existing database;
// every statement is idempotent so Open can run it unconditionally.
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			policy           TEXT NOT NULL,
			max_time         INTEGER NOT NULL,
			context_switches INTEGER NOT NULL,
			utilization      REAL NOT NULL,
			bound            REAL NOT NULL,
			verdict          TEXT NOT NULL,
			timeline         TEXT NOT NULL,
			created_at       TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS run_events (
			run_id   TEXT NOT NULL,
			tick     INTEGER NOT NULL,
			kind     TEXT NOT NULL,
			sys_id   TEXT NOT NULL,
			name     TEXT NOT NULL,
			instance INTEGER NOT NULL,
			message  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id)`,
	}
}

// Store is a handle to the run ledger.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// applies every migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate history db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record is one completed run as read back from the ledger.
type Record struct {
	ID              string
	Title           string
	Policy          string
	MaxTime         int
	ContextSwitches int
	Utilization     float64
	Bound           float64
	Verdict         string
	Timeline        string
	CreatedAt       time.Time
}

// SaveRun writes a completed simulation and its diagnostics, returning
// the generated run ID.
func (s *Store) SaveRun(ts *domain.TaskSet, pol kernel.ID, result kernel.Result) (string, error) {
	id := uuid.New().String()
	timeline := string(result.History[:ts.MaxTime+1])

	// The ledger's policy column holds the short code (RM, EDF, LLF,
	// MUF), not the display name pol.String() returns.
	code := pol.String()
	switch pol {
	case kernel.RM:
		code = "RM"
	case kernel.EDF:
		code = "EDF"
	case kernel.LLF:
		code = "LLF"
	case kernel.MUF:
		code = "MUF"
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, title, policy, max_time, context_switches, utilization, bound, verdict, timeline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, ts.Title, code, ts.MaxTime, result.ContextSwitches,
		result.Verdict.Utilization, result.Verdict.Bound, result.Verdict.Label, timeline)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	policyLabel := pol.String()
	metrics.RunsSaved.WithLabelValues(policyLabel, result.Verdict.Label).Inc()
	metrics.ContextSwitches.WithLabelValues(policyLabel).Observe(float64(result.ContextSwitches))

	for _, e := range result.Diagnostics {
		_, err := s.db.Exec(`
			INSERT INTO run_events (run_id, tick, kind, sys_id, name, instance, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, e.Tick, e.Kind.String(), string(e.SysID), e.Name, e.Instance, e.Message)
		if err != nil {
			return "", fmt.Errorf("insert run event: %w", err)
		}
		if e.Kind == kernel.EventDeadlineMiss {
			metrics.DeadlineMisses.WithLabelValues(policyLabel).Inc()
		}
	}
	return id, nil
}

// GetRun looks up one run by ID.
func (s *Store) GetRun(id string) (Record, error) {
	var r Record
	var createdStr string
	err := s.db.QueryRow(`
		SELECT id, title, policy, max_time, context_switches, utilization, bound, verdict, timeline, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.Title, &r.Policy, &r.MaxTime, &r.ContextSwitches,
		&r.Utilization, &r.Bound, &r.Verdict, &r.Timeline, &createdStr)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get run %s: %w", id, err)
	}
	r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	return r, nil
}

// Timeline returns just the stored tick-by-tick history string for a run.
func (s *Store) Timeline(id string) (string, error) {
	r, err := s.GetRun(id)
	if err != nil {
		return "", err
	}
	return r.Timeline, nil
}

// ListRuns returns every run, most recent first.
func (s *Store) ListRuns() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, title, policy, max_time, context_switches, utilization, bound, verdict, timeline, created_at
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdStr string
		if err := rows.Scan(&r.ID, &r.Title, &r.Policy, &r.MaxTime, &r.ContextSwitches,
			&r.Utilization, &r.Bound, &r.Verdict, &r.Timeline, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
		records = append(records, r)
	}
	return records, rows.Err()
}
