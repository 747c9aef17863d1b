// Package report persists test-run outcomes (and their screenshots) so
// results survive the process and can be compared across runs.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/atheor/gowebtest/internal/logging"
)

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("report: run not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	environment TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	screenshot  TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`

// Result statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result is one recorded test outcome.
type Result struct {
	Name       string
	Status     string
	Error      string
	Screenshot string
	Duration   time.Duration
}

// Recorder stores runs and their results in a SQLite database.
// Safe for concurrent use; database/sql serializes access.
type Recorder struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRecorder opens (creating if needed) the database at dbPath and
// applies the schema.
func NewRecorder(dbPath string, logger logging.Logger) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply report schema: %w", err)
	}

	componentLogger := logger.With(logging.Field{Key: "component", Value: "report"})
	componentLogger.Info("run recorder initialized", logging.Field{Key: "path", Value: dbPath})

	return &Recorder{db: db, logger: componentLogger}, nil
}

// StartRun opens a new run and returns its ID.
func (r *Recorder) StartRun(ctx context.Context, environment string) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, environment, started_at) VALUES (?, ?, ?)`,
		id, environment, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	r.logger.Info("run started",
		logging.Field{Key: "run_id", Value: id},
		logging.Field{Key: "environment", Value: environment})
	return id, nil
}

// FinishRun stamps the run's finish time.
func (r *Recorder) FinishRun(ctx context.Context, runID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	r.logger.Info("run finished", logging.Field{Key: "run_id", Value: runID})
	return nil
}

// Record appends one result to a run.
func (r *Recorder) Record(ctx context.Context, runID string, result Result) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results (run_id, name, status, error, screenshot, duration_ms, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, result.Name, result.Status, result.Error, result.Screenshot,
		result.Duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record result %q: %w", result.Name, err)
	}
	r.logger.Debug("result recorded",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "name", Value: result.Name},
		logging.Field{Key: "status", Value: result.Status})
	return nil
}

// Results returns all results for a run in recorded order.
func (r *Recorder) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, status, error, screenshot, duration_ms FROM results
		 WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var res Result
		var durationMs int64
		if err := rows.Scan(&res.Name, &res.Status, &res.Error, &res.Screenshot, &durationMs); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, res)
	}
	return out, rows.Err()
}

// Summary aggregates a run's results by status.
func (r *Recorder) Summary(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM results WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// Close releases the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
