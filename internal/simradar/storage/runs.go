package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one completed (or in-flight) sim_* invocation's registry row.
type Run struct {
	RunID          string
	Operation      string // "sim_radar", "sim_rcs", "sim_lidar"
	StartedAtNs    int64
	FinishedAtNs   *int64
	FreeTierLimit  *int
	RayLogPath     string
	Warnings       []string
	Error          string
}

// RunStore persists Run rows.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore backed by db.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.DB}
}

// InsertRun creates a new run row. If run.RunID is empty a UUID is
// generated. If run.StartedAtNs is zero, the current time is used.
func (s *RunStore) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.StartedAtNs == 0 {
		run.StartedAtNs = time.Now().UnixNano()
	}

	warningsJSON, err := marshalWarnings(run.Warnings)
	if err != nil {
		return fmt.Errorf("storage: marshal warnings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sim_runs (run_id, operation, started_at_ns, finished_at_ns,
			free_tier_limit, ray_log_path, warnings_json, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Operation, run.StartedAtNs, nullInt64(run.FinishedAtNs),
		nullIntPtr(run.FreeTierLimit), nullString(run.RayLogPath), nullString(warningsJSON), nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("storage: insert run: %w", err)
	}
	return nil
}

// FinishRun records a run's completion time, warnings, and error (if any).
func (s *RunStore) FinishRun(runID string, finishedAtNs int64, warnings []string, runErr string) error {
	warningsJSON, err := marshalWarnings(warnings)
	if err != nil {
		return fmt.Errorf("storage: marshal warnings: %w", err)
	}
	res, err := s.db.Exec(`
		UPDATE sim_runs SET finished_at_ns = ?, warnings_json = ?, error = ?
		WHERE run_id = ?`,
		finishedAtNs, nullString(warningsJSON), nullString(runErr), runID,
	)
	if err != nil {
		return fmt.Errorf("storage: finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: finish run: no run with id %s", runID)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, operation, started_at_ns, finished_at_ns,
		       free_tier_limit, ray_log_path, warnings_json, error
		FROM sim_runs WHERE run_id = ?`, runID)
	return scanRun(row)
}

// ListRuns retrieves all runs, optionally filtered by operation, most
// recently started first.
func (s *RunStore) ListRuns(operation string) ([]*Run, error) {
	var rows *sql.Rows
	var err error
	if operation != "" {
		rows, err = s.db.Query(`
			SELECT run_id, operation, started_at_ns, finished_at_ns,
			       free_tier_limit, ray_log_path, warnings_json, error
			FROM sim_runs WHERE operation = ? ORDER BY started_at_ns DESC`, operation)
	} else {
		rows, err = s.db.Query(`
			SELECT run_id, operation, started_at_ns, finished_at_ns,
			       free_tier_limit, ray_log_path, warnings_json, error
			FROM sim_runs ORDER BY started_at_ns DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var finishedAtNs sql.NullInt64
	var freeTierLimit sql.NullInt64
	var rayLogPath, warningsJSON, errStr sql.NullString

	err := row.Scan(
		&run.RunID, &run.Operation, &run.StartedAtNs, &finishedAtNs,
		&freeTierLimit, &rayLogPath, &warningsJSON, &errStr,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("storage: scan run: %w", err)
	}

	if finishedAtNs.Valid {
		v := finishedAtNs.Int64
		run.FinishedAtNs = &v
	}
	if freeTierLimit.Valid {
		v := int(freeTierLimit.Int64)
		run.FreeTierLimit = &v
	}
	if rayLogPath.Valid {
		run.RayLogPath = rayLogPath.String
	}
	if errStr.Valid {
		run.Error = errStr.String
	}
	if warningsJSON.Valid && warningsJSON.String != "" {
		if err := json.Unmarshal([]byte(warningsJSON.String), &run.Warnings); err != nil {
			return nil, fmt.Errorf("storage: unmarshal warnings: %w", err)
		}
	}
	return &run, nil
}

func marshalWarnings(warnings []string) (string, error) {
	if len(warnings) == 0 {
		return "", nil
	}
	b, err := json.Marshal(warnings)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullIntPtr(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
