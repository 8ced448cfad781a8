package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRunNotFound is returned when a run ID has no ledger entry.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrDuplicateRun is returned by RecordRun when the run ID is already
	// in the ledger.
	ErrDuplicateRun = errors.New("store: run already recorded")
)

// Run is one verification run.
type Run struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	StartedAt time.Time `json:"started_at"`
	Filter    string    `json:"filter,omitempty"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
}

// Outcome is the result of one scenario within a run.
type Outcome struct {
	RunID    string   `json:"run_id"`
	Seq      int64    `json:"seq"`
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Pass     bool     `json:"pass"`
	Errors   []string `json:"errors"`
	Digest   string   `json:"digest"`
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewRunID returns a time-ordered UUIDv7 string.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordRun writes a run and all of its outcomes in one transaction. It
// assigns the run a fresh ID (when empty) and the next seq, copies both onto
// every outcome, and returns the stored run. An ID that is already recorded
// fails with ErrDuplicateRun and writes nothing.
func (s *Store) RecordRun(ctx context.Context, run Run, outcomes []Outcome) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	run.Seq = seq

	inserted, err := writeRun(ctx, tx, run)
	if err != nil {
		return Run{}, err
	}
	if !inserted {
		return Run{}, fmt.Errorf("%w: %s", ErrDuplicateRun, run.ID)
	}
	for i, o := range outcomes {
		o.RunID = run.ID
		o.Seq = run.Seq
		o.Position = i
		if err := writeOutcome(ctx, tx, o); err != nil {
			return Run{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// NextSeq returns the seq the next run will receive.
func (s *Store) NextSeq(ctx context.Context) (int64, error) {
	return nextSeq(ctx, s.db)
}

func nextSeq(ctx context.Context, db execer) (int64, error) {
	var seq sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq.Int64 + 1, nil
}

// WriteRun inserts a run. Uses ON CONFLICT(id) DO NOTHING so writing the
// same run twice is a no-op.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := writeRun(ctx, s.db, run)
	return err
}

// writeRun reports whether a new row was inserted.
func writeRun(ctx context.Context, db execer, run Run) (bool, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, started_at, filter, passed, failed, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Filter,
		run.Passed,
		run.Failed,
		run.Total,
	)
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}
	return n > 0, nil
}

// WriteOutcome inserts a scenario outcome. The referenced run must exist.
func (s *Store) WriteOutcome(ctx context.Context, o Outcome) error {
	return writeOutcome(ctx, s.db, o)
}

func writeOutcome(ctx context.Context, db execer, o Outcome) error {
	errs, err := marshalErrors(o.Errors)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO outcomes (run_id, seq, position, name, pass, errors, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, name) DO NOTHING
	`,
		o.RunID,
		o.Seq,
		o.Position,
		o.Name,
		o.Pass,
		errs,
		o.Digest,
	)
	if err != nil {
		return fmt.Errorf("write outcome %s: %w", o.Name, err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, started_at, filter, passed, failed, total
		FROM runs
		ORDER BY seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, started_at, filter, passed, failed, total
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// Outcomes returns the outcomes of a run in registration order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, position, name, pass, errors, digest
		FROM outcomes
		WHERE run_id = ?
		ORDER BY position ASC, name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []Outcome{}
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

// LastDigest returns the digest recorded for a scenario by the most recent
// run with seq below before. ok is false when no such run exists.
func (s *Store) LastDigest(ctx context.Context, name string, before int64) (digest string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT digest FROM outcomes
		WHERE name = ? AND seq < ?
		ORDER BY seq DESC
		LIMIT 1
	`, name, before).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("last digest %s: %w", name, err)
	}
	return digest, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run     Run
		started string
	)
	if err := row.Scan(&run.ID, &run.Seq, &started, &run.Filter, &run.Passed, &run.Failed, &run.Total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", run.ID, err)
	}
	run.StartedAt = t
	return run, nil
}

func scanOutcome(row scanner) (Outcome, error) {
	var (
		o    Outcome
		errs string
	)
	if err := row.Scan(&o.RunID, &o.Seq, &o.Position, &o.Name, &o.Pass, &errs, &o.Digest); err != nil {
		return Outcome{}, fmt.Errorf("scan outcome: %w", err)
	}
	list, err := unmarshalErrors(errs)
	if err != nil {
		return Outcome{}, fmt.Errorf("scan outcome %s: %w", o.Name, err)
	}
	o.Errors = list
	return o, nil
}

// marshalErrors stores failure messages as a JSON array. nil becomes [].
func marshalErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(data), nil
}

func unmarshalErrors(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return out, nil
}
