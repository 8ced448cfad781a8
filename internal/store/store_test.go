package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore opens a fresh ledger in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func latestVersion(t *testing.T) int {
	t.Helper()
	steps, err := loadMigrations()
	require.NoError(t, err)
	return steps[len(steps)-1].version
}

func TestLoadMigrations_Contiguous(t *testing.T) {
	steps, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	for i, m := range steps {
		assert.Equal(t, i+1, m.version)
		assert.NotEmpty(t, m.name)
		assert.NotEmpty(t, m.sql)
	}
	assert.Equal(t, "ledger", steps[0].name)
}

func TestOpen_FreshLedgerAtLatestVersion(t *testing.T) {
	s := createTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, latestVersion(t), v)
}

func TestOpen_ConnectionSettings(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			require.NoError(t, s.db.QueryRow("PRAGMA "+tt.pragma).Scan(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	run, err := s.RecordRun(ctx, Run{StartedAt: time.Unix(0, 0).UTC(), Total: 2, Passed: 2}, sampleOutcomes())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for i := 0; i < 2; i++ {
		s, err := Open(path)
		require.NoError(t, err, "reopen %d", i)

		got, err := s.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.Seq, got.Seq)

		next, err := s.NextSeq(ctx)
		require.NoError(t, err)
		assert.Equal(t, run.Seq+1, next)
		require.NoError(t, s.Close())
	}
}

func TestOpen_UpgradesOlderLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	// Build a ledger that stopped after the first step, holding one run.
	steps, err := loadMigrations()
	require.NoError(t, err)
	db, err := sql.Open("sqlite3", path+"?"+connParams.Encode())
	require.NoError(t, err)
	require.NoError(t, apply(ctx, db, steps[0]))
	_, err = db.Exec(`INSERT INTO runs (id, seq, started_at, passed, failed, total)
		VALUES ('old', 1, '2026-01-01T00:00:00Z', 1, 0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO outcomes (run_id, seq, position, name, pass, errors, digest)
		VALUES ('old', 1, 0, 'pisano-period', 1, '[]', 'd1')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latestVersion(t), v)

	var index string
	require.NoError(t, s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_outcomes_name_seq'",
	).Scan(&index))

	digest, ok, err := s.LastDigest(ctx, "pisano-period", 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "d1", digest)
}

func TestOpen_RefusesNewerLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec("PRAGMA user_version = 999")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	require.ErrorIs(t, err, ErrSchemaTooNew)
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/ledger.db")
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	assert.NoError(t, (&Store{}).Close())

	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestSchema_OutcomeRunCascade(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, Run{StartedAt: time.Unix(0, 0).UTC(), Total: 2}, sampleOutcomes())
	require.NoError(t, err)

	_, err = s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", run.ID)
	require.NoError(t, err)

	outcomes, err := s.Outcomes(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestSchema_RunSeqUnique(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, Run{ID: "a", Seq: 1, StartedAt: time.Unix(0, 0)}))
	err := s.WriteRun(ctx, Run{ID: "b", Seq: 1, StartedAt: time.Unix(0, 0)})
	assert.Error(t, err)
}
