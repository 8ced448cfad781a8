package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// migrationFS holds the ledger schema as numbered steps, NNNN_name.sql.
// Step N leaves the database at PRAGMA user_version = N.
//
//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrSchemaTooNew is returned when a ledger was written by a newer nrc whose
// schema this build does not know.
var ErrSchemaTooNew = errors.New("store: ledger schema is newer than this build")

// connParams are applied by the driver on every connection it opens.
var connParams = url.Values{
	"_journal_mode": {"WAL"},    // readers do not block the writer
	"_synchronous":  {"NORMAL"}, // safe with WAL
	"_busy_timeout": {"5000"},
	"_foreign_keys": {"on"}, // outcomes must reference a run
}

// Store is the run ledger.
type Store struct {
	db *sql.DB
}

type migration struct {
	version int
	name    string
	sql     string
}

// Open creates or opens the ledger at file and brings its schema up to date.
// Opening an up-to-date ledger changes nothing.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", file+"?"+connParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger %s: %w", file, err)
	}

	// SQLite has a single writer; one connection keeps RecordRun's
	// read-then-insert of seq serialised.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the ledger.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SchemaVersion returns the ledger's applied migration step.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, s.db)
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate applies every step above the ledger's user_version, each in its own
// transaction together with the version bump.
func migrate(ctx context.Context, db *sql.DB) error {
	steps, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	latest := steps[len(steps)-1].version
	if current > latest {
		return fmt.Errorf("%w: version %d, this build knows %d", ErrSchemaTooNew, current, latest)
	}

	for _, m := range steps[current:] {
		if err := apply(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %d (%s): begin: %w", m.version, m.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("migration %d (%s): set version: %w", m.version, m.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d (%s): commit: %w", m.version, m.name, err)
	}
	return nil
}

// loadMigrations reads the embedded steps in version order and checks that
// they are numbered 1..N without gaps.
func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	steps := make([]migration, 0, len(entries))
	for _, e := range entries {
		prefix, name, ok := strings.Cut(strings.TrimSuffix(e.Name(), ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: want NNNN_name.sql", e.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		if version != len(steps)+1 {
			return nil, fmt.Errorf("migration %s: expected version %d", e.Name(), len(steps)+1)
		}
		body, err := fs.ReadFile(migrationFS, path.Join("migrations", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		steps = append(steps, migration{version: version, name: name, sql: string(body)})
	}
	if len(steps) == 0 {
		return nil, errors.New("store: no migrations embedded")
	}
	return steps, nil
}
