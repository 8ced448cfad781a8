// Package store provides the SQLite-backed run ledger.
//
// Each verification run is one row in runs; each scenario outcome within it
// is one row in outcomes, carrying the report digest. Comparing digests for
// the same scenario across runs shows whether a report changed.
//
// # Ordering
//
// Runs carry seq, a logical counter assigned at write time. Queries order by
// seq and then id (COLLATE BINARY), never by wall-clock time, so results are
// identical however often they are read.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s on lock contention
//   - foreign_keys=ON: Outcomes must reference an existing run
//
// These are set through the driver DSN, so they hold on every connection.
//
// # Schema
//
// The schema lives in migrations/NNNN_name.sql. Open applies each step above
// the ledger's PRAGMA user_version in its own transaction; a ledger written by
// a newer build is refused with ErrSchemaTooNew.
package store
