// Package db provides the SQLite persistence layer for sitefilter.
// It implements the domain.KeyValueStore port over a single `kv` table and the
// domain.LogRepository over the `logs` activity table.
//
// This package is responsible for:
// - Establishing and managing database connections (`db.go`).
// - Applying the embedded goose migrations (`migrations/`).
// - Storing raw values by key with last-write-wins upserts (`kv_repo.go`).
// - Converting activity log entries between domain and database structs (`log_repo.go`),
//   including the use of `sql.Null*` types for optional fields.
package db
