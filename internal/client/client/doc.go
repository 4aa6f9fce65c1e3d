// Package client bootstraps local persistence for the terminal client.
//
// InitDatabase opens (or creates) the SQLite file, applies the embedded goose
// migrations and returns the repositories the session layer is built on.
// RunMigrations is idempotent and may be called on an already migrated
// database.
package client
