// Package repomanager binds the gateway's repositories to a database handle
// and runs its goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/scholarmatch/internal/dbx"
	"github.com/dmitrijs2005/scholarmatch/internal/server/repositories/catalog"
)

// RepositoryManager is the factory the service layer depends on. Catalog may
// be given a *sql.Tx to run repository calls inside a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Catalog(db dbx.DBTX) catalog.Repository
}
