package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/scholarmatch/internal/dbx"
	"github.com/dmitrijs2005/scholarmatch/internal/server/migrations"
	"github.com/dmitrijs2005/scholarmatch/internal/server/repositories/catalog"
)

// PostgresRepositoryManager hands out pgx-backed repositories and owns the
// gateway schema.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Catalog(db dbx.DBTX) catalog.Repository {
	return catalog.NewPostgresRepository(db)
}

// replaced in tests
var gooseUpContext = goose.UpContext

// RunMigrations applies the embedded scholarships schema. It is safe to call
// on every start.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}
	return nil
}

// OpenPostgres opens dsn through the pgx stdlib driver and pings it so a bad
// DSN fails at startup rather than on the first request.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
