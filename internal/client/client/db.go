package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/scholarmatch/internal/client/migrations"
	"github.com/dmitrijs2005/scholarmatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scholarmatch/internal/filex"
)

// Repositories is the opened local state database.
type Repositories struct {
	Metadata metadata.Repository
	DB       *sql.DB
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations brings the session schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session schema: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite file at dsn, creating its directory when
// needed, and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// one connection so ":memory:" stays a single database
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repositories{Metadata: metadata.NewSQLiteRepository(db), DB: db}, nil
}
