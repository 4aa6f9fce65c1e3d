package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scholarmatch/internal/dbx"
)

const (
	selectValueSQL = `SELECT value FROM metadata WHERE key = ?`
	selectAllSQL   = `SELECT key, value FROM metadata ORDER BY key`
	upsertSQL      = `INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteKeySQL = `DELETE FROM metadata WHERE key = ?`
	deleteAllSQL = `DELETE FROM metadata`
)

// OpError reports which store operation failed and on which key. Key is empty
// for operations that touch the whole table.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("metadata %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("metadata %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// SQLiteRepository persists session keys in the metadata table created by the
// client migrations.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	switch err := r.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&v); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, &OpError{Op: "get", Key: key, Err: err}
	}
	return v, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertSQL, key, value); err != nil {
		return &OpError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteKeySQL, key); err != nil {
		return &OpError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// DeleteMany is used by logout to drop the session keys together.
func (r *SQLiteRepository) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, deleteKeySQL, k); err != nil {
				return &OpError{Op: "delete", Key: k, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		var op *OpError
		if errors.As(err, &op) {
			return err
		}
		return &OpError{Op: "delete", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllSQL); err != nil {
		return &OpError{Op: "clear", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, &OpError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := map[string][]byte{}
	for rows.Next() {
		var (
			k string
			v []byte
		)
		if err := rows.Scan(&k, &v); err != nil {
			return nil, &OpError{Op: "list", Err: err}
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, &OpError{Op: "list", Err: err}
	}
	return out, nil
}
