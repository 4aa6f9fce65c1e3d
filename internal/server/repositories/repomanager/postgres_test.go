package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	saved := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = saved })
}

func TestCatalog_BoundToHandle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM scholarships`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := NewPostgresRepositoryManager().Catalog(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	errGoose := errors.New("relation already locked")

	tests := []struct {
		name    string
		upErr   error
		wantErr bool
	}{
		{name: "applied", upErr: nil},
		{name: "goose fails", upErr: errGoose, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			var gotDir string
			stubGoose(t, func(_ context.Context, got *sql.DB, dir string, _ ...goose.OptionsFunc) error {
				assert.Same(t, db, got)
				gotDir = dir
				return tt.upErr
			})

			err = NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
			assert.Equal(t, ".", gotDir)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errGoose)
			assert.ErrorContains(t, err, "apply catalog schema")
		})
	}
}

func TestOpenPostgres_Unreachable(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://sm:sm@127.0.0.1:1/scholarmatch?sslmode=disable&connect_timeout=1")
	assert.ErrorContains(t, err, "ping postgres")
}
