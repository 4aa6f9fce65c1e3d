package server

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/dbx"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
	"github.com/dmitrijs2005/scholarmatch/internal/server/config"
	catalogrepo "github.com/dmitrijs2005/scholarmatch/internal/server/repositories/catalog"
)

type fakeRepo struct{}

func (fakeRepo) List(context.Context) ([]models.Scholarship, error) { return nil, nil }
func (fakeRepo) Count(context.Context) (int, error)                 { return 0, nil }
func (fakeRepo) Upsert(context.Context, models.Scholarship) error   { return nil }
func (fakeRepo) Deactivate(context.Context, string) error           { return nil }

type fakeRM struct{}

func (fakeRM) RunMigrations(context.Context, *sql.DB) error { return nil }
func (fakeRM) Catalog(dbx.DBTX) catalogrepo.Repository      { return fakeRepo{} }

func testApp(t *testing.T, grpcAddr string) *App {
	t.Helper()
	c := &config.Config{
		EndpointAddrGRPC: grpcAddr,
		EndpointAddrHTTP: "127.0.0.1:0",
		RefreshSpec:      "@every 1h",
		Backend:          config.BackendCatalog,
		RequestTimeout:   time.Second,
		AllowedOrigins:   []string{"*"},
	}
	app := &App{config: c, logger: logging.Discard()}

	build, err := app.finderBuilder(context.Background())
	require.NoError(t, err)
	app.wire(nil, fakeRM{}, nil, build)
	return app
}

func TestRun_StopsOnCancel(t *testing.T) {
	app := testApp(t, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRun_ComponentFailureStopsApp(t *testing.T) {
	app := testApp(t, "127.0.0.1:99999")

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after a component failure")
	}
}

func TestFinderBuilder_Catalog(t *testing.T) {
	app := &App{config: &config.Config{Backend: config.BackendCatalog}, logger: logging.Discard()}

	build, err := app.finderBuilder(context.Background())
	require.NoError(t, err)

	f := build(catalog.Static(catalog.Bundled()))
	got, err := f.FindMatches(context.Background(), models.UserProfile{Country: "India"})
	require.NoError(t, err)
	assert.Len(t, got, len(catalog.Bundled()))
}

func TestFinderBuilder_Unknown(t *testing.T) {
	app := &App{config: &config.Config{Backend: "remote"}, logger: logging.Discard()}
	_, err := app.finderBuilder(context.Background())
	assert.Error(t, err)
}

func TestWithTimeout(t *testing.T) {
	var hasDeadline bool
	f := matching.FinderFunc(func(ctx context.Context, _ models.UserProfile) ([]models.ScholarshipMatch, error) {
		_, hasDeadline = ctx.Deadline()
		return nil, nil
	})

	_, _ = withTimeout(f, time.Minute).FindMatches(context.Background(), models.UserProfile{})
	assert.True(t, hasDeadline)

	_, _ = withTimeout(f, 0).FindMatches(context.Background(), models.UserProfile{})
	assert.False(t, hasDeadline)
}

func TestClose_RunsClosersInReverse(t *testing.T) {
	var order []int
	app := &App{logger: logging.Discard(), closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
	}}
	app.Close()
	assert.Equal(t, []int{2, 1}, order)
	assert.Nil(t, app.closers)
}
