// Package server initializes and runs the matching gateway. It prepares the
// catalog database, connects the optional Redis cache, picks the matching
// backend and serves gRPC and HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
	"github.com/dmitrijs2005/scholarmatch/internal/server/cache"
	"github.com/dmitrijs2005/scholarmatch/internal/server/config"
	"github.com/dmitrijs2005/scholarmatch/internal/server/httpapi"
	catalogrepo "github.com/dmitrijs2005/scholarmatch/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scholarmatch/internal/server/scheduler"
	"github.com/dmitrijs2005/scholarmatch/internal/server/services"

	gs "github.com/dmitrijs2005/scholarmatch/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	grpc      *gs.GRPCServer
	http      *httpapi.Server
	scheduler *scheduler.Scheduler
	closers   []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, "json", c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: logger, closers: []func() error{db.Close}}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	seeded, err := catalogrepo.Seed(ctx, db, catalog.Bundled())
	if err != nil {
		app.Close()
		return nil, err
	}
	if seeded > 0 {
		logger.Info(ctx, "catalog seeded", "count", seeded)
	}

	mc := app.openCache(ctx)

	build, err := app.finderBuilder(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.wire(db, rm, mc, build)
	return app, nil
}

// wire builds the service and its transports.
func (app *App) wire(db *sql.DB, rm repomanager.RepositoryManager, mc cache.Cache, build services.FinderBuilder) {
	ms := services.NewMatchService(db, rm, mc, build, app.logger)
	app.grpc = gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, ms)
	app.http = httpapi.NewServer(app.config.EndpointAddrHTTP, app.config.AllowedOrigins, ms, app.logger)
	app.scheduler = scheduler.New(app.config.RefreshSpec, ms, app.logger)
}

// openCache connects Redis. The gateway runs without a cache when the URL is
// empty or the server cannot be reached.
func (app *App) openCache(ctx context.Context) cache.Cache {
	if app.config.RedisURL == "" {
		return nil
	}
	rdb, err := cache.NewRedisClient(ctx, app.config.RedisURL)
	if err != nil {
		app.logger.Warn(ctx, "redis unavailable, caching disabled", "error", err)
		return nil
	}
	app.closers = append(app.closers, rdb.Close)
	return cache.NewRedisCache(rdb, app.config.CacheTTL)
}

func (app *App) finderBuilder(ctx context.Context) (services.FinderBuilder, error) {
	timeout := app.config.RequestTimeout

	switch backend := app.config.ResolveBackend(); backend {
	case config.BackendGemini:
		gc, err := matching.NewGeminiClient(ctx, app.config.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		app.logger.Info(ctx, "using gemini backend", "model", app.config.GeminiModel)
		return func(src catalog.Source) matching.Finder {
			return withTimeout(matching.NewGeminiMatcher(gc.Models, app.config.GeminiModel,
				matching.WithGoogleSearch(app.config.GoogleSearch),
				matching.WithCatalog(src),
			), timeout)
		}, nil
	case config.BackendCatalog:
		app.logger.Info(ctx, "using offline catalog backend")
		return func(src catalog.Source) matching.Finder {
			return withTimeout(matching.NewCatalogMatcher(src), timeout)
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// withTimeout bounds every backend call; zero leaves calls unbounded.
func withTimeout(f matching.Finder, d time.Duration) matching.Finder {
	if d <= 0 {
		return f
	}
	return matching.FinderFunc(func(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return f.FindMatches(ctx, p)
	})
}

// Run serves gRPC and HTTP and refreshes the catalog until ctx is cancelled
// or the process receives SIGINT/SIGTERM. The first component failure stops
// the others.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.grpc.Run(ctx) })
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error {
		if err := app.scheduler.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		app.scheduler.Stop()
		return nil
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Close releases the database and cache connections.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(context.Background(), "close failed", "error", err)
		}
	}
	app.closers = nil
}
