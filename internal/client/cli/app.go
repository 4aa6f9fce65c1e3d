package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/client/client"
	"github.com/dmitrijs2005/scholarmatch/internal/client/config"
	"github.com/dmitrijs2005/scholarmatch/internal/client/postal"
	"github.com/dmitrijs2005/scholarmatch/internal/client/profile"
	"github.com/dmitrijs2005/scholarmatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scholarmatch/internal/client/results"
	"github.com/dmitrijs2005/scholarmatch/internal/client/services"
	"github.com/dmitrijs2005/scholarmatch/internal/client/session"
	"github.com/dmitrijs2005/scholarmatch/internal/client/tracking"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// App is the terminal client: persisted session, services and the view state
// of the results page.
type App struct {
	config *config.Config
	log    logging.Logger

	store    *session.Store
	auth     services.AuthService
	search   *services.SearchService
	notes    *services.NotificationService
	tracker  *tracking.Tracker
	autofill *postal.AutoFill
	closers  []func() error

	// mu guards profile, which background postal lookups update.
	mu      sync.Mutex
	user    *models.User
	profile models.UserProfile

	controls results.Controls
	view     []models.ScholarshipMatch

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, selects the matching backend and restores
// the previous session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	finder, closeFinder, err := newFinder(ctx, c, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a, err := newApp(ctx, c, log, repos.Metadata, finder)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	if closeFinder != nil {
		a.closers = append(a.closers, closeFinder)
	}
	a.closers = append(a.closers, repos.Close)
	return a, nil
}

// newFinder builds the matching backend named by the configuration.
func newFinder(ctx context.Context, c *config.Config, log logging.Logger) (matching.Finder, func() error, error) {
	switch backend := c.ResolveBackend(); backend {
	case config.BackendGemini:
		gc, err := matching.NewGeminiClient(ctx, c.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		m := matching.NewGeminiMatcher(gc.Models, c.GeminiModel,
			matching.WithGoogleSearch(c.GoogleSearch),
			matching.WithCatalog(catalog.Static(catalog.Bundled())),
		)
		log.Info(ctx, "using gemini backend", "model", c.GeminiModel)
		return m, nil, nil
	case config.BackendRemote:
		m, err := matching.NewRemoteMatcher(c.ServerEndpointAddr, c.RequestTimeout)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using remote backend", "address", c.ServerEndpointAddr)
		return m, m.Close, nil
	case config.BackendCatalog:
		log.Info(ctx, "using offline catalog backend")
		return matching.NewCatalogMatcher(catalog.Static(catalog.Bundled())), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown matching backend %q", backend)
	}
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, repo metadata.Repository, finder matching.Finder) (*App, error) {
	store := session.New(repo, log)

	st, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		log:      log.With("module", "cli"),
		store:    store,
		auth:     services.NewAuthService(store, log),
		autofill: postal.NewAutoFill(postal.NewClient(c.PostalBaseURL, postalTimeout), c.PostalDebounce, log),
		user:     st.CurrentUser,
		controls: results.DefaultControls(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	if err := a.loadFeeds(ctx); err != nil {
		return nil, err
	}

	a.search = services.NewSearchService(store, matching.Degrade(finder, log), a.notes, log)
	a.search.Restore(st.Results)

	a.profile = profile.NewDefault()
	if st.Profile != nil {
		a.profile = *st.Profile
	}
	return a, nil
}

// loadFeeds reads notifications and per-item flags from the store.
func (a *App) loadFeeds(ctx context.Context) error {
	notes, err := services.NewNotificationService(ctx, a.store)
	if err != nil {
		return err
	}
	tracker, err := tracking.New(ctx, a.store)
	if err != nil {
		return err
	}
	a.notes = notes
	a.tracker = tracker
	return nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops background work and releases resources.
func (a *App) Close() {
	a.autofill.Stop()
	a.search.Cancel()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// Root greets the user and runs the REPL on standard input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ScholarMatch (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	if a.user == nil {
		return "(guest)"
	}
	s := a.user.Email
	if n := a.notes.UnreadCount(); n > 0 {
		s = fmt.Sprintf("%s, %d unread", s, n)
	}
	return "(" + s + ")"
}

func (a *App) currentProfile() models.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

func (a *App) setProfile(p models.UserProfile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = p
}
