// Package httpapi serves the matching gateway to browser front-ends as JSON
// over HTTP with CORS.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const shutdownTimeout = 5 * time.Second

// MatchService is what the controllers need from the service layer.
type MatchService interface {
	FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, bool, error)
	List(ctx context.Context) ([]models.Scholarship, error)
}

type Server struct {
	address        string
	allowedOrigins []string
	matches        MatchService
	logger         logging.Logger
}

func NewServer(address string, allowedOrigins []string, ms MatchService, l logging.Logger) *Server {
	return &Server{
		address:        address,
		allowedOrigins: allowedOrigins,
		matches:        ms,
		logger:         l.With("module", "http_server"),
	}
}

// Handler returns the router wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	c := &controller{matches: s.matches, logger: s.logger}
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matches", c.findMatches).Methods(http.MethodPost)
	api.HandleFunc("/catalog", c.listCatalog).Methods(http.MethodGet)

	r.Use(s.requestID)

	return cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", common.RequestIDHeaderName},
		ExposedHeaders:   []string{common.RequestIDHeaderName},
		AllowCredentials: true,
	}).Handler(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
