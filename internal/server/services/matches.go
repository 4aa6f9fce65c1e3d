// Package services contains the gateway's business logic. MatchService
// answers match requests against a matching backend, caching results per
// profile and holding the reference catalog loaded from the database.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
	"github.com/dmitrijs2005/scholarmatch/internal/server/cache"
	"github.com/dmitrijs2005/scholarmatch/internal/server/repositories/repomanager"
)

// FinderBuilder creates the matching backend over the service's catalog.
type FinderBuilder func(src catalog.Source) matching.Finder

// MatchService implements catalog.Source over the last loaded snapshot.
type MatchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	finder      matching.Finder
	log         logging.Logger

	mu       sync.RWMutex
	snapshot []models.Scholarship
}

// NewMatchService wires the service. A nil cache disables caching. Until
// the first successful Refresh the bundled catalog is served.
func NewMatchService(db *sql.DB, rm repomanager.RepositoryManager, c cache.Cache, build FinderBuilder, log logging.Logger) *MatchService {
	s := &MatchService{
		db:          db,
		repomanager: rm,
		cache:       c,
		log:         log.With("module", "matches"),
		snapshot:    catalog.Bundled(),
	}
	s.finder = build(s)
	return s
}

func (s *MatchService) List(context.Context) ([]models.Scholarship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot), nil
}

// Refresh reloads the catalog from the database. An empty table keeps the
// previous snapshot.
func (s *MatchService) Refresh(ctx context.Context) error {
	list, err := s.repomanager.Catalog(s.db).List(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	if len(list) == 0 {
		s.log.Warn(ctx, "catalog table is empty, keeping previous snapshot")
		return nil
	}

	s.mu.Lock()
	s.snapshot = list
	s.mu.Unlock()

	s.log.Info(ctx, "catalog refreshed", "count", len(list))
	return nil
}

// FindMatches returns the matches for p and whether they came from the cache.
func (s *MatchService) FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, p)
		if err != nil {
			s.log.Warn(ctx, "cache read failed", "error", err)
		} else if ok {
			return cached, true, nil
		}
	}

	matches, err := s.finder.FindMatches(ctx, p)
	if err != nil {
		return nil, false, err
	}
	if matches == nil {
		matches = []models.ScholarshipMatch{}
	}

	if s.cache != nil && len(matches) > 0 {
		if err := s.cache.Set(ctx, p, matches); err != nil {
			s.log.Warn(ctx, "cache write failed", "error", err)
		}
	}

	return matches, false, nil
}
