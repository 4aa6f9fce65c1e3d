package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/client/profile"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

type SearchStore interface {
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	SaveResults(ctx context.Context, results []models.ScholarshipMatch) error
	LoadSearchHistory(ctx context.Context) ([]models.SearchRecord, error)
	SaveSearchHistory(ctx context.Context, h []models.SearchRecord) error
}

// SearchService submits profiles for matching and owns the current result
// set. Overlapping submissions are ordered by a matching.Guard: only the
// latest one writes results, history and notifications.
type SearchService struct {
	store    SearchStore
	matcher  matching.Matcher
	notifier Notifier
	log      logging.Logger
	now      func() time.Time

	guard matching.Guard
	// held from the generation re-check until every write of a submission
	// has landed
	writeMu sync.Mutex

	mu      sync.Mutex
	results []models.ScholarshipMatch
}

func NewSearchService(store SearchStore, m matching.Matcher, n Notifier, log logging.Logger) *SearchService {
	return &SearchService{
		store:    store,
		matcher:  m,
		notifier: n,
		log:      log.With("module", "search"),
		now:      time.Now,
	}
}

// Restore seeds the result set from persisted state without a search.
func (s *SearchService) Restore(results []models.ScholarshipMatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = slices.Clone(results)
}

func (s *SearchService) Results() []models.ScholarshipMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// Loading reports whether a submission is in flight.
func (s *SearchService) Loading() bool {
	return s.guard.Loading()
}

// Cancel abandons an in-flight submission; its results are dropped.
func (s *SearchService) Cancel() {
	s.guard.Stop()
}

// Submit validates and persists the profile, then runs a new search that
// fully replaces the previous results. A submission overtaken by a newer one
// returns common.ErrSuperseded and writes nothing after the profile.
func (s *SearchService) Submit(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
	p = profile.Submit(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SaveProfile(ctx, &p); err != nil {
		return nil, err
	}

	gen, rctx := s.guard.Begin(ctx)
	s.log.Info(ctx, "search started", "generation", gen)

	found := s.matcher.RequestMatches(rctx, p)
	if !s.guard.Commit(gen) {
		s.log.Info(ctx, "search superseded", "generation", gen)
		return nil, common.ErrSuperseded
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.guard.Current() != gen {
		s.log.Info(ctx, "search superseded before write", "generation", gen)
		return nil, common.ErrSuperseded
	}

	if err := s.store.SaveResults(ctx, found); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.results = slices.Clone(found)
	s.mu.Unlock()

	if err := s.record(ctx, p, len(found)); err != nil {
		s.log.Warn(ctx, "failed to record search history", "error", err)
	}
	if len(found) > 0 && s.notifier != nil {
		msg := fmt.Sprintf("We found %d scholarships matching your %s profile.", len(found), p.FieldOfStudy)
		if _, err := s.notifier.Notify(ctx, models.NotificationScholarship, "New Matches Found", msg); err != nil {
			s.log.Warn(ctx, "failed to post notification", "error", err)
		}
	}

	s.log.Info(ctx, "search finished", "generation", gen, "results", len(found))
	return found, nil
}

// History returns past searches, newest first.
func (s *SearchService) History(ctx context.Context) ([]models.SearchRecord, error) {
	return s.store.LoadSearchHistory(ctx)
}

func (s *SearchService) record(ctx context.Context, p models.UserProfile, n int) error {
	h, err := s.store.LoadSearchHistory(ctx)
	if err != nil {
		return err
	}
	rec := models.SearchRecord{
		Timestamp:      s.now(),
		FieldOfStudy:   p.FieldOfStudy,
		EducationLevel: p.EducationLevel,
		Country:        p.Country,
		ResultCount:    n,
	}
	h = append([]models.SearchRecord{rec}, h...)
	if len(h) > common.MaxSearchHistory {
		h = h[:common.MaxSearchHistory]
	}
	return s.store.SaveSearchHistory(ctx, h)
}
