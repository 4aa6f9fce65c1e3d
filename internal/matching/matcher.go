// Package matching asks a backend for scholarships that fit a profile.
//
// Backends implement Finder and report failures as errors. Callers that
// render results use a Matcher, which never fails: a failed request is logged
// and yields an empty list, indistinguishable from a search with no hits.
package matching

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// Finder is a matching backend.
type Finder interface {
	FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error)
}

// Matcher is the client-facing matching contract.
type Matcher interface {
	RequestMatches(ctx context.Context, p models.UserProfile) []models.ScholarshipMatch
}

// FinderFunc adapts a function to Finder.
type FinderFunc func(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error)

func (f FinderFunc) FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
	return f(ctx, p)
}

type degradingMatcher struct {
	finder Finder
	log    logging.Logger
}

// Degrade turns a Finder into a Matcher. Each call is a single attempt.
func Degrade(f Finder, log logging.Logger) Matcher {
	return &degradingMatcher{finder: f, log: log.With("module", "matching")}
}

func (m *degradingMatcher) RequestMatches(ctx context.Context, p models.UserProfile) []models.ScholarshipMatch {
	res, err := m.finder.FindMatches(ctx, p)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			m.log.Debug(ctx, "matching request cancelled")
		} else {
			m.log.Error(ctx, "matching request failed", "error", err)
		}
		return []models.ScholarshipMatch{}
	}
	if res == nil {
		return []models.ScholarshipMatch{}
	}
	return res
}
