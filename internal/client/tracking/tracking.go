// Package tracking layers per-card state over immutable scholarship records.
//
// Applied and saved flags persist through the session store. Expansion is
// kept in memory and forgotten whenever the list is rendered anew.
package tracking

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/client/results"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// Store is the persistence the tracker needs.
type Store interface {
	LoadApplied(ctx context.Context) ([]string, error)
	SaveApplied(ctx context.Context, ids []string) error
	LoadSaved(ctx context.Context) ([]string, error)
	SaveSaved(ctx context.Context, ids []string) error
}

// ItemView is everything a card needs to render.
type ItemView struct {
	Match           models.ScholarshipMatch
	Quality         results.Quality
	IsApplied       bool
	IsSaved         bool
	IsExpanded      bool
	PastDeadline    bool
	ApplyEnabled    bool
	ShowLocalAmount bool
}

type Tracker struct {
	mu       sync.Mutex
	store    Store
	applied  []string
	saved    []string
	expanded map[string]bool
}

// New loads the persisted flags.
func New(ctx context.Context, store Store) (*Tracker, error) {
	applied, err := store.LoadApplied(ctx)
	if err != nil {
		return nil, fmt.Errorf("load applied: %w", err)
	}
	saved, err := store.LoadSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("load saved: %w", err)
	}
	return &Tracker{
		store:    store,
		applied:  applied,
		saved:    saved,
		expanded: make(map[string]bool),
	}, nil
}

// Reload rereads the persisted flags and collapses every card.
func (t *Tracker) Reload(ctx context.Context) error {
	applied, err := t.store.LoadApplied(ctx)
	if err != nil {
		return fmt.Errorf("load applied: %w", err)
	}
	saved, err := t.store.LoadSaved(ctx)
	if err != nil {
		return fmt.Errorf("load saved: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.applied = applied
	t.saved = saved
	clear(t.expanded)
	return nil
}

// MarkApplied records a click-through to the apply link. There is no way to
// undo it.
func (t *Tracker) MarkApplied(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.applied, id) {
		return nil
	}
	next := append(slices.Clone(t.applied), id)
	if err := t.store.SaveApplied(ctx, next); err != nil {
		return err
	}
	t.applied = next
	return nil
}

// Apply marks the item applied unless its deadline has passed, in which case
// it returns common.ErrApplyClosed and changes nothing.
func (t *Tracker) Apply(ctx context.Context, m models.ScholarshipMatch, ref time.Time) error {
	if results.IsPastDeadline(m.Scholarship.Deadline, ref) {
		return common.ErrApplyClosed
	}
	return t.MarkApplied(ctx, m.Scholarship.ID)
}

// ToggleSaved flips the saved flag and returns the new value.
func (t *Tracker) ToggleSaved(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var next []string
	saved := !slices.Contains(t.saved, id)
	if saved {
		next = append(slices.Clone(t.saved), id)
	} else {
		next = slices.DeleteFunc(slices.Clone(t.saved), func(s string) bool { return s == id })
	}
	if err := t.store.SaveSaved(ctx, next); err != nil {
		return !saved, err
	}
	t.saved = next
	return saved, nil
}

// ToggleExpanded flips the in-memory expansion flag and returns the new value.
func (t *Tracker) ToggleExpanded(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expanded[id] = !t.expanded[id]
	return t.expanded[id]
}

// ResetExpanded collapses every card.
func (t *Tracker) ResetExpanded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.expanded)
}

func (t *Tracker) IsApplied(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.applied, id)
}

func (t *Tracker) IsSaved(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.saved, id)
}

// SavedIDs returns the saved ids in the order they were saved.
func (t *Tracker) SavedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.saved)
}

// View combines the record with its flags as of ref.
func (t *Tracker) View(m models.ScholarshipMatch, ref time.Time) ItemView {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := m.Scholarship.ID
	past := results.IsPastDeadline(m.Scholarship.Deadline, ref)
	return ItemView{
		Match:           m,
		Quality:         results.MatchQuality(m.Match.MatchScore),
		IsApplied:       slices.Contains(t.applied, id),
		IsSaved:         slices.Contains(t.saved, id),
		IsExpanded:      t.expanded[id],
		PastDeadline:    past,
		ApplyEnabled:    !past,
		ShowLocalAmount: results.ShowLocalAmount(m.Scholarship, m.Match),
	}
}
