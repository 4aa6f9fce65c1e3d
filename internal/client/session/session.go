// Package session persists the client state across restarts.
//
// Every slot is stored as JSON under a fixed key of the injected metadata
// repository. A slot that holds nothing is represented by the absence of its
// key, never by an empty value.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/scholarmatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const (
	KeyCurrentUser   = "scholar_current_user"
	KeyProfile       = "scholar_profile"
	KeyResults       = "scholar_results"
	KeyNotifications = "scholar_notifications"
	KeyUsers         = "scholar_users"
	KeyApplied       = "scholar_applied"
	KeySaved         = "scholar_saved"
	KeySearchHistory = "scholar_search_history"
)

// AllKeys lists every slot owned by the session.
var AllKeys = []string{
	KeyCurrentUser,
	KeyProfile,
	KeyResults,
	KeyNotifications,
	KeyUsers,
	KeyApplied,
	KeySaved,
	KeySearchHistory,
}

// accountKeys are the slots dropped on logout.
var accountKeys = []string{KeyCurrentUser, KeyProfile, KeyResults}

// State is the snapshot read once at startup. Absent slots are nil.
type State struct {
	CurrentUser *models.User
	Profile     *models.UserProfile
	Results     []models.ScholarshipMatch
}

type Store struct {
	repo metadata.Repository
	log  logging.Logger
}

func New(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("module", "session")}
}

// Load reads the three primary slots. A slot whose stored value cannot be
// decoded is treated as absent.
func (s *Store) Load(ctx context.Context) (State, error) {
	var st State

	user, err := load[models.User](ctx, s, KeyCurrentUser)
	if err != nil {
		return State{}, err
	}
	st.CurrentUser = user

	p, err := load[models.UserProfile](ctx, s, KeyProfile)
	if err != nil {
		return State{}, err
	}
	st.Profile = p

	res, err := load[[]models.ScholarshipMatch](ctx, s, KeyResults)
	if err != nil {
		return State{}, err
	}
	if res != nil && len(*res) > 0 {
		st.Results = *res
	}

	return st, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return save(ctx, s, KeyCurrentUser, u, u != nil)
}

func (s *Store) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	return save(ctx, s, KeyProfile, p, p != nil)
}

// SaveResults writes the result list. An empty list removes the key, so a
// search that found nothing reads back as "no results yet".
func (s *Store) SaveResults(ctx context.Context, results []models.ScholarshipMatch) error {
	return save(ctx, s, KeyResults, results, len(results) > 0)
}

func (s *Store) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	return loadSlice[models.Notification](ctx, s, KeyNotifications)
}

func (s *Store) SaveNotifications(ctx context.Context, n []models.Notification) error {
	return save(ctx, s, KeyNotifications, n, len(n) > 0)
}

func (s *Store) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	return loadSlice[models.Account](ctx, s, KeyUsers)
}

func (s *Store) SaveAccounts(ctx context.Context, a []models.Account) error {
	return save(ctx, s, KeyUsers, a, len(a) > 0)
}

func (s *Store) LoadApplied(ctx context.Context) ([]string, error) {
	return loadSlice[string](ctx, s, KeyApplied)
}

func (s *Store) SaveApplied(ctx context.Context, ids []string) error {
	return save(ctx, s, KeyApplied, ids, len(ids) > 0)
}

func (s *Store) LoadSaved(ctx context.Context) ([]string, error) {
	return loadSlice[string](ctx, s, KeySaved)
}

func (s *Store) SaveSaved(ctx context.Context, ids []string) error {
	return save(ctx, s, KeySaved, ids, len(ids) > 0)
}

func (s *Store) LoadSearchHistory(ctx context.Context) ([]models.SearchRecord, error) {
	return loadSlice[models.SearchRecord](ctx, s, KeySearchHistory)
}

func (s *Store) SaveSearchHistory(ctx context.Context, h []models.SearchRecord) error {
	return save(ctx, s, KeySearchHistory, h, len(h) > 0)
}

// ClearAll removes every slot, including the users directory.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, AllKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ClearAccount removes the current user, the profile and the results.
// Notifications, tracking and the users directory survive a logout.
func (s *Store) ClearAccount(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, accountKeys...); err != nil {
		return fmt.Errorf("clear account: %w", err)
	}
	return nil
}

func load[T any](ctx context.Context, s *Store, key string) (*T, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn(ctx, "discarding undecodable slot", "key", key, "error", err)
		return nil, nil
	}
	return &v, nil
}

func loadSlice[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	v, err := load[[]T](ctx, s, key)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

func save(ctx context.Context, s *Store, key string, v any, present bool) error {
	if !present {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
