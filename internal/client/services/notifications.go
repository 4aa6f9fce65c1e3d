package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

type NotificationStore interface {
	LoadNotifications(ctx context.Context) ([]models.Notification, error)
	SaveNotifications(ctx context.Context, n []models.Notification) error
}

// Notifier posts a notification.
type Notifier interface {
	Notify(ctx context.Context, typ models.NotificationType, title, message string) (models.Notification, error)
}

// NotificationService keeps the notification feed, newest first and capped
// at common.MaxNotifications.
type NotificationService struct {
	mu    sync.Mutex
	store NotificationStore
	items []models.Notification
	now   func() time.Time
}

func NewNotificationService(ctx context.Context, store NotificationStore) (*NotificationService, error) {
	items, err := store.LoadNotifications(ctx)
	if err != nil {
		return nil, err
	}
	return &NotificationService{store: store, items: items, now: time.Now}, nil
}

func (s *NotificationService) Notify(ctx context.Context, typ models.NotificationType, title, message string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: s.now(),
	}
	next := append([]models.Notification{n}, s.items...)
	if len(next) > common.MaxNotifications {
		next = next[:common.MaxNotifications]
	}
	if err := s.store.SaveNotifications(ctx, next); err != nil {
		return models.Notification{}, err
	}
	s.items = next
	return n, nil
}

// Welcome posts the greeting shown to a fresh install. It does nothing when
// the feed already has entries.
func (s *NotificationService) Welcome(ctx context.Context) error {
	s.mu.Lock()
	empty := len(s.items) == 0
	s.mu.Unlock()
	if !empty {
		return nil
	}
	_, err := s.Notify(ctx, models.NotificationInfo,
		"Welcome to ScholarMatch AI!",
		"Complete your profile to get real-time scholarship matches tailored to your background.")
	return err
}

func (s *NotificationService) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *NotificationService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		if !it.Read {
			n++
		}
	}
	return n
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	for i := range next {
		next[i].Read = true
	}
	if err := s.store.SaveNotifications(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// Reload replaces the in-memory feed with the stored one.
func (s *NotificationService) Reload(ctx context.Context) error {
	items, err := s.store.LoadNotifications(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}
