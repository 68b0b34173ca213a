package notifications

import (
	"context"
	"sync"
	"time"

	"tixly/internal/shared/config"
	"tixly/pkg/cache"
	"tixly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, onlyUnread bool) (*NotificationListResponse, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Ingest stores an externally produced notification (Kafka consumer).
	Ingest(ctx context.Context, n *Notification) error

	// SetCacheService injects the cache dependency
	SetCacheService(cacheService cache.Service)

	Shutdown()
}

type service struct {
	repo         Repository
	cacheService cache.Service
	reconcile    config.ReconcileConfig
	unreadTTL    time.Duration
	log          *logger.Logger

	mu       sync.Mutex
	trackers map[uuid.UUID]*Tracker
}

func NewService(repo Repository, reconcile config.ReconcileConfig, unreadTTL time.Duration) Service {
	return &service{
		repo:      repo,
		reconcile: reconcile,
		unreadTTL: unreadTTL,
		log:       logger.GetDefault(),
		trackers:  make(map[uuid.UUID]*Tracker),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// trackerFor returns the user's tracker, loading the backing list on first
// use. A tracker lives until Shutdown; a List call refreshes its contents.
func (s *service) trackerFor(ctx context.Context, userID uuid.UUID, refresh bool) (*Tracker, error) {
	s.mu.Lock()
	t, ok := s.trackers[userID]
	s.mu.Unlock()

	if ok && !refresh {
		return t, nil
	}

	list, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if ok {
		t.Reset(list)
		return t, nil
	}

	t = NewTracker(userID, list, s.repo, TrackerOptions{
		MaxAttempts: s.reconcile.MaxAttempts,
		BaseBackoff: s.reconcile.BaseBackoff,
		OnFailure: func(kind MutationKind, id uuid.UUID, err error) {
			// A reverted mutation leaves the cached unread count wrong
			s.dropUnreadCache(userID)
		},
	})

	s.mu.Lock()
	// The lock was dropped during the fetch; keep whichever tracker won
	if existing, raced := s.trackers[userID]; raced {
		t.Close()
		t = existing
	} else {
		s.trackers[userID] = t
	}
	s.mu.Unlock()

	return t, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, onlyUnread bool) (*NotificationListResponse, error) {
	t, err := s.trackerFor(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	snapshot := t.Snapshot()
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(snapshot)),
		UnreadCount:   t.UnreadCount(),
	}
	for _, n := range snapshot {
		if onlyUnread && n.IsRead {
			continue
		}
		resp.Notifications = append(resp.Notifications, toResponse(n))
	}

	s.cacheUnreadCount(userID, resp.UnreadCount)
	return resp, nil
}

func (s *service) Recent(ctx context.Context, userID uuid.UUID, limit int) (*NotificationListResponse, error) {
	t, err := s.trackerFor(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	recent := t.RecentTop(limit)
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(recent)),
		UnreadCount:   t.UnreadCount(),
	}
	for _, n := range recent {
		resp.Notifications = append(resp.Notifications, toResponse(n))
	}
	return resp, nil
}

// MarkRead applies optimistically; reconciliation (with retries and revert)
// happens in the background. Marking an already-read or missing id is a no-op.
func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.trackerFor(ctx, userID, false)
	if err != nil {
		return err
	}

	if t.MarkRead(id) {
		s.dropUnreadCache(userID)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	t, err := s.trackerFor(ctx, userID, false)
	if err != nil {
		return err
	}

	if t.MarkAllRead() > 0 {
		s.dropUnreadCache(userID)
	}
	return nil
}

// Delete removes the record from every view; deleting a missing id fails
// silently per the tracker contract.
func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.trackerFor(ctx, userID, false)
	if err != nil {
		return err
	}

	if t.Delete(id) {
		s.dropUnreadCache(userID)
	}
	return nil
}

func (s *service) Ingest(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Priority == "" {
		n.Priority = NotificationPriorityNormal
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return err
	}

	// Drop the stale tracker so the next fetch sees the new record
	s.mu.Lock()
	if t, ok := s.trackers[n.UserID]; ok {
		delete(s.trackers, n.UserID)
		go t.Close()
	}
	s.mu.Unlock()
	s.dropUnreadCache(n.UserID)

	s.log.LogNotificationIngested(ctx, n.ID.String(), n.UserID.String(), string(n.Type))
	return nil
}

func (s *service) Shutdown() {
	s.mu.Lock()
	trackers := make([]*Tracker, 0, len(s.trackers))
	for _, t := range s.trackers {
		trackers = append(trackers, t)
	}
	s.trackers = make(map[uuid.UUID]*Tracker)
	s.mu.Unlock()

	for _, t := range trackers {
		t.Close()
	}
}

func (s *service) cacheUnreadCount(userID uuid.UUID, count int) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Set(context.Background(), cache.UnreadCountKey(userID.String()), count, s.unreadTTL)
}

func (s *service) dropUnreadCache(userID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(context.Background(), cache.UnreadCountKey(userID.String()))
}
