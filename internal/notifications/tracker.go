package notifications

import (
	"context"
	"sync"
	"time"

	"tixly/pkg/logger"

	"github.com/google/uuid"
)

// Store is the backend the tracker reconciles optimistic mutations against.
type Store interface {
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type MutationKind string

const (
	MutationMarkRead    MutationKind = "mark_read"
	MutationMarkAllRead MutationKind = "mark_all_read"
	MutationDelete      MutationKind = "delete"
)

// mutation is one optimistic change awaiting backend confirmation, carrying
// enough state to revert itself if reconciliation finally fails.
type mutation struct {
	kind     MutationKind
	id       uuid.UUID
	affected []uuid.UUID  // ids flipped by mark_all_read
	removed  Notification // snapshot for delete revert
	index    int          // original position for delete revert
	unread   bool         // whether the deleted record was unread
}

// TrackerOptions tunes reconciliation behaviour.
type TrackerOptions struct {
	MaxAttempts int
	BaseBackoff time.Duration
	// OnFailure is invoked after a mutation has been reverted because every
	// reconciliation attempt failed.
	OnFailure func(kind MutationKind, id uuid.UUID, err error)
}

func defaultTrackerOptions() TrackerOptions {
	return TrackerOptions{
		MaxAttempts: 3,
		BaseBackoff: 500 * time.Millisecond,
	}
}

// Tracker holds the authoritative-until-reconciled notification list for one
// user's view. Mutations apply locally first, then a reconciler pushes them
// to the store with retries; a mutation that cannot be confirmed is reverted
// and surfaced through OnFailure.
type Tracker struct {
	mu      sync.Mutex
	userID  uuid.UUID
	list    []Notification
	unread  int
	pending map[uuid.UUID]int

	store Store
	opts  TrackerOptions
	log   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTracker builds a tracker over a freshly fetched list. The list is
// expected in the backend's order (newest first) and is copied, never aliased.
func NewTracker(userID uuid.UUID, list []Notification, store Store, opts TrackerOptions) *Tracker {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultTrackerOptions().MaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaultTrackerOptions().BaseBackoff
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		userID:  userID,
		list:    make([]Notification, len(list)),
		pending: make(map[uuid.UUID]int),
		store:   store,
		opts:    opts,
		log:     logger.GetDefault(),
		ctx:     ctx,
		cancel:  cancel,
	}
	copy(t.list, list)
	t.unread = countUnread(t.list)
	return t
}

func countUnread(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// Reset replaces the tracked list wholesale after a refetch.
func (t *Tracker) Reset(list []Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.list = make([]Notification, len(list))
	copy(t.list, list)
	t.unread = countUnread(t.list)
}

// MarkRead flips one notification to read. Idempotent: a missing or
// already-read id is a no-op and returns false.
func (t *Tracker) MarkRead(id uuid.UUID) bool {
	t.mu.Lock()

	idx := t.indexOf(id)
	if idx < 0 || t.list[idx].IsRead {
		t.mu.Unlock()
		return false
	}

	now := time.Now()
	t.list[idx].IsRead = true
	t.list[idx].ReadAt = &now
	t.unread--
	t.pending[id]++
	t.mu.Unlock()

	t.dispatch(mutation{kind: MutationMarkRead, id: id})
	return true
}

// MarkAllRead flips every notification to read in one logical operation and
// issues a single backend batch update. Returns how many records changed.
func (t *Tracker) MarkAllRead() int {
	t.mu.Lock()

	var affected []uuid.UUID
	now := time.Now()
	for i := range t.list {
		if !t.list[i].IsRead {
			t.list[i].IsRead = true
			t.list[i].ReadAt = &now
			affected = append(affected, t.list[i].ID)
		}
	}
	t.unread = 0
	for _, id := range affected {
		t.pending[id]++
	}
	t.mu.Unlock()

	if len(affected) == 0 {
		return 0
	}

	t.dispatch(mutation{kind: MutationMarkAllRead, affected: affected})
	return len(affected)
}

// Delete removes a notification regardless of read state. Deleting a missing
// id fails silently and returns false.
func (t *Tracker) Delete(id uuid.UUID) bool {
	t.mu.Lock()

	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return false
	}

	removed := t.list[idx]
	t.list = append(t.list[:idx], t.list[idx+1:]...)
	if !removed.IsRead {
		t.unread--
	}
	t.pending[id]++
	t.mu.Unlock()

	t.dispatch(mutation{
		kind:    MutationDelete,
		id:      id,
		removed: removed,
		index:   idx,
		unread:  !removed.IsRead,
	})
	return true
}

// RecentTop returns the first n notifications of the current order, fewer if
// the list is shorter. n <= 0 falls back to 10.
func (t *Tracker) RecentTop(n int) []Notification {
	if n <= 0 {
		n = 10
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n > len(t.list) {
		n = len(t.list)
	}
	out := make([]Notification, n)
	copy(out, t.list[:n])
	return out
}

// UnreadCount returns the derived unread counter.
func (t *Tracker) UnreadCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unread
}

// Snapshot returns a copy of the current list.
func (t *Tracker) Snapshot() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Notification, len(t.list))
	copy(out, t.list)
	return out
}

// Pending reports whether a record still has unconfirmed mutations.
func (t *Tracker) Pending(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[id] > 0
}

// Flush blocks until every dispatched mutation has been reconciled or
// reverted. Intended for tests and shutdown paths.
func (t *Tracker) Flush() {
	t.wg.Wait()
}

// Close stops reconciliation; in-flight retries are abandoned without revert
// since the view owning this tracker is gone.
func (t *Tracker) Close() {
	t.cancel()
	t.wg.Wait()
}

// indexOf must be called with t.mu held.
func (t *Tracker) indexOf(id uuid.UUID) int {
	for i := range t.list {
		if t.list[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) dispatch(m mutation) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.reconcile(m)
	}()
}

// reconcile retries the backend write with exponential backoff; when every
// attempt fails the optimistic change is rolled back and surfaced.
func (t *Tracker) reconcile(m mutation) {
	var lastErr error

	for attempt := 0; attempt < t.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := t.opts.BaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-t.ctx.Done():
				t.clearPending(m)
				return
			}
		}

		lastErr = t.apply(m)
		if lastErr == nil {
			t.clearPending(m)
			return
		}
	}

	t.revert(m)
	t.clearPending(m)
	t.log.LogMutationReverted(context.Background(), string(m.kind), m.id.String(), t.userID.String(), lastErr)
	if t.opts.OnFailure != nil {
		t.opts.OnFailure(m.kind, m.id, lastErr)
	}
}

func (t *Tracker) apply(m mutation) error {
	switch m.kind {
	case MutationMarkRead:
		return t.store.MarkRead(t.ctx, t.userID, m.id)
	case MutationMarkAllRead:
		return t.store.MarkAllRead(t.ctx, t.userID)
	case MutationDelete:
		return t.store.Delete(t.ctx, t.userID, m.id)
	}
	return nil
}

func (t *Tracker) clearPending(m mutation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := m.affected
	if m.kind != MutationMarkAllRead {
		ids = []uuid.UUID{m.id}
	}
	for _, id := range ids {
		if t.pending[id] <= 1 {
			delete(t.pending, id)
		} else {
			t.pending[id]--
		}
	}
}

func (t *Tracker) revert(m mutation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch m.kind {
	case MutationMarkRead:
		if idx := t.indexOf(m.id); idx >= 0 && t.list[idx].IsRead {
			t.list[idx].IsRead = false
			t.list[idx].ReadAt = nil
			t.unread++
		}

	case MutationMarkAllRead:
		for _, id := range m.affected {
			if idx := t.indexOf(id); idx >= 0 && t.list[idx].IsRead {
				t.list[idx].IsRead = false
				t.list[idx].ReadAt = nil
				t.unread++
			}
		}

	case MutationDelete:
		idx := m.index
		if idx > len(t.list) {
			idx = len(t.list)
		}
		t.list = append(t.list[:idx], append([]Notification{m.removed}, t.list[idx:]...)...)
		if m.unread {
			t.unread++
		}
	}
}
