package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records reconciliation calls and can be told to fail.
type fakeStore struct {
	mu          sync.Mutex
	markRead    []uuid.UUID
	markAllRead int
	deleted     []uuid.UUID
	failWith    error
}

func (f *fakeStore) MarkRead(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.markRead = append(f.markRead, id)
	return nil
}

func (f *fakeStore) MarkAllRead(_ context.Context, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.markAllRead++
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) markReadCalls() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uuid.UUID, len(f.markRead))
	copy(out, f.markRead)
	return out
}

func (f *fakeStore) markAllReadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markAllRead
}

func fastOpts() TrackerOptions {
	return TrackerOptions{MaxAttempts: 2, BaseBackoff: time.Millisecond}
}

func testList(n int, unread int) []Notification {
	list := make([]Notification, n)
	for i := range list {
		list[i] = Notification{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			Type:     NotificationTypeSystem,
			Priority: NotificationPriorityNormal,
			Title:    "notification",
			IsRead:   i >= unread,
		}
		if list[i].IsRead {
			now := time.Now()
			list[i].ReadAt = &now
		}
	}
	return list
}

func TestTrackerMarkRead(t *testing.T) {
	store := &fakeStore{}
	list := testList(3, 3)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	require.Equal(t, 3, tr.UnreadCount())

	applied := tr.MarkRead(list[0].ID)
	assert.True(t, applied)
	assert.Equal(t, 2, tr.UnreadCount())

	snap := tr.Snapshot()
	assert.True(t, snap[0].IsRead)
	assert.NotNil(t, snap[0].ReadAt)

	tr.Flush()
	assert.Equal(t, []uuid.UUID{list[0].ID}, store.markReadCalls())
	assert.False(t, tr.Pending(list[0].ID))
}

func TestTrackerMarkReadIdempotent(t *testing.T) {
	store := &fakeStore{}
	list := testList(2, 2)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	assert.True(t, tr.MarkRead(list[0].ID))
	assert.False(t, tr.MarkRead(list[0].ID), "already-read id is a no-op")
	assert.Equal(t, 1, tr.UnreadCount())

	assert.False(t, tr.MarkRead(uuid.New()), "unknown id is a no-op")

	tr.Flush()
	assert.Len(t, store.markReadCalls(), 1, "no duplicate backend write")
}

func TestTrackerMarkAllRead(t *testing.T) {
	store := &fakeStore{}
	list := testList(5, 3)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	changed := tr.MarkAllRead()
	assert.Equal(t, 3, changed)
	assert.Equal(t, 0, tr.UnreadCount())

	for _, n := range tr.Snapshot() {
		assert.True(t, n.IsRead)
	}

	tr.Flush()
	assert.Equal(t, 1, store.markAllReadCalls(), "single batch update, not per-record")
}

func TestTrackerMarkAllReadEmpty(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(uuid.New(), testList(2, 0), store, fastOpts())
	defer tr.Close()

	assert.Equal(t, 0, tr.MarkAllRead())
	tr.Flush()
	assert.Equal(t, 0, store.markAllReadCalls(), "nothing unread dispatches nothing")
}

func TestTrackerDelete(t *testing.T) {
	store := &fakeStore{}
	list := testList(3, 3)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	assert.True(t, tr.Delete(list[1].ID))
	assert.Equal(t, 2, tr.UnreadCount())

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, list[0].ID, snap[0].ID)
	assert.Equal(t, list[2].ID, snap[1].ID)

	assert.False(t, tr.Delete(uuid.New()), "missing id fails silently")

	tr.Flush()
}

func TestTrackerRecentTop(t *testing.T) {
	store := &fakeStore{}
	list := testList(15, 0)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	top := tr.RecentTop(5)
	require.Len(t, top, 5)
	for i := range top {
		assert.Equal(t, list[i].ID, top[i].ID, "order preserved")
	}

	assert.Len(t, tr.RecentTop(0), 10, "non-positive n falls back to 10")
	assert.Len(t, tr.RecentTop(100), 15, "capped at list length")
}

func TestTrackerRevertOnFailure(t *testing.T) {
	store := &fakeStore{failWith: errors.New("backend unavailable")}
	list := testList(3, 3)

	var (
		failMu   sync.Mutex
		failures []MutationKind
	)
	opts := fastOpts()
	opts.OnFailure = func(kind MutationKind, _ uuid.UUID, err error) {
		failMu.Lock()
		failures = append(failures, kind)
		failMu.Unlock()
	}

	tr := NewTracker(uuid.New(), list, store, opts)
	defer tr.Close()

	require.True(t, tr.MarkRead(list[0].ID))
	assert.Equal(t, 2, tr.UnreadCount())

	tr.Flush()

	// Every attempt failed: the optimistic change is rolled back.
	assert.Equal(t, 3, tr.UnreadCount())
	snap := tr.Snapshot()
	assert.False(t, snap[0].IsRead)
	assert.Nil(t, snap[0].ReadAt)
	assert.False(t, tr.Pending(list[0].ID))

	failMu.Lock()
	defer failMu.Unlock()
	require.Len(t, failures, 1)
	assert.Equal(t, MutationMarkRead, failures[0])
}

func TestTrackerRevertDelete(t *testing.T) {
	store := &fakeStore{failWith: errors.New("backend unavailable")}
	list := testList(3, 3)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	require.True(t, tr.Delete(list[1].ID))
	require.Len(t, tr.Snapshot(), 2)

	tr.Flush()

	snap := tr.Snapshot()
	require.Len(t, snap, 3, "deleted record restored")
	assert.Equal(t, list[1].ID, snap[1].ID, "restored at its original position")
	assert.Equal(t, 3, tr.UnreadCount())
}

func TestTrackerRevertMarkAllRead(t *testing.T) {
	store := &fakeStore{failWith: errors.New("backend unavailable")}
	list := testList(4, 2)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	require.Equal(t, 2, tr.MarkAllRead())
	require.Equal(t, 0, tr.UnreadCount())

	tr.Flush()

	assert.Equal(t, 2, tr.UnreadCount(), "only optimistically flipped records revert")
	snap := tr.Snapshot()
	assert.False(t, snap[0].IsRead)
	assert.False(t, snap[1].IsRead)
	assert.True(t, snap[2].IsRead, "records read before the mutation stay read")
}

func TestTrackerReset(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(uuid.New(), testList(2, 2), store, fastOpts())
	defer tr.Close()

	fresh := testList(5, 1)
	tr.Reset(fresh)

	assert.Equal(t, 1, tr.UnreadCount())
	assert.Len(t, tr.Snapshot(), 5)
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	store := &fakeStore{}
	list := testList(2, 2)
	tr := NewTracker(uuid.New(), list, store, fastOpts())
	defer tr.Close()

	snap := tr.Snapshot()
	snap[0].IsRead = true

	assert.False(t, tr.Snapshot()[0].IsRead, "mutating a snapshot never touches tracker state")
}
