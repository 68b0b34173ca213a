package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_NextIsMonotonic(t *testing.T) {
	r := NewRegistry()

	first := r.Next("merchant:stats:u1")
	second := r.Next("merchant:stats:u1")

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
}

func TestRegistry_StaleGenerationIsNotCurrent(t *testing.T) {
	r := NewRegistry()

	older := r.Next("tickets:u1")
	newer := r.Next("tickets:u1")

	assert.False(t, r.Current("tickets:u1", older), "earlier fetch must be discarded once a newer one started")
	assert.True(t, r.Current("tickets:u1", newer))
}

func TestRegistry_KeysAreIndependent(t *testing.T) {
	r := NewRegistry()

	statsGen := r.Next("merchant:stats:u1")
	r.Next("merchant:transactions:u1")

	assert.True(t, r.Current("merchant:stats:u1", statsGen),
		"a fetch for a different view slice must not invalidate this one")
}

func TestRegistry_InvalidateDropsOutstandingFetches(t *testing.T) {
	r := NewRegistry()

	gen := r.Next("notifications:u1")
	r.Invalidate("notifications:u1")

	assert.False(t, r.Current("notifications:u1", gen))
}

func TestRegistry_UnknownKeyNeverCurrent(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Current("never-issued", 1))
}

func TestRegistry_ConcurrentNext(t *testing.T) {
	r := NewRegistry()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			r.Next("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(workers+1), r.Next("shared"))
}
