package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateLookupRemove(t *testing.T) {
	r := NewRegistry()

	id := r.Create("test@example.com")
	require.NotEmpty(t, id)
	assert.True(t, r.Exists(id))

	query, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "test@example.com", query)

	s, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	assert.True(t, r.Remove(id))
	assert.False(t, r.Exists(id))

	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	id := r.Create("jane doe")

	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id))
	assert.False(t, r.Remove("sess_never_created"))
	assert.False(t, r.Exists(id))
	assert.False(t, r.Exists("sess_never_created"))
}

func TestRegistryStatus(t *testing.T) {
	r := NewRegistry()
	id := r.Create("192.168.1.1")

	st := r.Status(id)
	assert.Equal(t, id, st.SessionID)
	assert.True(t, st.Active)
	assert.Equal(t, "192.168.1.1", st.Query)

	// Status never removes.
	assert.True(t, r.Exists(id))

	r.Remove(id)
	st = r.Status(id)
	assert.False(t, st.Active)
	assert.Equal(t, "", st.Query)
}

func TestRegistryRegeneratesCollidingIDs(t *testing.T) {
	r := NewRegistry()
	ids := []string{"dup", "dup", "fresh"}
	next := 0
	r.newID = func() string {
		id := ids[next]
		next++
		return id
	}

	first := r.Create("a")
	second := r.Create("b")

	assert.Equal(t, "dup", first)
	assert.Equal(t, "fresh", second)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := r.Create(fmt.Sprintf("query-%d", i))
			q, ok := r.Lookup(id)
			assert.True(t, ok)
			assert.Equal(t, fmt.Sprintf("query-%d", i), q)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, workers, r.Len())

	for id := range seen {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r.Remove(id)
			r.Remove(id)
		}(id)
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func TestRegistryClaimOnce(t *testing.T) {
	r := NewRegistry()
	id := r.Create("test@example.com")

	query, ok := r.Claim(id)
	require.True(t, ok)
	assert.Equal(t, "test@example.com", query)

	_, ok = r.Claim(id)
	assert.False(t, ok)

	// A claimed session is still active until removed.
	st := r.Status(id)
	assert.True(t, st.Active)
	assert.Equal(t, "test@example.com", st.Query)

	r.Remove(id)
	_, ok = r.Claim(id)
	assert.False(t, ok)
	_, ok = r.Claim("sess_missing")
	assert.False(t, ok)
}

func TestRegistryConcurrentClaim(t *testing.T) {
	r := NewRegistry()
	id := r.Create("8.8.8.8")
	const workers = 20

	var wg sync.WaitGroup
	var won int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := r.Claim(id); ok {
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), won)
}
