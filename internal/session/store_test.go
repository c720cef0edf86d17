package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	store := NewStore(0)

	s1 := store.GetOrCreate("chat-1")
	s2 := store.GetOrCreate("chat-1")
	assert.Same(t, s1, s2)

	s3 := store.GetOrCreate("chat-2")
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, store.Len())
}

func TestStore_GetWithoutCreate(t *testing.T) {
	store := NewStore(0)

	_, ok := store.Get("chat-1")
	assert.False(t, ok)

	created := store.GetOrCreate("chat-1")
	got, ok := store.Get("chat-1")
	require.True(t, ok)
	assert.Same(t, created, got)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(0)
	store.GetOrCreate("chat-1")

	store.Delete("chat-1")
	_, ok := store.Get("chat-1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_IdleEviction(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	store.GetOrCreate("chat-1")

	time.Sleep(50 * time.Millisecond)
	_, ok := store.Get("chat-1")
	assert.False(t, ok)
}

func TestStore_ConcurrentIdentities(t *testing.T) {
	store := NewStore(0)

	var wg sync.WaitGroup
	const workers = 32
	sessions := make([]*Session, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity := fmt.Sprintf("chat-%d", i%8)
			sessions[i] = store.GetOrCreate(identity)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, store.Len())
	// Same identity always resolves to the same session
	for i := 0; i < workers; i++ {
		assert.Same(t, store.GetOrCreate(fmt.Sprintf("chat-%d", i%8)), sessions[i])
	}
}

func TestStore_PerIdentityEventSerialization(t *testing.T) {
	store := NewStore(0)
	sess := store.GetOrCreate("chat-1")

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess.LockEvents()
			defer sess.UnlockEvents()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
		}(i)
	}
	wg.Wait()

	// All four events ran, one at a time
	assert.Len(t, order, 4)
}
