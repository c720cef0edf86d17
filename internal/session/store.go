package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long an idle session survives before eviction.
// Eviction is equivalent to the identity never having interacted.
const DefaultTTL = 24 * time.Hour

// Store maps conversation identities to sessions. Insert and lookup are safe
// for concurrent use by different identities; per-identity event
// serialization is the session's own concern.
type Store struct {
	mu       sync.Mutex
	sessions *gocache.Cache
}

// NewStore creates a session store with the given idle TTL.
// A non-positive TTL disables eviction.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := ttl / 4
	if cleanup <= 0 {
		cleanup = 0
	}
	return &Store{
		sessions: gocache.New(ttl, cleanup),
	}
}

// GetOrCreate returns the session for an identity, creating it on first
// interaction. Each access refreshes the idle TTL.
func (st *Store) GetOrCreate(identity string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if v, ok := st.sessions.Get(identity); ok {
		sess := v.(*Session)
		st.sessions.SetDefault(identity, sess)
		return sess
	}

	sess := New(identity)
	st.sessions.SetDefault(identity, sess)
	return sess
}

// Get returns the session for an identity without creating one.
func (st *Store) Get(identity string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	v, ok := st.sessions.Get(identity)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Delete removes a session entirely.
func (st *Store) Delete(identity string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions.Delete(identity)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions.ItemCount()
}
