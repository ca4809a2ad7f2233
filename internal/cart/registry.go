package cart

import (
	"sync"
	"time"
)

type session struct {
	store      *Store
	lastAccess time.Time
}

// Registry owns one Store per storefront session. Stores are created on first
// use and dropped once idle for longer than the configured TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
	now      func() time.Time
	onEvict  []func(sessionID string)
}

func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// OnEvict registers a hook run, outside the registry lock, for every evicted
// session. Other per-session state keyed on the same id hangs off this.
func (r *Registry) OnEvict(fn func(sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = append(r.onEvict, fn)
}

// Get returns the session's store, creating it if needed, and marks the
// session as active.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		sess = &session{store: NewStore()}
		r.sessions[sessionID] = sess
	}
	sess.lastAccess = r.now()
	return sess.store
}

// Peek returns the store without creating or touching it.
func (r *Registry) Peek(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return sess.store, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions idle past the TTL and returns how many went.
// Sessions with a pending checkout are kept.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	cutoff := r.now().Add(-r.idleTTL)
	var evicted []string
	for id, sess := range r.sessions {
		if sess.lastAccess.Before(cutoff) && !sess.store.Locked() {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	hooks := append([]func(string){}, r.onEvict...)
	r.mu.Unlock()

	for _, id := range evicted {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return len(evicted)
}
