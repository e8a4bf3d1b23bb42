package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store is a thread-safe registry of open sessions with idle eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	opts     Options
	log      *slog.Logger
	now      func() time.Time
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

// NewStore creates a store whose sessions use opts and are closed after ttl
// without use.
func NewStore(opts Options, ttl time.Duration, log *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// Open starts a session for text. A zero budget uses the store default.
func (st *Store) Open(title, text string, budget int) (*Session, error) {
	opts := st.opts
	if budget != 0 {
		opts.Budget = budget
	}
	s, err := Open(NewID(), title, text, opts, st.log)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.sessions[s.ID()] = &entry{session: s, lastUsed: st.now()}
	st.mu.Unlock()
	return s, nil
}

// Get returns an open session and marks it used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastUsed = st.now()
	return e.session, nil
}

// Close closes and removes a session.
func (st *Store) Close(id string) error {
	st.mu.Lock()
	e, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.session.Close()
	return nil
}

// Len returns the number of open sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup closes sessions idle for longer than the TTL and returns how many
// were closed.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	now := st.now()
	var expired []*Session
	for id, e := range st.sessions {
		if now.Sub(e.lastUsed) > st.ttl {
			expired = append(expired, e.session)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		st.log.Info("expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// CloseAll closes every session.
func (st *Store) CloseAll() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*entry)
	st.mu.Unlock()
	for _, e := range all {
		e.session.Close()
	}
}

// Run evicts idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Cleanup()
		}
	}
}
