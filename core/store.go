package core

import "sync"

// SessionStore is the single in-memory holder of the current Identity and
// its resolution state. It is created once per process and injected into
// whoever needs to read it.
//
// Contract: exactly one component (the auth controller) calls Set and
// SetResolving; guards and views only call Get and Subscribe. The store
// itself never fails - failures are handled by whoever mutates it.
type SessionStore struct {
	mu        sync.RWMutex
	current   *Identity
	resolving bool

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewSessionStore returns a store with no identity and Resolving set,
// matching the process-start state: unresolved until the first session
// check completes.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		resolving: true,
		subs:      make(map[int]func(Snapshot)),
	}
}

// Get returns the current snapshot. No side effects.
func (s *SessionStore) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Current: s.current, Resolving: s.resolving}
}

// Set replaces the current identity wholesale (nil clears it) and
// notifies subscribers synchronously. Writes are idempotent by
// replacement, so a stale late write is harmless.
func (s *SessionStore) Set(identity *Identity) {
	s.mu.Lock()
	s.current = identity
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SetResolving toggles the resolving flag around asynchronous session
// checks and notifies subscribers if the flag actually changed.
func (s *SessionStore) SetResolving(resolving bool) {
	s.mu.Lock()
	if s.resolving == resolving {
		s.mu.Unlock()
		return
	}
	s.resolving = resolving
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Subscribe registers fn to be called synchronously on every store
// mutation. The returned function removes the subscription.
func (s *SessionStore) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotLocked copies the snapshot and subscriber list so callbacks can
// run outside the lock. Callers must hold mu.
func (s *SessionStore) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snap := Snapshot{Current: s.current, Resolving: s.resolving}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}
