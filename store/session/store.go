package session

import "sync"

type entry struct {
	mu      sync.Mutex
	session Session
}

// Store holds sessions keyed by user id. Each user has an independent
// lock, so one user's update never blocks another's.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (s *Store) entryFor(userID int64) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{session: Session{Cart: make(map[int64]int)}}
	s.entries[userID] = e
	return e
}

// Get returns a snapshot of the user's session. A user never seen before
// gets a fresh empty session. Mutating the snapshot does not affect the
// stored state; use Update for that.
func (s *Store) Get(userID int64) Session {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone()
}

// Update applies fn to the user's session under the per-user lock.
// fn receives the live session and may mutate it freely.
func (s *Store) Update(userID int64, fn func(*Session)) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
	if e.session.Cart == nil {
		e.session.Cart = make(map[int64]int)
	}
}

// Len reports how many users currently have a session.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
