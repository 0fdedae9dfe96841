package session

import "sync"

// MemoryStore is the in-memory Store implementation. Reads take the shared
// lock, writes the exclusive one; values are copied in and out so callers
// never observe a torn record.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]Record

	userMu    sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   make(map[int64]Record),
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// Get returns the record for a user if it exists.
func (s *MemoryStore) Get(userID int64) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	return rec, ok
}

// Put replaces any existing record for the user.
func (s *MemoryStore) Put(userID int64, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = rec
}

// Delete removes the record for the user.
func (s *MemoryStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
}

// Acquire locks the user's slot for a read-modify-write cycle. Per-user
// mutexes are created lazily and kept for the process lifetime, same as the
// records themselves.
func (s *MemoryStore) Acquire(userID int64) func() {
	s.userMu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.userMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Counts reports how many sessions sit in each phase.
func (s *MemoryStore) Counts() map[Phase]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[Phase]int, 3)
	for _, rec := range s.records {
		counts[rec.Phase]++
	}
	return counts
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Locker  = (*MemoryStore)(nil)
	_ Counter = (*MemoryStore)(nil)
)
