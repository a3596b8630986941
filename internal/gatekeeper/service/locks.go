package service

import "sync"

// userLocks serializes read-modify-write sequences per user id. Cross-user
// operations never contend: each id gets its own mutex, created on first use.
// Entries are never evicted; the expected population makes this acceptable.
type userLocks struct {
	mu sync.Map // map[int64]*sync.Mutex
}

// lock acquires the mutex for the given user and returns the unlock func.
func (l *userLocks) lock(userID int64) func() {
	m, _ := l.mu.LoadOrStore(userID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
