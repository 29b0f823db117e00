package ledger

import "sync"

// playerLocks serializes mutating operations per player id.
//
// Locks are never released back; the map grows with the player base, which is
// bounded and small for this app. The memory backend has no transactions, so
// this is what prevents lost bean/height updates and double-spends.
type playerLocks struct {
	locks sync.Map
}

func (l *playerLocks) lock(id int64) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
