package services

import "sync"

// tableLockSet serializes the check-then-write sequence per table. Two
// concurrent creates against different tables proceed in parallel; against
// the same table the second waits until the first has persisted, which
// closes the double-booking race between the availability read and the
// reservation insert.
type tableLockSet struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newTableLockSet() *tableLockSet {
	return &tableLockSet{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for the given table, creating it on first use.
// The set only ever grows, but the domain is tens of tables.
func (s *tableLockSet) Lock(tableID uint) {
	s.mu.Lock()
	l, ok := s.locks[tableID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tableID] = l
	}
	s.mu.Unlock()
	l.Lock()
}

func (s *tableLockSet) Unlock(tableID uint) {
	s.mu.Lock()
	l := s.locks[tableID]
	s.mu.Unlock()
	if l != nil {
		l.Unlock()
	}
}
