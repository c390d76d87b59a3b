package ledger

import "sync"

// loanLocks serializes mutations per loan. Concurrent payments, term
// edits and overdue scans against the same loan take the same lock, so
// the read-mutate-recompute sequence never interleaves.
type loanLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newLoanLocks() *loanLocks {
	return &loanLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire locks the mutex for loanID and returns its release func.
func (l *loanLocks) acquire(loanID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[loanID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[loanID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
