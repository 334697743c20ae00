package service

import "sync"

// sourceLocks hands out at-most-one in-process lock per source URL. A
// merge that cannot acquire the lock fails fast with ErrConcurrentMerge
// instead of interleaving with the one in flight; the row lock taken
// inside the transaction covers competing processes.
type sourceLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func newSourceLocks() *sourceLocks {
	return &sourceLocks{held: make(map[string]bool)}
}

// acquire takes the lock for a URL, reporting false when it is already
// held.
func (l *sourceLocks) acquire(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[url] {
		return false
	}
	l.held[url] = true
	return true
}

func (l *sourceLocks) release(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, url)
}
