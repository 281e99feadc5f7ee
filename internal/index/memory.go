package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

// MemoryIndex holds the snapshot currently being served.
// Readers never block each other; a regeneration swaps the pointer.
type MemoryIndex struct {
	mu           sync.RWMutex
	current      *domain.Snapshot
	lastReload   time.Time // last successful swap
	lastAttempt  time.Time // last generation attempt, successful or not
	lastError    error
	failureCount int // consecutive failures since the last success
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update replaces the served snapshot and clears the failure state.
func (idx *MemoryIndex) Update(s *domain.Snapshot) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.current = s
	idx.lastReload = time.Now()
	idx.lastAttempt = idx.lastReload
	idx.lastError = nil
	idx.failureCount = 0
}

// Restore installs a snapshot loaded from persistent storage without
// counting it as a regeneration.
func (idx *MemoryIndex) Restore(s *domain.Snapshot) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.current == nil {
		idx.current = s
	}
}

// RecordFailure notes a failed generation. The served snapshot is kept.
func (idx *MemoryIndex) RecordFailure(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastAttempt = time.Now()
	idx.lastError = err
	idx.failureCount++
}

// Current returns the served snapshot, if any.
func (idx *MemoryIndex) Current() (*domain.Snapshot, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current, idx.current != nil
}

// HasSnapshot reports whether anything can be served.
func (idx *MemoryIndex) HasSnapshot() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current != nil
}

// GetLastReload returns the time of the last successful regeneration.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// LastAttempt returns the time of the last generation attempt.
func (idx *MemoryIndex) LastAttempt() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastAttempt
}

// Failures returns the number of consecutive failed generations and the
// last error. Both reset on success.
func (idx *MemoryIndex) Failures() (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.failureCount, idx.lastError
}
