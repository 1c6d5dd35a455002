// Package debounce schedules cancellable delayed tasks keyed by name. The
// duplicate-check handlers use it so that only the last of a burst of checks
// for the same field actually reaches the remote store.
package debounce

import (
	"sync"
	"time"
)

type task struct {
	timer    *time.Timer
	canceled chan struct{}
}

// Scheduler runs at most one pending task per key. Scheduling a key that
// already has a pending task cancels the pending one first.
type Scheduler struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*task
	stopped bool
}

// New creates a scheduler with a fixed delay between scheduling and
// execution.
func New(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay:   delay,
		pending: make(map[string]*task),
	}
}

// Schedule runs fn after the scheduler's delay unless a newer Schedule for
// the same key (or Cancel/Stop) preempts it. The returned channel is closed
// if the task is canceled instead of run.
func (s *Scheduler) Schedule(key string, fn func()) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	canceled := make(chan struct{})
	if s.stopped {
		close(canceled)
		return canceled
	}

	if prev, ok := s.pending[key]; ok {
		s.cancelLocked(key, prev)
	}

	t := &task{canceled: canceled}
	t.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.pending[key] == t {
			delete(s.pending, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.pending[key] = t
	return canceled
}

// Cancel drops the pending task for a key, if any. Reports whether a task
// was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[key]
	if !ok {
		return false
	}
	s.cancelLocked(key, t)
	return true
}

// Stop cancels every pending task and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, t := range s.pending {
		s.cancelLocked(key, t)
	}
}

func (s *Scheduler) cancelLocked(key string, t *task) {
	if t.timer.Stop() {
		close(t.canceled)
	}
	delete(s.pending, key)
}
