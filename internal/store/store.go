// Package store keeps finished runs in memory so they can be exported,
// charted and analysed after the request that started them.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"battery-sim/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired run ids.
var ErrNotFound = errors.New("run not found")

// DefaultTTL is how long a run stays available after it was stored.
const DefaultTTL = time.Hour

type entry struct {
	run       *model.Run
	expiresAt time.Time
}

// RunStore is an in-memory, TTL-bounded map of runs keyed by id.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]*entry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	close sync.Once
}

// New creates a store. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *RunStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RunStore{
		runs: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}
}

// Put assigns an id to run (when it has none) and stores it.
func (s *RunStore) Put(run *model.Run) string {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = &entry{run: run, expiresAt: s.now().Add(s.ttl)}
	return run.ID
}

// Get returns a stored run that has not expired.
func (s *RunStore) Get(id string) (*model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.runs[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e.run, nil
}

func (s *RunStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
}

// Len counts stored entries, expired ones included until the next sweep.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Sweep removes expired runs and reports how many were dropped.
func (s *RunStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.runs {
		if now.After(e.expiresAt) {
			delete(s.runs, id)
			n++
		}
	}
	return n
}

// StartCleanup sweeps every interval until Close is called.
func (s *RunStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *RunStore) Close() {
	s.close.Do(func() { close(s.stop) })
}
