package memorycooldown

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = time.Minute

// Store keeps cooldowns in process memory. It is only correct for
// single-instance deployments and forgets everything on restart.
type Store struct {
	mu       sync.Mutex
	deadline map[string]time.Time
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		deadline: make(map[string]time.Time),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Allow(_ context.Context, key string, cooldown time.Duration) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if until, ok := s.deadline[key]; ok && now.Before(until) {
		return false, nil
	}

	s.deadline[key] = now.Add(cooldown)
	return true, nil
}

// Len returns the number of tracked keys, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deadline)
}

// Sweep drops every key whose cooldown has elapsed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, until := range s.deadline {
		if !now.Before(until) {
			delete(s.deadline, key)
			removed++
		}
	}
	return removed
}

// Run sweeps expired keys every interval until ctx is done or Close is called.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
