package memorycooldown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStoreAllow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := New(WithClock(clock.Now))
	ctx := context.Background()

	ok, err := s.Allow(ctx, "a@x.com:email_verification", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(30 * time.Second)
	ok, _ = s.Allow(ctx, "a@x.com:email_verification", time.Minute)
	assert.False(t, ok)

	ok, _ = s.Allow(ctx, "a@x.com:password_reset", time.Minute)
	assert.True(t, ok, "keys are independent")

	clock.Advance(30 * time.Second)
	ok, _ = s.Allow(ctx, "a@x.com:email_verification", time.Minute)
	assert.True(t, ok, "cooldown elapsed")
}

func TestStoreDeniedCallDoesNotExtend(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := New(WithClock(clock.Now))
	ctx := context.Background()

	ok, _ := s.Allow(ctx, "k", time.Minute)
	require.True(t, ok)

	clock.Advance(59 * time.Second)
	ok, _ = s.Allow(ctx, "k", time.Minute)
	require.False(t, ok)

	clock.Advance(time.Second)
	ok, _ = s.Allow(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestStoreSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := New(WithClock(clock.Now))
	ctx := context.Background()

	_, _ = s.Allow(ctx, "short", time.Second)
	_, _ = s.Allow(ctx, "long", time.Hour)
	require.Equal(t, 2, s.Len())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestStoreConcurrentAllow(t *testing.T) {
	s := New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := s.Allow(ctx, "same", time.Minute)
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, allowed)
}
