package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"graniteapi.app/config"
	"graniteapi.app/providers/cache"
)

func TestSchedulerSweepsExpiredEntries(t *testing.T) {
	memCache := cache.NewMemoryCache()
	ctx := context.Background()

	memCache.Set(ctx, "stale", []byte("a"), time.Millisecond)
	memCache.Set(ctx, "fresh", []byte("b"), time.Hour)
	time.Sleep(5 * time.Millisecond)

	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{CacheCleanupInterval: 10},
	}
	s := NewScheduler(cfg, memCache, nil)
	s.sweepCache()

	_, found := memCache.Get(ctx, "stale")
	assert.False(t, found)
	_, found = memCache.Get(ctx, "fresh")
	assert.True(t, found)
}

func TestSchedulerStopTerminatesJobs(t *testing.T) {
	memCache := cache.NewMemoryCache()
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{CacheCleanupInterval: 1},
	}

	s := NewScheduler(cfg, memCache, nil)
	s.Start()
	s.Stop()

	assert.NotPanics(t, func() {
		s.sweepCache()
	})
}
