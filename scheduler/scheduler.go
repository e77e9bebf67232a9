// Package scheduler implements background job scheduling
package scheduler

import (
	"context"
	"log"
	"time"

	"graniteapi.app/config"
	"graniteapi.app/providers/cache"
	"graniteapi.app/repository"
)

// Scheduler manages periodic tasks for the application: sweeping expired
// cache entries and reporting inquiries still awaiting notification.
type Scheduler struct {
	config      *config.Config
	cache       cache.GenericCacheInterface
	inquiryRepo *repository.InquiryRepository
	stop        chan struct{}
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(config *config.Config, genericCache cache.GenericCacheInterface, inquiryRepo *repository.InquiryRepository) *Scheduler {
	return &Scheduler{
		config:      config,
		cache:       genericCache,
		inquiryRepo: inquiryRepo,
		stop:        make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	cleanupInterval := time.Duration(s.config.Scheduler.CacheCleanupInterval) * time.Minute
	go s.scheduleInterval(cleanupInterval, s.sweepCache)

	go s.scheduleInterval(24*time.Hour, s.reportPendingInquiries)
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) sweepCache() {
	removed := s.cache.RemoveExpired(context.Background())
	if removed > 0 {
		log.Printf("Cache sweep removed %d expired entries\n", removed)
	}
}

func (s *Scheduler) reportPendingInquiries() {
	if s.inquiryRepo == nil {
		return
	}

	count, err := s.inquiryRepo.CountPendingNotifications()
	if err != nil {
		log.Printf("Error counting pending inquiry notifications: %v\n", err)
		return
	}
	if count > 0 {
		log.Printf("%d inquiries still await owner notification\n", count)
	}
}
