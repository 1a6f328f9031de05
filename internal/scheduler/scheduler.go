package scheduler

import (
	"context"
	"log"
	"sort"
	"time"

	"status-backend/config"
	"status-backend/internal/filecache"
	"status-backend/internal/store"
)

// job is one scheduled maintenance task with its next deadline.
type job struct {
	name       string
	next       time.Time
	run        func(ctx context.Context, now time.Time)
	reschedule func(now time.Time) time.Time
}

// Service drives the periodic maintenance work: metrics rollover at local
// midnight and cache sweeps every cache-age interval.
type Service struct {
	cfg   *config.Config
	store store.Store
	cache *filecache.Cache
	jobs  []*job
}

// NewService creates the maintenance scheduler.
func NewService(cfg *config.Config, st store.Store, fc *filecache.Cache) *Service {
	return &Service{cfg: cfg, store: st, cache: fc}
}

// Run executes maintenance jobs until ctx is canceled. All jobs run on
// this goroutine, one at a time, so a job can never overlap itself.
func (s *Service) Run(ctx context.Context) {
	log.Println("Starting scheduler service...")
	now := time.Now().In(s.cfg.Location)

	if s.cfg.Metrics.Enabled {
		// Eager pass so counters are correct right after a restart that
		// crossed a period boundary.
		s.rollover(ctx, now)
		s.jobs = append(s.jobs, &job{
			name:       "metrics-rollover",
			next:       nextMidnight(now),
			run:        s.rollover,
			reschedule: nextMidnight,
		})
	}
	s.jobs = append(s.jobs, &job{
		name:       "cache-sweep",
		next:       now.Add(s.cfg.CacheAge),
		run:        s.sweep,
		reschedule: func(t time.Time) time.Time { return t.Add(s.cfg.CacheAge) },
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler service shutting down.")
			return
		case <-ticker.C:
			s.runDue(ctx, time.Now().In(s.cfg.Location))
		}
	}
}

// runDue keeps the job list ordered by deadline and runs every job that is
// due at now, rescheduling each after it completes.
func (s *Service) runDue(ctx context.Context, now time.Time) {
	for {
		sort.Slice(s.jobs, func(i, j int) bool { return s.jobs[i].next.Before(s.jobs[j].next) })
		if len(s.jobs) == 0 || now.Before(s.jobs[0].next) {
			return
		}
		j := s.jobs[0]
		log.Printf("[scheduler] running %s", j.name)
		j.run(ctx, now)
		j.next = j.reschedule(now)
	}
}

// rollover is best-effort: storage failures are logged and the next pass
// retries, keeping the loop alive on a flaky database.
func (s *Service) rollover(ctx context.Context, now time.Time) {
	if err := s.store.RolloverMetrics(ctx, now); err != nil {
		log.Printf("[scheduler] metrics rollover skipped: %v", err)
	}
}

func (s *Service) sweep(context.Context, time.Time) {
	s.cache.Sweep()
}

// nextMidnight returns 00:00:00 of the following day in now's location.
func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
