package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron   *cron.Cron
	mu     sync.Mutex
	timers []*time.Timer
	jobs   sync.WaitGroup
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop cancels pending one-shot jobs and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	for _, t := range s.timers {
		if t.Stop() {
			s.jobs.Done()
		}
	}
	s.timers = nil
	s.mu.Unlock()
	s.jobs.Wait()

	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, job)
}

// ScheduleOnce runs job a single time after delay.
func (s *SchedulerService) ScheduleOnce(delay time.Duration, job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.Add(1)
	s.timers = append(s.timers, time.AfterFunc(delay, func() {
		defer s.jobs.Done()
		job()
	}))
}

// Entries reports how many periodic jobs are registered.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}
