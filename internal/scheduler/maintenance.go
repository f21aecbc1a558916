// Package scheduler enqueues the catalog's periodic maintenance tasks.
// Jobs only put work on the task queue; the tasks package does the work.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/tasks"
)

const enqueueTimeout = 30 * time.Second

// TaskEnqueuer puts a task on the background queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// MaintenanceConfig holds the schedules of the maintenance jobs.
// An empty schedule disables that job.
type MaintenanceConfig struct {
	AuditCleanupSchedule  string
	AuditRetentionDays    int
	OverdueReportSchedule string
}

// MaintenanceScheduler enqueues audit cleanup and overdue report tasks on cron schedules
type MaintenanceScheduler struct {
	enqueuer TaskEnqueuer
	config   MaintenanceConfig

	cron       *cron.Cron
	entries    map[string]cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(enqueuer TaskEnqueuer, cfg MaintenanceConfig) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		enqueuer: enqueuer,
		config:   cfg,
		cron:     cron.New(cron.WithParser(parser)),
		entries:  make(map[string]cron.EntryID),
	}
}

// Start schedules the configured jobs and starts the cron runner.
// It stops on its own when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := []struct {
		name     string
		schedule string
		task     backlite.Task
	}{
		{"audit_cleanup", s.config.AuditCleanupSchedule, tasks.CleanupAuditEventsTask{RetentionDays: s.config.AuditRetentionDays}},
		{"overdue_report", s.config.OverdueReportSchedule, tasks.OverdueReportTask{}},
	}

	for _, job := range jobs {
		if job.schedule == "" {
			log.Info().Str("job", job.name).Msg("Maintenance job disabled")
			continue
		}
		if err := ValidateCronSchedule(job.schedule); err != nil {
			s.removeEntries()
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.schedule, job.name, err)
		}

		name, task := job.name, job.task
		entryID, err := s.cron.AddFunc(job.schedule, func() {
			s.enqueue(name, task)
		})
		if err != nil {
			s.removeEntries()
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		s.entries[job.name] = entryID

		next, _ := NextRunTime(job.schedule, time.Now())
		log.Info().
			Str("job", job.name).
			Str("schedule", job.schedule).
			Str("description", DescribeSchedule(job.schedule)).
			Time("next_run", next).
			Msg("Maintenance job scheduled")
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron runner and waits for running jobs to finish
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	done := s.cron.Stop()
	<-done.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Info().Msg("Maintenance scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the named job fires next, or nil if it is not scheduled.
func (s *MaintenanceScheduler) NextRun(job string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[job]
	if !ok || !s.isRunning {
		return nil
	}
	next := s.cron.Entry(id).Next
	return &next
}

// RunNow enqueues every scheduled job immediately.
func (s *MaintenanceScheduler) RunNow() {
	s.mu.RLock()
	ids := make([]cron.EntryID, 0, len(s.entries))
	for _, id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if job := s.cron.Entry(id).Job; job != nil {
			job.Run()
		}
	}
}

func (s *MaintenanceScheduler) enqueue(name string, task backlite.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	id, err := s.enqueuer.Enqueue(ctx, task)
	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("Failed to enqueue maintenance task")
		return
	}
	log.Debug().Str("job", name).Str("task_id", id).Msg("Maintenance task enqueued")
}

// removeEntries must be called with mu held.
func (s *MaintenanceScheduler) removeEntries() {
	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
}
