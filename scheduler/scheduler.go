// Package scheduler implements per-user notification triggers
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"weatherbot.app/errors"
	"weatherbot.app/metrics"
	"weatherbot.app/models"
)

// NotifyFunc runs one notification cycle for a user. Errors are logged and
// never cancel the registration.
type NotifyFunc func(id models.ChatID) error

// Scheduler manages one recurring daily trigger per user, evaluated in the
// user's own IANA zone. A stalled process coalesces missed trigger times
// into a single catch-up fire: the cron runner fires an overdue entry once
// and then recomputes the next time from the current clock.
type Scheduler struct {
	cron    *cron.Cron
	notify  NotifyFunc
	metrics *metrics.NotificationMetrics

	mu   sync.Mutex
	jobs map[models.ChatID]*registration
}

type registration struct {
	entryID  cron.EntryID
	schedule cron.Schedule
	job      *notifyJob
}

// NewScheduler creates a scheduler that invokes notify on each fire
func NewScheduler(notify NotifyFunc, notificationMetrics *metrics.NotificationMetrics) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		notify:  notify,
		metrics: notificationMetrics,
		jobs:    make(map[models.ChatID]*registration),
	}
}

// Start begins trigger evaluation
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts trigger evaluation and waits for in-flight fires to complete
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Register installs a recurring trigger firing daily at hour:minute local
// time in the given zone. An existing job for the same id is replaced
// atomically; on a validation failure the existing job is left untouched.
func (s *Scheduler) Register(id models.ChatID, hour, minute int, timezone string) error {
	if hour < 0 || hour > 23 {
		return errors.NewConfigurationError(fmt.Sprintf("hour must be between 0 and 23, got %d", hour), nil)
	}
	if minute < 0 || minute > 59 {
		return errors.NewConfigurationError(fmt.Sprintf("minute must be between 0 and 59, got %d", minute), nil)
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("invalid timezone: %s", timezone), err)
	}

	spec := fmt.Sprintf("CRON_TZ=%s %d %d * * *", timezone, minute, hour)
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("invalid schedule spec: %s", spec), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[id]; ok {
		s.cron.Remove(existing.entryID)
	}

	job := &notifyJob{
		userID:  id,
		notify:  s.notify,
		metrics: s.metrics,
	}
	entryID := s.cron.Schedule(schedule, job)
	s.jobs[id] = &registration{
		entryID:  entryID,
		schedule: schedule,
		job:      job,
	}

	slog.Info("Notification job registered", "chat_id", id, "hour", hour, "minute", minute, "timezone", timezone)
	return nil
}

// Unregister cancels the user's trigger; unknown ids are a no-op. An
// in-flight fire is allowed to complete, but no future fire will occur.
func (s *Scheduler) Unregister(id models.ChatID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[id]
	if !ok {
		return
	}

	s.cron.Remove(existing.entryID)
	delete(s.jobs, id)
	slog.Info("Notification job unregistered", "chat_id", id)
}

// Registered reports whether the user currently has an armed job
func (s *Scheduler) Registered(id models.ChatID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.jobs[id]
	return ok
}

// JobCount returns the number of armed jobs
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

// NextFire returns the next trigger time for the user's job after from
func (s *Scheduler) NextFire(id models.ChatID, from time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[id]
	if !ok {
		return time.Time{}, false
	}

	return existing.schedule.Next(from), true
}

// notifyJob executes one user's notification cycle. At most one execution
// per user runs at a time: a fire that arrives while the previous one is
// still in progress is dropped, not queued.
type notifyJob struct {
	userID  models.ChatID
	notify  NotifyFunc
	metrics *metrics.NotificationMetrics
	running atomic.Bool
}

func (j *notifyJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		slog.Warn("Notification fire dropped, previous run still in progress", "chat_id", j.userID)
		j.metrics.RecordDrop()
		return
	}
	defer j.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			j.metrics.RecordFailure()
			slog.Error("Notification cycle panicked, job stays armed", "chat_id", j.userID, "panic", r)
		}
	}()

	j.metrics.RecordFire()

	if err := j.notify(j.userID); err != nil {
		j.metrics.RecordFailure()
		slog.Error("Notification cycle failed, job stays armed", "chat_id", j.userID, "error", err)
	}
}
