// Package reminder runs the daily check-in reminder job. Every day at the
// configured time, sessions that have not recorded a mood yet get a nudge.
// Housekeeping jobs such as idle-session sweeps share the same scheduler.
package reminder

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/observability"
)

// Message is the reminder text queued on sessions.
const Message = "Time to check in! How are you feeling today? 💜"

// Target is a session that can be reminded.
type Target interface {
	CheckedInToday() bool
	Notify(kind domain.NotificationKind, msg string)
}

// Source lists the sessions to consider on each run.
type Source func() []Target

// Scheduler owns the cron job.
type Scheduler struct {
	cron   *gocron.Scheduler
	at     string
	source Source
}

// New creates a scheduler firing daily at at ("HH:MM") in loc.
func New(at string, loc *time.Location, source Source) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:   gocron.NewScheduler(loc),
		at:     at,
		source: source,
	}
}

// Start registers the daily job and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.Every(1).Day().At(s.at).Do(s.Remind); err != nil {
		return fmt.Errorf("schedule reminder at %q: %w", s.at, err)
	}
	s.cron.StartAsync()
	log.Printf("[reminder] daily check-in reminder scheduled at %s", s.at)
	return nil
}

// Every registers an additional housekeeping job run every d. Call it
// before Start.
func (s *Scheduler) Every(d time.Duration, name string, job func()) error {
	if _, err := s.cron.Every(d).Do(job); err != nil {
		return fmt.Errorf("schedule %s every %s: %w", name, d, err)
	}
	return nil
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Remind notifies every session that has not checked in today and returns
// how many were reminded.
func (s *Scheduler) Remind() int {
	sent := 0
	for _, t := range s.source() {
		if t.CheckedInToday() {
			continue
		}
		t.Notify(domain.NotifyInfo, Message)
		sent++
	}
	observability.RemindersSent.Add(float64(sent))
	log.Printf("[reminder] reminded %d sessions", sent)
	return sent
}
