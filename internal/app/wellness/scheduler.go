package wellness

import "time"

// CancelFunc stops a scheduled task. It reports whether the task was
// stopped before it ran.
type CancelFunc func() bool

// Scheduler runs deferred work.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc runs f in its own goroutine after d.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	return time.AfterFunc(d, f).Stop
}
