package wellness

import (
	"fmt"

	"github.com/calma-app/calma/internal/domain"
)

// ProgressionLedger accumulates points, streak and total days.
// Level is recomputed from the point total on every change.
type ProgressionLedger struct {
	p domain.UserProgress
}

// NewProgressionLedger starts from initial, normalising its level.
func NewProgressionLedger(initial domain.UserProgress) *ProgressionLedger {
	initial.Level = domain.LevelFor(initial.Points)
	return &ProgressionLedger{p: initial}
}

// Award adds points. Negative awards are rejected without changing state.
func (l *ProgressionLedger) Award(points int) (domain.UserProgress, error) {
	if points < 0 {
		return l.p, fmt.Errorf("%w: %d", domain.ErrNegativePoints, points)
	}
	l.p.Points += points
	l.p.Level = domain.LevelFor(l.p.Points)
	return l.p, nil
}

// AdvanceStreak counts another consecutive check-in day.
func (l *ProgressionLedger) AdvanceStreak() domain.UserProgress {
	l.p.Streak++
	l.p.TotalDays++
	return l.p
}

// AdvanceDay counts an active day without touching the streak.
func (l *ProgressionLedger) AdvanceDay() domain.UserProgress {
	l.p.TotalDays++
	return l.p
}

// Snapshot returns the current progress.
func (l *ProgressionLedger) Snapshot() domain.UserProgress { return l.p }
