// Package activities implements the premium mini-activities: daily completion
// tracking, the brain-game reward rule and the e-book reader.
package activities

import (
	"sort"
	"time"
)

// ─── Daily Completion Tracker ───────────────────────────────────────────────

// Tracker records which activities were completed on the current day.
// It resets itself when the calendar day changes.
type Tracker struct {
	day       string
	completed map[string]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// Complete marks activity id as completed at now. It reports whether this is
// the first completion of id today.
func (t *Tracker) Complete(id string, now time.Time) bool {
	t.roll(now)
	if t.completed[id] {
		return false
	}
	t.completed[id] = true
	return true
}

// CompletedToday returns the sorted IDs completed on the day of now.
func (t *Tracker) CompletedToday(now time.Time) []string {
	t.roll(now)
	out := make([]string, 0, len(t.completed))
	for id := range t.completed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (t *Tracker) roll(now time.Time) {
	day := now.Format(time.DateOnly)
	if day != t.day {
		t.day = day
		t.completed = make(map[string]bool)
	}
}

// ─── Brain Games ────────────────────────────────────────────────────────────

// Game identifies a brain game.
type Game string

const (
	GameMemory  Game = "memory"
	GameMath    Game = "math"
	GamePattern Game = "pattern"
	GameWords   Game = "words"
)

// GameTimeLimit is how long a round lasts before it is failed.
const GameTimeLimit = 60 * time.Second

// PointsPerGameScore converts in-game score into progression points.
const PointsPerGameScore = 10

// GameReward returns the points earned for a finished round. Rounds that ran
// out of time earn nothing.
func GameReward(score int, success bool) int {
	if !success || score <= 0 {
		return 0
	}
	return score * PointsPerGameScore
}
