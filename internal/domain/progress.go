package domain

import "time"

// ─── Progression Types ──────────────────────────────────────────────────────

// PointsPerLevel is the number of points between consecutive levels.
const PointsPerLevel = 100

// Point rewards for core actions.
const (
	PointsMoodRecorded    = 10
	PointsExerciseStarted = 20
)

// UserProgress is the point/streak/level accumulator state.
// Level is always derived from Points, never tracked on its own.
type UserProgress struct {
	Streak    int `json:"streak"`
	TotalDays int `json:"total_days"`
	Points    int `json:"points"`
	Level     int `json:"level"`
}

// LevelFor returns the level reached with the given point total.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// PointsToNextLevel returns how many points are missing to reach the next level.
func (p UserProgress) PointsToNextLevel() int {
	return p.Level*PointsPerLevel - p.Points
}

// LevelProgressPct returns progress through the current level (0-100).
func (p UserProgress) LevelProgressPct() float64 {
	return float64(p.Points%PointsPerLevel) * 100 / PointsPerLevel
}

// DemoProgress is the progress a demo session starts with.
func DemoProgress() UserProgress {
	return UserProgress{Streak: 7, TotalDays: 23, Points: 340, Level: LevelFor(340)}
}

// ─── Session View Types ─────────────────────────────────────────────────────

// View is the main screen mode of a session.
type View string

const (
	ViewOnboarding        View = "onboarding"
	ViewDashboard         View = "dashboard"
	ViewPremiumActivities View = "premium_activities"
)

// Overlays are modal panels that can be open independently of the view.
type Overlays struct {
	Paywall  bool `json:"paywall"`
	Chat     bool `json:"chat"`
	Settings bool `json:"settings"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationKind categorizes notifications.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a user-facing message queued by a session.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
