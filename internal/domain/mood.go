// Package domain contains pure business types with ZERO infrastructure imports.
// It imports nothing outside the standard library.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ─── Mood Types ─────────────────────────────────────────────────────────────

// Mood is one of five ordered severity levels.
type Mood string

const (
	MoodTerrible  Mood = "terrible"
	MoodBad       Mood = "bad"
	MoodNeutral   Mood = "neutral"
	MoodGood      Mood = "good"
	MoodExcellent Mood = "excellent"
)

// AllMoods lists every mood from lowest to highest.
var AllMoods = []Mood{MoodTerrible, MoodBad, MoodNeutral, MoodGood, MoodExcellent}

// moodAliases maps accepted spellings (including the pt-BR labels shown in
// the app) onto the canonical mood.
var moodAliases = map[string]Mood{
	"terrible":  MoodTerrible,
	"pessimo":   MoodTerrible,
	"péssimo":   MoodTerrible,
	"bad":       MoodBad,
	"ruim":      MoodBad,
	"neutral":   MoodNeutral,
	"neutro":    MoodNeutral,
	"good":      MoodGood,
	"bom":       MoodGood,
	"excellent": MoodExcellent,
	"excelente": MoodExcellent,
}

// ParseMood resolves a mood name. Matching is case-insensitive.
func ParseMood(s string) (Mood, error) {
	m, ok := moodAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

// Valid reports whether m is one of the five moods.
func (m Mood) Valid() bool {
	return m.Score() > 0
}

// Score returns the 1–5 ordinal used for charting, or 0 for an unknown mood.
func (m Mood) Score() int {
	switch m {
	case MoodTerrible:
		return 1
	case MoodBad:
		return 2
	case MoodNeutral:
		return 3
	case MoodGood:
		return 4
	case MoodExcellent:
		return 5
	default:
		return 0
	}
}

// MoodStyle is the display metadata for a mood.
type MoodStyle struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

var moodStyles = map[Mood]MoodStyle{
	MoodExcellent: {Emoji: "😄", Label: "Excellent"},
	MoodGood:      {Emoji: "😊", Label: "Good"},
	MoodNeutral:   {Emoji: "😐", Label: "Neutral"},
	MoodBad:       {Emoji: "😔", Label: "Bad"},
	MoodTerrible:  {Emoji: "😢", Label: "Terrible"},
}

// Style returns the emoji and label for m.
func (m Mood) Style() MoodStyle {
	return moodStyles[m]
}

// motivationalMessages holds three encouragement lines per mood.
var motivationalMessages = map[Mood][]string{
	MoodExcellent: {
		"What an amazing day! Keep it up! 🌟",
		"Your energy is contagious! ✨",
		"You are shining today! 💫",
	},
	MoodGood: {
		"Great work! Keep the pace! 👏",
		"You are on the right track! 🎯",
		"Every day is a victory! 🏆",
	},
	MoodNeutral: {
		"It's okay to have days like this. We're in it together! 🤝",
		"Small steps count too! 👣",
		"Take a deep breath, you can do it! 💙",
	},
	MoodBad: {
		"I'm here with you. Let's get better! 💚",
		"Hard days pass. You are strong! 💪",
		"An exercise might help. Want to try one? 🌱",
	},
	MoodTerrible: {
		"You are not alone. We're together! 🫂",
		"Be gentle with yourself today. 💜",
		"How about starting with something small? 🌸",
	},
}

// MotivationalMessages returns the encouragement lines for m.
func (m Mood) MotivationalMessages() []string {
	return motivationalMessages[m]
}

// MoodEntry is one recorded mood. Immutable once created.
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      Mood      `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// ChartPoint is a mood entry projected for charting.
type ChartPoint struct {
	Date  string `json:"date"`
	Mood  Mood   `json:"mood"`
	Score int    `json:"score"`
}
