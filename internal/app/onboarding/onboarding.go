// Package onboarding implements the first-run quiz and the signup profile.
package onboarding

import (
	"fmt"
	"strings"

	"github.com/calma-app/calma/internal/domain"
)

// Option is one answer of a quiz question.
type Option struct {
	Text   string `json:"text"`
	Emoji  string `json:"emoji"`
	Points int    `json:"points"`
}

// Question is one quiz step.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Questions is the fixed onboarding questionnaire.
var Questions = []Question{
	{
		ID:       1,
		Question: "How do you feel most of the time?",
		Options: []Option{
			{Text: "Energized and motivated", Emoji: "⚡", Points: 10},
			{Text: "Balanced and calm", Emoji: "😌", Points: 8},
			{Text: "Tired and stressed", Emoji: "😓", Points: 6},
			{Text: "Anxious and worried", Emoji: "😰", Points: 4},
		},
	},
	{
		ID:       2,
		Question: "What is your biggest challenge right now?",
		Options: []Option{
			{Text: "Managing stress", Emoji: "🎯", Points: 10},
			{Text: "Sleeping better", Emoji: "😴", Points: 8},
			{Text: "Controlling anxiety", Emoji: "🧘", Points: 6},
			{Text: "Improving focus", Emoji: "🎓", Points: 4},
		},
	},
	{
		ID:       3,
		Question: "How much time do you spend on self-care each day?",
		Options: []Option{
			{Text: "More than 30 minutes", Emoji: "⏰", Points: 10},
			{Text: "15-30 minutes", Emoji: "⏱️", Points: 8},
			{Text: "5-15 minutes", Emoji: "⏲️", Points: 6},
			{Text: "Almost nothing", Emoji: "😔", Points: 4},
		},
	},
}

// MaxScore is the best possible quiz score.
func MaxScore() int {
	total := 0
	for _, q := range Questions {
		best := 0
		for _, o := range q.Options {
			if o.Points > best {
				best = o.Points
			}
		}
		total += best
	}
	return total
}

// ─── Quiz ───────────────────────────────────────────────────────────────────

// Quiz walks through Questions accumulating a score.
type Quiz struct {
	step    int
	score   int
	answers []int
}

// NewQuiz starts a quiz at the first question.
func NewQuiz() *Quiz {
	return &Quiz{}
}

// Current returns the question awaiting an answer, or nil when done.
func (q *Quiz) Current() *Question {
	if q.Done() {
		return nil
	}
	return &Questions[q.step]
}

// Answer records option index i for the current question.
func (q *Quiz) Answer(i int) error {
	if q.Done() {
		return domain.ErrQuizFinished
	}
	opts := Questions[q.step].Options
	if i < 0 || i >= len(opts) {
		return fmt.Errorf("%w: option %d of %d", domain.ErrInvalidAnswer, i, len(opts))
	}
	q.score += opts[i].Points
	q.answers = append(q.answers, opts[i].Points)
	q.step++
	return nil
}

// Done reports whether every question has been answered.
func (q *Quiz) Done() bool { return q.step >= len(Questions) }

// Score returns the accumulated points.
func (q *Quiz) Score() int { return q.score }

// Answers returns the points of each answer given so far.
func (q *Quiz) Answers() []int { return append([]int(nil), q.answers...) }

// Step returns the zero-based index of the current question.
func (q *Quiz) Step() int { return q.step }

// Verdict labels a quiz score for the demo screen.
func Verdict(score int) string {
	pct := score * 100 / MaxScore()
	switch {
	case pct >= 80:
		return "Excellent"
	case pct >= 60:
		return "Very good"
	default:
		return "Needs attention"
	}
}

// ─── Signup ─────────────────────────────────────────────────────────────────

// Profile is what the user submits at the end of onboarding.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       string `json:"age"`
	MainGoal  string `json:"main_goal"`
	QuizScore int    `json:"quiz_score"`
}

// Validate requires every signup field to be filled.
func (p Profile) Validate() error {
	fields := map[string]string{
		"name":      p.Name,
		"email":     p.Email,
		"age":       p.Age,
		"main_goal": p.MainGoal,
	}
	for _, name := range []string{"name", "email", "age", "main_goal"} {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrIncompleteSignup, name)
		}
	}
	return nil
}
