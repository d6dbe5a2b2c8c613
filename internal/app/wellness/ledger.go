package wellness

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/calma-app/calma/internal/domain"
)

// DefaultHistorySize is how many mood entries a ledger keeps.
const DefaultHistorySize = 14

// chartDateLayout renders day/month the way the dashboard chart labels them.
const chartDateLayout = "02/01"

// MoodLedger is a bounded, chronological history of mood entries.
// When full, recording evicts the oldest entry. Not safe for concurrent
// use; Session serialises access.
type MoodLedger struct {
	entries  []domain.MoodEntry
	capacity int
	now      domain.Clock
}

// NewMoodLedger creates an empty ledger holding at most capacity entries.
func NewMoodLedger(capacity int, now domain.Clock) *MoodLedger {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	if now == nil {
		now = time.Now
	}
	return &MoodLedger{capacity: capacity, now: now}
}

// Record appends a new entry stamped with the current time.
func (l *MoodLedger) Record(mood domain.Mood, note string) domain.MoodEntry {
	e := domain.MoodEntry{
		ID:        uuid.New().String(),
		Mood:      mood,
		Timestamp: l.now(),
		Note:      note,
	}
	l.push(e)
	return e
}

func (l *MoodLedger) push(e domain.MoodEntry) {
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Seed fills the ledger with n synthetic entries, one per day ending today,
// each with a random mood. Seeded entries are evicted like any other.
func (l *MoodLedger) Seed(n int, rng *rand.Rand) {
	today := l.now()
	for i := n - 1; i >= 0; i-- {
		l.push(domain.MoodEntry{
			ID:        fmt.Sprintf("seed-%d", i),
			Mood:      domain.AllMoods[rng.IntN(len(domain.AllMoods))],
			Timestamp: today.AddDate(0, 0, -i),
		})
	}
}

// All iterates a snapshot of the entries from oldest to newest. The sequence
// can be ranged over more than once.
func (l *MoodLedger) All() iter.Seq[domain.MoodEntry] {
	snapshot := append([]domain.MoodEntry(nil), l.entries...)
	return func(yield func(domain.MoodEntry) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of stored entries.
func (l *MoodLedger) Len() int { return len(l.entries) }

// Latest returns the newest entry.
func (l *MoodLedger) Latest() (domain.MoodEntry, bool) {
	if len(l.entries) == 0 {
		return domain.MoodEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// ChartPoints projects the history onto day labels and 1–5 scores.
func (l *MoodLedger) ChartPoints() []domain.ChartPoint {
	out := make([]domain.ChartPoint, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, domain.ChartPoint{
			Date:  e.Timestamp.Format(chartDateLayout),
			Mood:  e.Mood,
			Score: e.Mood.Score(),
		})
	}
	return out
}
