package wellness

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/catalog"
)

// ─── Recommend ──────────────────────────────────────────────────────────────

func ids(exs []domain.Exercise) []string {
	out := make([]string, 0, len(exs))
	for _, ex := range exs {
		out = append(out, ex.ID)
	}
	return out
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		mood    domain.Mood
		premium bool
		want    []string
	}{
		{domain.MoodBad, false, []string{"1", "3", "8"}},
		{domain.MoodBad, true, []string{"1", "3", "4"}},
		{domain.MoodExcellent, false, []string{"2"}},
		{domain.MoodExcellent, true, []string{"2", "6"}},
		{domain.MoodTerrible, false, []string{"1", "8"}},
	}
	for _, tt := range tests {
		got := ids(Recommend(catalog.Exercises, tt.mood, tt.premium))
		if !slices.Equal(got, tt.want) {
			t.Errorf("Recommend(%s, %v) = %v, want %v", tt.mood, tt.premium, got, tt.want)
		}
	}
}

func TestRecommend_Properties(t *testing.T) {
	for _, mood := range domain.AllMoods {
		for _, premium := range []bool{false, true} {
			got := Recommend(catalog.Exercises, mood, premium)
			if len(got) > MaxRecommendations {
				t.Errorf("Recommend(%s, %v) returned %d items", mood, premium, len(got))
			}
			for _, ex := range got {
				if !ex.Targets(mood) {
					t.Errorf("%s recommended for %s but does not target it", ex.ID, mood)
				}
				if ex.Premium && !premium {
					t.Errorf("premium %s recommended to a free user", ex.ID)
				}
			}
			again := Recommend(catalog.Exercises, mood, premium)
			if !slices.Equal(ids(got), ids(again)) {
				t.Errorf("Recommend(%s, %v) is not idempotent", mood, premium)
			}
		}
	}
}

func TestRecommend_EmptyIsNotNil(t *testing.T) {
	got := Recommend(nil, domain.MoodGood, false)
	if got == nil || len(got) != 0 {
		t.Errorf("Recommend(empty catalog) = %#v, want empty non-nil", got)
	}
}

// ─── Mood Ledger ────────────────────────────────────────────────────────────

func steppingClock(start time.Time) domain.Clock {
	now := start
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func TestMoodLedger_EvictsOldest(t *testing.T) {
	l := NewMoodLedger(14, steppingClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	first := l.Record(domain.MoodGood, "first")
	for i := 0; i < 14; i++ {
		l.Record(domain.MoodNeutral, "")
	}

	if l.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", l.Len())
	}
	var prev time.Time
	for e := range l.All() {
		if e.ID == first.ID {
			t.Error("oldest entry should have been evicted")
		}
		if e.Timestamp.Before(prev) {
			t.Error("entries are not in chronological order")
		}
		prev = e.Timestamp
	}
}

func TestMoodLedger_AllIsRestartableSnapshot(t *testing.T) {
	l := NewMoodLedger(14, nil)
	l.Record(domain.MoodBad, "")
	l.Record(domain.MoodGood, "")

	seq := l.All()
	l.Record(domain.MoodExcellent, "")

	for pass := 0; pass < 2; pass++ {
		var got []domain.Mood
		for e := range seq {
			got = append(got, e.Mood)
		}
		want := []domain.Mood{domain.MoodBad, domain.MoodGood}
		if !slices.Equal(got, want) {
			t.Errorf("pass %d: got %v, want %v", pass, got, want)
		}
	}

	latest, ok := l.Latest()
	if !ok || latest.Mood != domain.MoodExcellent {
		t.Errorf("Latest() = %v, %v; want excellent", latest.Mood, ok)
	}
}

func TestMoodLedger_SeedAndChart(t *testing.T) {
	today := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l := NewMoodLedger(14, func() time.Time { return today })
	l.Seed(14, rand.New(rand.NewPCG(1, 2)))

	if l.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", l.Len())
	}
	entries := slices.Collect(l.All())
	if entries[0].ID != "seed-13" || entries[13].ID != "seed-0" {
		t.Errorf("seed ids = %q..%q, want seed-13..seed-0", entries[0].ID, entries[13].ID)
	}

	points := l.ChartPoints()
	if points[13].Date != "14/03" || points[0].Date != "01/03" {
		t.Errorf("chart dates = %q..%q, want 01/03..14/03", points[0].Date, points[13].Date)
	}
	for _, p := range points {
		if p.Score < 1 || p.Score > 5 {
			t.Errorf("score %d out of range", p.Score)
		}
	}
}

// ─── Progression ────────────────────────────────────────────────────────────

func TestProgression_AwardRecomputesLevel(t *testing.T) {
	l := NewProgressionLedger(domain.UserProgress{})
	l.Award(10)
	p, err := l.Award(95)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if p.Points != 105 || p.Level != 2 {
		t.Errorf("progress = %+v, want 105 points level 2", p)
	}
}

func TestProgression_NegativeRejected(t *testing.T) {
	l := NewProgressionLedger(domain.UserProgress{Points: 50})
	before := l.Snapshot()
	if _, err := l.Award(-5); !errors.Is(err, domain.ErrNegativePoints) {
		t.Fatalf("Award(-5) = %v, want ErrNegativePoints", err)
	}
	if l.Snapshot() != before {
		t.Errorf("state changed after rejected award: %+v", l.Snapshot())
	}
	if p, _ := l.Award(0); p != before {
		t.Errorf("Award(0) changed state: %+v", p)
	}
}

func TestProgression_StreakAndDays(t *testing.T) {
	l := NewProgressionLedger(domain.UserProgress{Streak: 2, TotalDays: 5, Points: 340, Level: 1})
	if l.Snapshot().Level != 4 {
		t.Errorf("initial level not normalised: %d", l.Snapshot().Level)
	}
	p := l.AdvanceStreak()
	if p.Streak != 3 || p.TotalDays != 6 {
		t.Errorf("AdvanceStreak() = %+v", p)
	}
	p = l.AdvanceDay()
	if p.Streak != 3 || p.TotalDays != 7 {
		t.Errorf("AdvanceDay() = %+v", p)
	}
}

// ─── Entitlement Gate ───────────────────────────────────────────────────────

func TestEntitlementGate(t *testing.T) {
	var g EntitlementGate
	premium := *catalog.Lookup("4")
	free := *catalog.Lookup("1")

	if !g.IsLocked(premium) || g.IsLocked(free) {
		t.Fatal("before grant only premium exercises should be locked")
	}
	if !g.Grant(domain.PlanAnnual) {
		t.Error("first Grant should report true")
	}
	if g.Grant(domain.PlanMonthly) {
		t.Error("second Grant should report false")
	}
	if g.IsLocked(premium) || !g.IsPremium() || g.Plan() != domain.PlanAnnual {
		t.Errorf("after grant: locked=%v premium=%v plan=%s", g.IsLocked(premium), g.IsPremium(), g.Plan())
	}
}
