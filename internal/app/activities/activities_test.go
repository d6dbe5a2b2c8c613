package activities

import (
	"testing"
	"time"
)

func TestTracker_CompleteOncePerDay(t *testing.T) {
	tr := NewTracker()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if !tr.Complete("yoga", day) {
		t.Error("first completion should report true")
	}
	if tr.Complete("yoga", day.Add(2*time.Hour)) {
		t.Error("second completion on the same day should report false")
	}
	tr.Complete("music", day)

	got := tr.CompletedToday(day)
	if len(got) != 2 || got[0] != "music" || got[1] != "yoga" {
		t.Errorf("CompletedToday() = %v, want [music yoga]", got)
	}
}

func TestTracker_ResetsOnNewDay(t *testing.T) {
	tr := NewTracker()
	day := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	tr.Complete("yoga", day)

	next := day.Add(2 * time.Hour)
	if got := tr.CompletedToday(next); len(got) != 0 {
		t.Errorf("CompletedToday(next day) = %v, want empty", got)
	}
	if !tr.Complete("yoga", next) {
		t.Error("completion on a new day should report true")
	}
}

func TestGameReward(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		success bool
		want    int
	}{
		{"won", 5, true, 50},
		{"timed out", 5, false, 0},
		{"zero score", 0, true, 0},
		{"negative score", -3, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GameReward(tt.score, tt.success); got != tt.want {
				t.Errorf("GameReward(%d, %v) = %d, want %d", tt.score, tt.success, got, tt.want)
			}
		})
	}
}

func TestEbookReader_ReadThrough(t *testing.T) {
	r := NewEbookReader()
	for i := 0; i < len(Chapters)-1; i++ {
		if got := r.Next(); got != ChapterPoints {
			t.Fatalf("chapter %d paid %d, want %d", i+1, got, ChapterPoints)
		}
	}
	if r.Current().Number != len(Chapters) {
		t.Fatalf("Current() = chapter %d, want last", r.Current().Number)
	}
	if got := r.Next(); got != FinalChapterPoints {
		t.Errorf("final chapter paid %d, want %d", got, FinalChapterPoints)
	}
	if !r.Finished() {
		t.Error("reader should be finished")
	}
	if got := r.Next(); got != 0 {
		t.Errorf("re-completing final chapter paid %d, want 0", got)
	}
	if r.ProgressPct() != 100 {
		t.Errorf("ProgressPct() = %f, want 100", r.ProgressPct())
	}
}

func TestEbookReader_RereadPaysNothing(t *testing.T) {
	r := NewEbookReader()
	r.Next()
	r.Previous()
	if r.Current().Number != 1 {
		t.Fatalf("Current() = %d, want 1", r.Current().Number)
	}
	if got := r.Next(); got != 0 {
		t.Errorf("re-reading chapter 1 paid %d, want 0", got)
	}
	r.Previous()
	r.Previous()
	if r.Current().Number != 1 {
		t.Errorf("Previous() moved before the first chapter")
	}
}
