package export

import (
	"bytes"
	"slices"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/calma-app/calma/internal/domain"
)

func TestMoodHistory(t *testing.T) {
	at := time.Date(2026, 7, 3, 21, 15, 0, 0, time.UTC)
	entries := []domain.MoodEntry{
		{ID: "a", Mood: domain.MoodBad, Timestamp: at.AddDate(0, 0, -1), Note: "tired"},
		{ID: "b", Mood: domain.MoodExcellent, Timestamp: at},
	}
	progress := domain.UserProgress{Streak: 2, TotalDays: 2, Points: 120, Level: 2}

	var buf bytes.Buffer
	if err := MoodHistory(&buf, slices.Values(entries), progress); err != nil {
		t.Fatalf("MoodHistory() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(MoodSheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", MoodSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Date" || rows[1][2] != "bad" || rows[1][5] != "tired" {
		t.Errorf("unexpected rows: %v", rows)
	}
	if rows[2][0] != "2026-07-03" || rows[2][1] != "21:15" || rows[2][4] != "5" {
		t.Errorf("row 2 = %v", rows[2])
	}

	points, err := f.GetCellValue(ProgressSheet, "B1")
	if err != nil || points != "120" {
		t.Errorf("Progress!B1 = %q, %v; want 120", points, err)
	}
}

func TestMoodHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := MoodHistory(&buf, slices.Values([]domain.MoodEntry(nil)), domain.UserProgress{Level: 1}); err != nil {
		t.Fatalf("MoodHistory(empty) error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty history should still produce a workbook")
	}
}
