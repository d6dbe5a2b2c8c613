// Package export writes a session's mood history as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"iter"

	"github.com/xuri/excelize/v2"

	"github.com/calma-app/calma/internal/domain"
)

// Sheet names of the exported workbook.
const (
	MoodSheet     = "Moods"
	ProgressSheet = "Progress"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var moodHeader = []any{"Date", "Time", "Mood", "Label", "Score", "Note"}

// MoodHistory writes entries and the progress summary to w as xlsx.
func MoodHistory(w io.Writer, entries iter.Seq[domain.MoodEntry], progress domain.UserProgress) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MoodSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(MoodSheet, "A1", &moodHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{
			e.Timestamp.Format("2006-01-02"),
			e.Timestamp.Format("15:04"),
			string(e.Mood),
			e.Mood.Style().Label,
			e.Mood.Score(),
			e.Note,
		}
		if err := f.SetSheetRow(MoodSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if _, err := f.NewSheet(ProgressSheet); err != nil {
		return fmt.Errorf("create progress sheet: %w", err)
	}
	summary := [][]any{
		{"Points", progress.Points},
		{"Level", progress.Level},
		{"Streak", progress.Streak},
		{"Total days", progress.TotalDays},
		{"Points to next level", progress.PointsToNextLevel()},
	}
	for i, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ProgressSheet, cell, &values); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
