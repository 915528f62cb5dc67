package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/wortstreak/pkg/models"
)

// Sheet names of the exported workbook
const (
	CompletionsSheet = "Completions"
	SummarySheet     = "Summary"
)

var completionHeader = []string{"Date", "Word ID", "Correct", "Completed At"}

// ExportConfig defines the export configuration
type ExportConfig struct {
	FilePath string         // .xlsx or .csv
	Location *time.Location // Zone for the "Completed At" column, defaults to local
}

// History is the data written by Export
type History struct {
	Stats       models.GamificationStats
	Completions []models.QuizCompletion
}

// ExportResult holds the result of an export operation
type ExportResult struct {
	FilePath string
	Rows     int
}

// Export writes the completion history to an Excel workbook or, for a .csv
// path, to a plain CSV file with the completions only.
func Export(config ExportConfig, history History) (*ExportResult, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("export path is required")
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	if dir := filepath.Dir(config.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return exportToCSV(config, history)
	}
	return exportToExcel(config, history)
}

func completionRow(c models.QuizCompletion, loc *time.Location) []string {
	return []string{
		c.Date,
		strconv.FormatInt(c.WordID, 10),
		strconv.FormatBool(c.WasCorrect),
		time.UnixMilli(c.Timestamp).In(loc).Format(time.RFC3339),
	}
}

// exportToExcel writes the completions sheet and a summary sheet
func exportToExcel(config ExportConfig, history History) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CompletionsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := [][]string{completionHeader}
	for _, c := range history.Completions {
		rows = append(rows, completionRow(c, config.Location))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(CompletionsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummary(f, history.Stats); err != nil {
		return nil, err
	}

	if err := f.SaveAs(config.FilePath); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}

	return &ExportResult{FilePath: config.FilePath, Rows: len(history.Completions)}, nil
}

func writeSummary(f *excelize.File, stats models.GamificationStats) error {
	last := stats.Streak.LastDate()
	if last == "" {
		last = "-"
	}
	summary := [][2]interface{}{
		{"Current streak", stats.Streak.CurrentStreak},
		{"Longest streak", stats.Streak.LongestStreak},
		{"Last completion", last},
		{"Quizzes (30 days)", stats.TotalQuizzesCompleted},
		{"Correct answers (30 days)", stats.TotalCorrectAnswers},
		{"Quizzes today", stats.TodayStatus.QuizCount},
	}
	for i, row := range summary {
		values := []interface{}{row[0], row[1]}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// exportToCSV writes only the completions
func exportToCSV(config ExportConfig, history History) (*ExportResult, error) {
	file, err := os.Create(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(completionHeader); err != nil {
		return nil, err
	}
	for _, c := range history.Completions {
		if err := writer.Write(completionRow(c, config.Location)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &ExportResult{FilePath: config.FilePath, Rows: len(history.Completions)}, nil
}
