package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
)

// TrackGap is the number of empty columns between two track blocks
const TrackGap = 2

// TrackColumn returns the first column of track k's block
func TrackColumn(k, slotCount int) int {
	return k * (slotCount + TrackGap)
}

// Rows lays the grid out as a sheet: a header row carrying each track label at
// the start of its block, then one row per day with S names per track block.
func Rows(grid *models.ScheduleGrid) [][]string {
	width := TrackColumn(len(grid.Tracks), grid.SlotCount) - TrackGap
	if width < 0 {
		width = 0
	}

	rows := make([][]string, 0, len(grid.Days)+1)
	header := make([]string, width)
	for k, t := range grid.Tracks {
		header[TrackColumn(k, grid.SlotCount)] = t.Label
	}
	rows = append(rows, header)

	for _, d := range grid.Days {
		row := make([]string, width)
		for k, t := range grid.Tracks {
			copy(row[TrackColumn(k, grid.SlotCount):], d.Assignments[t.ID])
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the sheet layout of the grid as CSV
func WriteCSV(w io.Writer, grid *models.ScheduleGrid) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Rows(grid)); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

// WriteFile writes the grid to a CSV file at path
func WriteFile(path string, grid *models.ScheduleGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return &roster.ResourceError{Resource: path, Op: "create", Err: err}
	}
	if err := WriteCSV(f, grid); err != nil {
		f.Close()
		return &roster.ResourceError{Resource: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &roster.ResourceError{Resource: path, Op: "close", Err: err}
	}
	return nil
}
