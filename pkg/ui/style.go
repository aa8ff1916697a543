package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold      = color.New(color.Bold).SprintFunc()
	Dim       = color.New(color.Faint).SprintFunc()
	Green     = color.New(color.FgGreen).SprintFunc()
	Red       = color.New(color.FgRed).SprintFunc()
	BoldCyan  = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldRed   = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldWhite = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// trackColors differentiates the track blocks of a table
var trackColors = []func(a ...interface{}) string{
	color.New(color.FgCyan).SprintFunc(),
	color.New(color.FgYellow).SprintFunc(),
	color.New(color.FgMagenta).SprintFunc(),
	color.New(color.FgGreen).SprintFunc(),
}

// PrintGrid writes the schedule as a table, one row per day and one block per track.
func PrintGrid(w io.Writer, grid *models.ScheduleGrid) {
	widths := make([]int, grid.SlotCount)
	for j := range widths {
		widths[j] = len(fmt.Sprintf("#%d", j+1))
	}
	for _, d := range grid.Days {
		for _, t := range grid.Tracks {
			for j, name := range d.Assignments[t.ID] {
				if len(name) > widths[j] {
					widths[j] = len(name)
				}
			}
		}
	}

	fmt.Fprintf(w, "%s %s\n\n", BoldCyan("Duty roster"),
		Dim(fmt.Sprintf("[%d slots, %d days, run %s]", grid.SlotCount, len(grid.Days), grid.RunID)))

	for k, t := range grid.Tracks {
		c := trackColors[k%len(trackColors)]
		fmt.Fprintf(w, "  %s\n", BoldWhite(t.Label))

		cells := []string{pad("Day", 4)}
		for j := range widths {
			cells = append(cells, pad(fmt.Sprintf("#%d", j+1), widths[j]))
		}
		fmt.Fprintf(w, "  %s\n", Dim(strings.Join(cells, "  ")))

		for _, d := range grid.Days {
			cells = []string{pad(fmt.Sprint(d.Index), 4)}
			for j, name := range d.Assignments[t.ID] {
				cells = append(cells, c(pad(name, widths[j])))
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  "))
		}
		fmt.Fprintln(w)
	}
}

// PrintSummaries writes cohort and band sizes, as reported by validation.
func PrintSummaries(w io.Writer, tracks []models.Track, sums []models.CohortSummary, days int) {
	labels := make(map[string]string, len(tracks))
	for _, t := range tracks {
		labels[t.ID] = t.Label
	}
	for _, s := range sums {
		fmt.Fprintf(w, "%s %s\n", BoldWhite(labels[s.TrackID]), Dim(fmt.Sprintf("(%d participants)", s.Size)))
		for _, b := range s.Bands {
			fmt.Fprintf(w, "  slot %d: %s %s\n", b.Slot+1, Bold(fmt.Sprintf("%d", b.Size)),
				Dim(fmt.Sprintf("ages %g-%g", b.MinAge, b.MaxAge)))
		}
	}
	fmt.Fprintf(w, "%s %d days\n", Green("✓"), days)
}

// PrintError writes a failed run's error in red.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", BoldRed("✗"), Red(err.Error()))
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
