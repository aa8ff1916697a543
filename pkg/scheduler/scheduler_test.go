package scheduler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/google/uuid"
)

func testRoster() []models.Participant {
	var ps []models.Participant
	for i := 0; i < 9; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("fr%d", i), Age: float64(8 + 3*i), Language: models.LanguageFrench})
	}
	for i := 0; i < 7; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("en%d", i), Age: float64(9 + 4*i), Language: models.LanguageEnglish})
	}
	for i := 0; i < 4; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("bi%d", i), Age: float64(10 + 9*i), Language: models.LanguageBoth})
	}
	return ps
}

func TestGenerate(t *testing.T) {
	s := NewScheduler(models.DefaultTracks(), 3, rand.New(rand.NewSource(1)))
	grid, err := s.Generate(testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// French cohort 13 -> bands 5,4,4. English cohort 11 -> bands 5,3,3.
	if len(grid.Days) != 5 {
		t.Fatalf("Expected 5 days, got %d", len(grid.Days))
	}
	if grid.SlotCount != 3 || len(grid.Tracks) != 2 || grid.RunID == "" {
		t.Errorf("unexpected grid header: %+v", grid)
	}

	for _, day := range grid.Days {
		seen := make(map[string]bool)
		for _, tr := range grid.Tracks {
			row := day.Assignments[tr.ID]
			if len(row) != 3 {
				t.Fatalf("day %d track %s: expected 3 slots, got %d", day.Index, tr.ID, len(row))
			}
			for j, name := range row {
				if seen[name] {
					t.Errorf("day %d: %s booked twice", day.Index, name)
				}
				seen[name] = true

				found := false
				for _, m := range s.Bands[tr.ID][j].Members {
					if m.Name == name {
						found = true
					}
				}
				if !found {
					t.Errorf("day %d track %s slot %d: %s is not in the band", day.Index, tr.ID, j, name)
				}
			}
		}
	}
}

func TestGenerate_LargestBandServesOnce(t *testing.T) {
	var ps []models.Participant
	for i := 0; i < 5; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("p%d", i), Age: float64(i), Language: models.LanguageFrench})
	}
	tracks := []models.Track{{ID: "french", Label: "French", Language: models.LanguageFrench}}

	s := NewScheduler(tracks, 2, rand.New(rand.NewSource(7)))
	grid, err := s.Generate(ps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Days) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(grid.Days))
	}

	slot0 := make(map[string]bool)
	for _, d := range grid.Days {
		slot0[d.Assignments["french"][0]] = true
	}
	if len(slot0) != 3 {
		t.Errorf("Expected every member of the youngest band once, got %v", slot0)
	}

	firstCycle := map[string]bool{
		grid.Days[0].Assignments["french"][1]: true,
		grid.Days[1].Assignments["french"][1]: true,
	}
	if len(firstCycle) != 2 {
		t.Errorf("Expected no repeat within the first cycle of slot 1, got %v", firstCycle)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	run := func() *models.ScheduleGrid {
		s := NewScheduler(models.DefaultTracks(), 3, rand.New(rand.NewSource(42)))
		grid, err := s.Generate(testRoster())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return grid
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Expected identical grids for the same seed")
	}
	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Errorf("Expected a UUID run ID, got %q: %v", a.RunID, err)
	}
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	small := []models.Participant{
		{Name: "a", Age: 10, Language: models.LanguageFrench},
		{Name: "b", Age: 11, Language: models.LanguageFrench},
		{Name: "c", Age: 11, Language: models.LanguageEnglish},
		{Name: "d", Age: 12, Language: models.LanguageEnglish},
		{Name: "e", Age: 13, Language: models.LanguageEnglish},
	}

	tests := []struct {
		name   string
		tracks []models.Track
		slots  int
	}{
		{"zero slots", models.DefaultTracks(), 0},
		{"negative slots", models.DefaultTracks(), -1},
		{"cohort smaller than slots", models.DefaultTracks(), 3},
		{"no tracks", nil, 1},
		{"duplicate tracks", []models.Track{{ID: "x", Language: models.LanguageFrench}, {ID: "x", Language: models.LanguageEnglish}}, 1},
		{"track without language", []models.Track{{ID: "x"}}, 1},
		{"track for both languages", []models.Track{{ID: "x", Language: models.LanguageBoth}}, 1},
		{"huge slot count", models.DefaultTracks(), math.MaxInt32},
	}
	for _, tc := range tests {
		s := NewScheduler(tc.tracks, tc.slots, rand.New(rand.NewSource(1)))
		grid, err := s.Generate(small)
		if !errors.Is(err, roster.ErrInvalidConfiguration) {
			t.Errorf("%s: expected ErrInvalidConfiguration, got %v", tc.name, err)
		}
		if grid != nil {
			t.Errorf("%s: expected no grid", tc.name)
		}
	}
}

func TestGenerate_Unsatisfiable(t *testing.T) {
	ps := []models.Participant{{Name: "only", Age: 20, Language: models.LanguageBoth}}

	s := NewScheduler(models.DefaultTracks(), 1, rand.New(rand.NewSource(1)), WithMaxDrawAttempts(25))
	grid, err := s.Generate(ps)
	if !errors.Is(err, roster.ErrScheduleUnsatisfiable) {
		t.Fatalf("Expected ErrScheduleUnsatisfiable, got %v", err)
	}
	var ue *roster.UnsatisfiableError
	if !errors.As(err, &ue) || ue.Slot != 0 || ue.Day != 1 || ue.Attempts != 25 {
		t.Errorf("unexpected error details: %#v", err)
	}
	if grid != nil {
		t.Errorf("Expected no partial grid")
	}
}

func TestGenerate_ResolvesBilingualConflict(t *testing.T) {
	// Slot 0 of both tracks holds the same bilingual participant; the French
	// band has an alternative, so a retry always finds a valid pair.
	ps := []models.Participant{
		{Name: "bi", Age: 10, Language: models.LanguageBoth},
		{Name: "fr", Age: 11, Language: models.LanguageFrench},
	}
	for seed := int64(0); seed < 20; seed++ {
		s := NewScheduler(models.DefaultTracks(), 1, rand.New(rand.NewSource(seed)))
		grid, err := s.Generate(ps)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		for _, d := range grid.Days {
			if d.Assignments["french"][0] == d.Assignments["english"][0] {
				t.Errorf("seed %d day %d: same person on both tracks", seed, d.Index)
			}
		}
	}
}

func TestPrepare_SlotsBeyondCohort(t *testing.T) {
	s := NewScheduler(models.DefaultTracks(), math.MaxInt32, rand.New(rand.NewSource(1)))
	err := s.Prepare(testRoster())

	var cfgErr *roster.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected a ConfigError, got %v", err)
	}
	if cfgErr.Track != "french" || cfgErr.Slot != 13 {
		t.Errorf("Expected track french slot 13, got %#v", cfgErr)
	}
}

func TestGenerate_EveryoneServes(t *testing.T) {
	// The bilingual participant is the youngest French member and the oldest
	// English one, so they sit in French slot 0 and English slot 1 and collide
	// across slots on the days both rotations pick them.
	ps := []models.Participant{{Name: "bi", Age: 10, Language: models.LanguageBoth}}
	for i := 0; i < 9; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("fr%d", i), Age: float64(11 + i), Language: models.LanguageFrench})
	}
	for i := 0; i < 4; i++ {
		ps = append(ps, models.Participant{Name: fmt.Sprintf("en%d", i), Age: float64(i), Language: models.LanguageEnglish})
	}

	for seed := int64(0); seed < 200; seed++ {
		s := NewScheduler(models.DefaultTracks(), 2, rand.New(rand.NewSource(seed)))
		grid, err := s.Generate(ps)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(grid.Days) != 5 {
			t.Fatalf("seed %d: expected 5 days, got %d", seed, len(grid.Days))
		}

		served := make(map[string]bool)
		for _, d := range grid.Days {
			for _, row := range d.Assignments {
				for _, name := range row {
					served[name] = true
				}
			}
		}
		for _, p := range ps {
			if !served[p.Name] {
				t.Errorf("seed %d: %s never served", seed, p.Name)
			}
		}
	}
}

func TestPrepare_Summaries(t *testing.T) {
	s := NewScheduler(models.DefaultTracks(), 3, rand.New(rand.NewSource(1)))
	if err := s.Prepare(testRoster()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.RotationCount() != 5 {
		t.Errorf("Expected rotation count 5, got %d", s.RotationCount())
	}

	sums := s.Summaries()
	if len(sums) != 2 || sums[0].TrackID != "french" || sums[0].Size != 13 || sums[1].Size != 11 {
		t.Fatalf("unexpected summaries: %+v", sums)
	}
	if sums[0].Bands[0].Size != 5 || sums[0].Bands[1].Size != 4 {
		t.Errorf("unexpected French band sizes: %+v", sums[0].Bands)
	}
}

func TestRotation_CycleUniqueness(t *testing.T) {
	r := newRotation(6)
	rng := rand.New(rand.NewSource(3))
	for cycle := 0; cycle < 4; cycle++ {
		seen := make(map[int]bool)
		for i := 0; i < 6; i++ {
			idx := r.draw(rng)
			if idx < 0 || idx >= 6 {
				t.Fatalf("index %d out of range", idx)
			}
			if seen[idx] {
				t.Errorf("cycle %d: index %d drawn twice", cycle, idx)
			}
			seen[idx] = true
		}
	}
}

func TestWithMaxDrawAttempts_IgnoresNonPositive(t *testing.T) {
	s := NewScheduler(models.DefaultTracks(), 1, rand.New(rand.NewSource(1)), WithMaxDrawAttempts(0))
	if s.MaxDrawAttempts != DefaultMaxDrawAttempts {
		t.Errorf("Expected default attempts, got %d", s.MaxDrawAttempts)
	}
}
