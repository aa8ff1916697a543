package scheduler

import (
	"bytes"
	"fmt"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/google/uuid"
)

// DefaultMaxDrawAttempts bounds the redraws of one slot when picks collide
const DefaultMaxDrawAttempts = 1000

// Rand is the random source used for draws. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithMaxDrawAttempts overrides DefaultMaxDrawAttempts
func WithMaxDrawAttempts(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.MaxDrawAttempts = n
		}
	}
}

// Scheduler builds a rotating duty roster over parallel language tracks.
// It is not safe for concurrent use.
type Scheduler struct {
	Tracks          []models.Track
	SlotCount       int
	MaxDrawAttempts int

	Cohorts map[string][]models.Participant
	Bands   map[string][]models.Band

	rng       Rand
	rotations map[string][]*rotation
}

// NewScheduler creates a new scheduler instance
func NewScheduler(tracks []models.Track, slotCount int, rng Rand, opts ...Option) *Scheduler {
	s := &Scheduler{
		Tracks:          append([]models.Track(nil), tracks...),
		SlotCount:       slotCount,
		MaxDrawAttempts: DefaultMaxDrawAttempts,
		rng:             rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare partitions the roster into cohorts and bands every cohort by age.
// It fails before any draw when a band would be empty.
func (s *Scheduler) Prepare(participants []models.Participant) error {
	if s.SlotCount <= 0 {
		return &roster.ConfigError{Slot: -1, Reason: fmt.Sprintf("slot count must be positive, got %d", s.SlotCount)}
	}
	if len(s.Tracks) == 0 {
		return &roster.ConfigError{Slot: -1, Reason: "at least one track is required"}
	}
	seen := make(map[string]bool, len(s.Tracks))
	for _, t := range s.Tracks {
		if t.ID == "" {
			return &roster.ConfigError{Slot: -1, Reason: "track ID is required"}
		}
		if seen[t.ID] {
			return &roster.ConfigError{Track: t.ID, Slot: -1, Reason: "duplicate track ID"}
		}
		seen[t.ID] = true
		if t.Language == "" || t.Language == models.LanguageBoth {
			return &roster.ConfigError{Track: t.ID, Slot: -1, Reason: fmt.Sprintf("track language %q does not name a language", t.Language)}
		}
	}

	s.Cohorts = roster.PartitionTracks(participants, s.Tracks)
	s.Bands = make(map[string][]models.Band, len(s.Tracks))
	for _, t := range s.Tracks {
		// Band builds one band per slot, so the slot count is bounded by the cohort first.
		if n := len(s.Cohorts[t.ID]); s.SlotCount > n {
			return &roster.ConfigError{
				Track:  t.ID,
				Slot:   n,
				Reason: fmt.Sprintf("band is empty; the cohort has fewer participants than the %d slots", s.SlotCount),
			}
		}
		bands, err := roster.Band(s.Cohorts[t.ID], s.SlotCount)
		if err != nil {
			return err
		}
		if err := roster.ValidateBands(t.ID, bands); err != nil {
			return err
		}
		s.Bands[t.ID] = bands
	}
	return nil
}

// RotationCount is the number of days needed for everyone in the largest band to serve once
func (s *Scheduler) RotationCount() int {
	days := 0
	for _, bands := range s.Bands {
		for _, b := range bands {
			if len(b.Members) > days {
				days = len(b.Members)
			}
		}
	}
	return days
}

// Summaries describes the prepared cohorts in track order
func (s *Scheduler) Summaries() []models.CohortSummary {
	out := make([]models.CohortSummary, 0, len(s.Tracks))
	for _, t := range s.Tracks {
		out = append(out, roster.Summarize(t.ID, len(s.Cohorts[t.ID]), s.Bands[t.ID]))
	}
	return out
}

// Generate prepares the roster and draws RotationCount days of assignments.
// No grid is returned when any step fails.
func (s *Scheduler) Generate(participants []models.Participant) (*models.ScheduleGrid, error) {
	if err := s.Prepare(participants); err != nil {
		return nil, err
	}

	s.rotations = make(map[string][]*rotation, len(s.Tracks))
	for _, t := range s.Tracks {
		rots := make([]*rotation, s.SlotCount)
		for j, b := range s.Bands[t.ID] {
			rots[j] = newRotation(len(b.Members))
		}
		s.rotations[t.ID] = rots
	}

	days := s.RotationCount()
	grid := &models.ScheduleGrid{
		SlotCount: s.SlotCount,
		Tracks:    append([]models.Track(nil), s.Tracks...),
		Days:      make([]models.Day, 0, days),
	}

	for d := 1; d <= days; d++ {
		day := models.Day{Index: d, Assignments: make(map[string][]string, len(s.Tracks))}
		for _, t := range s.Tracks {
			day.Assignments[t.ID] = make([]string, s.SlotCount)
		}

		booked := make(map[string]struct{})
		for j := 0; j < s.SlotCount; j++ {
			picks, err := s.drawSlot(d, j, booked)
			if err != nil {
				return nil, err
			}
			for k, t := range s.Tracks {
				day.Assignments[t.ID][j] = picks[k]
				booked[picks[k]] = struct{}{}
			}
		}
		grid.Days = append(grid.Days, day)
	}

	grid.RunID = runID(s.rng)
	return grid, nil
}

// runID draws the run's UUID from the scheduler's random source, so a seeded run
// reproduces its ID along with its days
func runID(rng Rand) string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	id, err := uuid.NewRandomFromReader(bytes.NewReader(b))
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// drawSlot picks one name per track for a slot. Tracks keep their picks unless
// they collide. A pick of a name booked earlier that day is redrawn by the same
// track. When two tracks pick the same name in this slot, the track that held it
// first gives it up and redraws. Redrawn draws stay consumed in their rotation,
// and the person behind each of them is serving that day either way.
func (s *Scheduler) drawSlot(day, slot int, booked map[string]struct{}) ([]string, error) {
	picks := make([]string, len(s.Tracks))
	holder := make(map[string]int, len(s.Tracks))
	pending := make([]int, 0, len(s.Tracks))
	for k := range s.Tracks {
		pending = append(pending, k)
	}

	retries := 0
	for len(pending) > 0 {
		k := pending[0]
		pending = pending[1:]
		t := s.Tracks[k]
		name := s.Bands[t.ID][slot].Members[s.rotations[t.ID][slot].draw(s.rng)].Name

		redraw := -1
		if _, ok := booked[name]; ok {
			redraw = k
		} else {
			if other, ok := holder[name]; ok {
				picks[other] = ""
				redraw = other
			}
			holder[name] = k
			picks[k] = name
		}

		if redraw >= 0 {
			retries++
			if retries > s.MaxDrawAttempts {
				return nil, &roster.UnsatisfiableError{Day: day, Slot: slot, Attempts: s.MaxDrawAttempts}
			}
			pending = append(pending, redraw)
		}
	}
	return picks, nil
}
