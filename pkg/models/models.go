package models

// Language is a participant's liturgy language preference
type Language string

const (
	LanguageFrench  Language = "French"
	LanguageEnglish Language = "English"
	// LanguageBoth makes a participant eligible for every track
	LanguageBoth Language = "Both"
)

// Participant represents one person on the roster
type Participant struct {
	Name     string   `json:"name"`
	Age      float64  `json:"age"`
	Language Language `json:"language"`
}

// Eligible reports whether the participant may serve on a track of the given language
func (p Participant) Eligible(lang Language) bool {
	return p.Language == lang || p.Language == LanguageBoth
}

// Track is one language track scheduled in parallel with the others
type Track struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Language Language `json:"language" yaml:"language"`
}

// DefaultTracks are the French and English liturgies
func DefaultTracks() []Track {
	return []Track{
		{ID: "french", Label: "French Liturgy", Language: LanguageFrench},
		{ID: "english", Label: "English Liturgy", Language: LanguageEnglish},
	}
}

// Band is the age slice of a cohort serving one duty slot
type Band struct {
	Slot    int           `json:"slot"`
	Members []Participant `json:"members"`
}

// Day holds the names assigned on one scheduled day, per track and slot
type Day struct {
	Index       int                 `json:"day"`
	Assignments map[string][]string `json:"assignments"` // track ID -> name per slot
}

// ScheduleGrid is the generated roster
type ScheduleGrid struct {
	RunID     string  `json:"run_id"`
	SlotCount int     `json:"slot_count"`
	Seed      int64   `json:"seed"`
	Tracks    []Track `json:"tracks"`
	Days      []Day   `json:"days"`
}

// ScheduleInput is the data structure for the roster endpoint
type ScheduleInput struct {
	Participants []Participant `json:"participants"`
	SlotCount    int           `json:"slot_count"`
	Seed         *int64        `json:"seed,omitempty"`
	Tracks       []Track       `json:"tracks,omitempty"`
}

// BandSummary describes one band without listing its members
type BandSummary struct {
	Slot   int     `json:"slot"`
	Size   int     `json:"size"`
	MinAge float64 `json:"min_age"`
	MaxAge float64 `json:"max_age"`
}

// CohortSummary describes the banding of one track
type CohortSummary struct {
	TrackID string        `json:"track_id"`
	Size    int           `json:"size"`
	Bands   []BandSummary `json:"bands"`
}
