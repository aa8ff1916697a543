package roster

import (
	"fmt"
	"sort"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Band sorts a cohort by age and cuts it into `slots` contiguous bands.
//
// Every band gets len(cohort)/slots members, and the remainder goes to band 0 so the
// youngest band is the largest when the cohort does not divide evenly. Equal ages keep
// roster order. A cohort smaller than `slots` yields empty bands; callers that rotate
// over the bands must reject them with ValidateBands.
func Band(cohort []models.Participant, slots int) ([]models.Band, error) {
	if slots <= 0 {
		return nil, &ConfigError{Slot: -1, Reason: fmt.Sprintf("slot count must be positive, got %d", slots)}
	}

	sorted := make([]models.Participant, len(cohort))
	copy(sorted, cohort)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Age < sorted[j].Age
	})

	base := len(sorted) / slots
	bands := make([]models.Band, 0, slots)
	start := 0
	for i := 0; i < slots; i++ {
		size := base
		if i == 0 {
			size += len(sorted) % slots
		}
		bands = append(bands, models.Band{Slot: i, Members: sorted[start : start+size : start+size]})
		start += size
	}
	return bands, nil
}

// ValidateBands rejects a track's banding when any slot has nobody to draw from
func ValidateBands(trackID string, bands []models.Band) error {
	for _, b := range bands {
		if len(b.Members) == 0 {
			return &ConfigError{
				Track:  trackID,
				Slot:   b.Slot,
				Reason: fmt.Sprintf("band is empty; the cohort has fewer participants than the %d slots", len(bands)),
			}
		}
	}
	return nil
}

// Summarize describes a track's bands for validation reports
func Summarize(trackID string, cohortSize int, bands []models.Band) models.CohortSummary {
	summary := models.CohortSummary{TrackID: trackID, Size: cohortSize}
	for _, b := range bands {
		bs := models.BandSummary{Slot: b.Slot, Size: len(b.Members)}
		if len(b.Members) > 0 {
			bs.MinAge = b.Members[0].Age
			bs.MaxAge = b.Members[len(b.Members)-1].Age
		}
		summary.Bands = append(summary.Bands, bs)
	}
	return summary
}
