package roster

import "github.com/arnavshah/roster-api-go/pkg/models"

// Partition returns the cohort of participants eligible for a language, in roster order.
// Bilingual participants land in every cohort.
func Partition(participants []models.Participant, lang models.Language) []models.Participant {
	cohort := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Eligible(lang) {
			cohort = append(cohort, p)
		}
	}
	return cohort
}

// PartitionTracks builds one cohort per track, keyed by track ID
func PartitionTracks(participants []models.Participant, tracks []models.Track) map[string][]models.Participant {
	cohorts := make(map[string][]models.Participant, len(tracks))
	for _, t := range tracks {
		cohorts[t.ID] = Partition(participants, t.Language)
	}
	return cohorts
}
