package roster

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// ParseLanguage maps a sign-up answer onto a track language.
// Any answer that names no track means the participant serves in every track.
func ParseLanguage(text string, tracks []models.Track) models.Language {
	text = strings.TrimSpace(text)
	for _, t := range tracks {
		if text == string(t.Language) {
			return t.Language
		}
	}
	return models.LanguageBoth
}

// ParseParticipant builds a participant from the text fields of roster row `row`
func ParseParticipant(row int, name, age, language string, tracks []models.Track) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, &ParseError{Row: row, Field: "name", Value: name, Err: errors.New("name is required")}
	}

	years, err := strconv.ParseFloat(strings.TrimSpace(age), 64)
	if err != nil {
		return models.Participant{}, &ParseError{Row: row, Field: "age", Value: age, Err: err}
	}
	if years < 0 {
		return models.Participant{}, &ParseError{Row: row, Field: "age", Value: age, Err: errors.New("age must not be negative")}
	}

	return models.Participant{
		Name:     name,
		Age:      years,
		Language: ParseLanguage(language, tracks),
	}, nil
}

// ValidateParticipant checks a participant that did not come from text, such as a JSON body,
// and maps its language onto the tracks the same way ParseLanguage does
func ValidateParticipant(row int, p models.Participant, tracks []models.Track) (models.Participant, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Participant{}, &ParseError{Row: row, Field: "name", Value: p.Name, Err: errors.New("name is required")}
	}
	if p.Age < 0 {
		return models.Participant{}, &ParseError{Row: row, Field: "age", Value: strconv.FormatFloat(p.Age, 'f', -1, 64), Err: errors.New("age must not be negative")}
	}
	p.Language = ParseLanguage(string(p.Language), tracks)
	return p, nil
}
