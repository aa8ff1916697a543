package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
)

// Column positions of a Google Forms export: timestamp, name, age, language
const (
	defaultNameCol     = 1
	defaultAgeCol      = 2
	defaultLanguageCol = 3
)

// columns locates the roster fields in a CSV header
type columns struct {
	name, age, language int
}

// headerColumns matches header cells by keyword and falls back to the
// Google Forms layout for any field it cannot find
func headerColumns(header []string) columns {
	cols := columns{name: -1, age: -1, language: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.name < 0 && strings.Contains(h, "name"):
			cols.name = i
		case cols.age < 0 && strings.Contains(h, "age") && !strings.Contains(h, "language"):
			cols.age = i
		case cols.language < 0 && (strings.Contains(h, "language") || strings.Contains(h, "liturgy")):
			cols.language = i
		}
	}
	if cols.name < 0 {
		cols.name = defaultNameCol
	}
	if cols.age < 0 {
		cols.age = defaultAgeCol
	}
	if cols.language < 0 {
		cols.language = defaultLanguageCol
	}
	return cols
}

// Read parses a roster CSV. The first record is the header. Row numbers in
// errors are the 1-based file line the record starts on.
func Read(r io.Reader, tracks []models.Track) ([]models.Participant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &roster.ParseError{Row: 1, Field: "header", Err: err}
	}
	cols := headerColumns(header)

	var participants []models.Participant
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &roster.ParseError{Row: pe.StartLine, Field: "record", Err: err}
			}
			return nil, &roster.ResourceError{Resource: "roster", Op: "read", Err: err}
		}
		if blank(record) {
			continue
		}

		row, _ := reader.FieldPos(0)
		p, err := roster.ParseParticipant(row,
			field(record, cols.name), field(record, cols.age), field(record, cols.language), tracks)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

// LoadFile opens and parses a roster CSV file. A file that cannot be opened is
// reported as unavailable rather than waited on.
func LoadFile(path string, tracks []models.Track) ([]models.Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &roster.ResourceError{Resource: path, Op: "open", Err: hint(err)}
	}
	defer f.Close()

	participants, err := Read(f, tracks)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return participants, nil
}

func hint(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w (check the path and that the file is exported as CSV)", err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w (the file may be open in another program; close it and retry)", err)
	}
	return err
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
