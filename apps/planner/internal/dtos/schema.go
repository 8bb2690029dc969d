package dtos

import (
	"fmt"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/validate"

	"dzisiaj.app/apps/planner/internal/models"
)

const ClockLayout = "15:04"

// SchemaDto holds one entry per line of Entries, written as "HH:MM label".
type SchemaDto struct {
	Name     string `schema:"name"`
	Weekdays []int  `schema:"weekdays"`
	Entries  string `schema:"entries"`
}

func (dto *SchemaDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "name", strings.TrimSpace(dto.Name), validate.IsNotEmpty)
	validate.Check(v, "weekdays", dto.Weekdays, isWeekdays)
	validate.Check(v, "entries", dto.Entries, isEntries)

	return v.Valid(), v.Errors()
}

func (dto *SchemaDto) ToSchema(id string, owner string) (models.DaySchema, error) {
	entries, err := ParseEntries(dto.Entries)
	if err != nil {
		return models.DaySchema{}, err
	}

	return models.DaySchema{
		ID:       id,
		Name:     strings.TrimSpace(dto.Name),
		Weekdays: dto.Weekdays,
		Entries:  entries,
		UserName: owner,
	}, nil
}

// ParseEntries reads "HH:MM label" lines. Blank lines are ignored.
func ParseEntries(value string) ([]models.SchemaEntry, error) {
	entries := []models.SchemaEntry{}

	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		clock, label, _ := strings.Cut(line, " ")
		at, err := time.Parse(ClockLayout, clock)
		if err != nil {
			return nil, fmt.Errorf("invalid time in %q", line)
		}

		entries = append(entries, models.SchemaEntry{
			Time:  at.Format(ClockLayout),
			Label: strings.TrimSpace(label),
		})
	}

	return entries, nil
}

func isWeekdays(value []int) (bool, string) {
	if len(value) == 0 {
		return false, "must select at least one weekday"
	}
	for _, day := range value {
		if day < int(time.Sunday) || day > int(time.Saturday) {
			return false, "must be between 0 and 6"
		}
	}
	return true, ""
}

func isEntries(value string) (bool, string) {
	entries, err := ParseEntries(value)
	if err != nil {
		return false, err.Error()
	}
	if len(entries) == 0 {
		return false, "must contain at least one entry"
	}
	return true, ""
}
