package dtos

import (
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/validate"

	"dzisiaj.app/internal/models"
)

// DateTimeLayout matches the value of an <input type="datetime-local">.
const DateTimeLayout = "2006-01-02T15:04"

type EventDto struct {
	Title       string `schema:"title"`
	Description string `schema:"description"`
	Place       string `schema:"place"`
	Share       string `schema:"share"`
	Start       string `schema:"start"`
	End         string `schema:"end"`
	Repeat      string `schema:"repeat"`
}

func (dto *EventDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "title", strings.TrimSpace(dto.Title), validate.IsNotEmpty)
	validate.Check(v, "start", dto.Start, isDateTime)
	validate.Check(v, "end", dto.End, isDateTime)
	validate.Check(v, "repeat", dto.Repeat, isRepeat)

	return v.Valid(), v.Errors()
}

// ToEvent builds the template record. Times are read in loc.
func (dto *EventDto) ToEvent(
	id string,
	owner string,
	loc *time.Location,
) (models.Event, error) {
	start, err := time.ParseInLocation(DateTimeLayout, dto.Start, loc)
	if err != nil {
		return models.Event{}, err
	}

	end, err := time.ParseInLocation(DateTimeLayout, dto.End, loc)
	if err != nil {
		return models.Event{}, err
	}

	repeat, err := models.ParseRepeat(dto.Repeat)
	if err != nil {
		return models.Event{}, err
	}

	var share *string
	if trimmed := strings.TrimSpace(dto.Share); trimmed != "" {
		share = &trimmed
	}

	return models.Event{
		ID:          id,
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Place:       dto.Place,
		Share:       share,
		StartTime:   start,
		EndTime:     end,
		Repeat:      repeat,
		UserName:    owner,
	}, nil
}

func isDateTime(value string) (bool, string) {
	if _, err := time.Parse(DateTimeLayout, value); err != nil {
		return false, "must be a date and time"
	}
	return true, ""
}

func isRepeat(value string) (bool, string) {
	if _, err := models.ParseRepeat(value); err != nil {
		return false, "must be one of none, weekly, monthly, yearly"
	}
	return true, ""
}
