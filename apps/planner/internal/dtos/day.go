package dtos

import (
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

const DateLayout = "2006-01-02"

type DayDto struct {
	Date string `schema:"date"`
}

func (dto *DayDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "date", dto.Date, isOptionalDate)

	return v.Valid(), v.Errors()
}

// Day resolves the date in loc, defaulting to the day of now.
func (dto *DayDto) Day(now time.Time, loc *time.Location) time.Time {
	if parsed, err := time.ParseInLocation(DateLayout, dto.Date, loc); err == nil {
		return parsed
	}

	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func isOptionalDate(value string) (bool, string) {
	if value == "" {
		return true, ""
	}
	return isDate(value)
}

func isDate(value string) (bool, string) {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return false, "must be a date (YYYY-MM-DD)"
	}
	return true, ""
}
