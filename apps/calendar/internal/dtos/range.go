package dtos

import (
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds how many days a single range may cover.
const MaxRangeDays = 366

// RangeDto is the [from, to] query window. Both dates are inclusive days.
type RangeDto struct {
	From string `schema:"from"`
	To   string `schema:"to"`
}

func (dto *RangeDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "from", dto.From, isDate)
	validate.Check(v, "to", dto.To, isDate)

	if days, ok := dto.spanDays(); ok {
		validate.Check(v, "to", days, validate.IsGreaterThanOrEqual(0))
		validate.Check(v, "to", days, validate.IsLesserThanOrEqual(MaxRangeDays))
	}

	return v.Valid(), v.Errors()
}

// Window resolves the range in loc. Empty values default to the month of now.
func (dto *RangeDto) Window(now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	if parsed, err := time.ParseInLocation(DateLayout, dto.From, loc); err == nil {
		from = parsed
	}
	if parsed, err := time.ParseInLocation(DateLayout, dto.To, loc); err == nil {
		to = parsed
	}

	if limit := from.AddDate(0, 0, MaxRangeDays); to.After(limit) {
		to = limit
	}

	return from, endOfDay(to)
}

func (dto *RangeDto) spanDays() (int, bool) {
	from, err := time.Parse(DateLayout, dto.From)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(DateLayout, dto.To)
	if err != nil {
		return 0, false
	}

	return int(to.Sub(from).Hours() / 24), true //nolint:mnd //hours per day
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func isDate(value string) (bool, string) {
	if value == "" {
		return true, ""
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return false, "must be a date (YYYY-MM-DD)"
	}
	return true, ""
}
