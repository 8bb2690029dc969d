// Package recurrence expands stored event templates into the concrete
// occurrences that fall inside a query window.
package recurrence

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"dzisiaj.app/internal/metrics"
	"dzisiaj.app/internal/models"
)

const daysPerWeek = 7

var ErrMalformedEvent = errors.New("malformed event")

// Expand flattens events into their occurrences inside [windowStart, windowEnd].
// Each event is expanded independently: a malformed one is logged and skipped.
// Output keeps input order, then period order.
func Expand(
	logger *slog.Logger,
	events []models.Event,
	windowStart time.Time,
	windowEnd time.Time,
) []models.Event {
	occurrences := []models.Event{}

	for _, event := range events {
		expanded, err := ExpandEvent(event, windowStart, windowEnd)
		if err != nil {
			metrics.EventsSkipped.Inc()
			logger.Warn(
				"skipping event during expansion",
				slog.String("id", event.ID),
				logging.ErrAttr(err),
			)
			continue
		}

		occurrences = append(occurrences, expanded...)
	}

	metrics.OccurrencesExpanded.Add(float64(len(occurrences)))

	return occurrences
}

func ExpandEvent(
	event models.Event,
	windowStart time.Time,
	windowEnd time.Time,
) ([]models.Event, error) {
	if err := validate(event); err != nil {
		return nil, err
	}

	if !event.IsRecurring() {
		if !event.EndTime.Before(windowStart) && !event.StartTime.After(windowEnd) {
			return []models.Event{event}, nil
		}
		return []models.Event{}, nil
	}

	durationDays := wholeDaysBetween(event.StartTime, event.EndTime)

	occurrences := []models.Event{}
	for k := firstIndex(event, windowStart); ; k++ {
		start := nthStart(event.StartTime, event.Repeat, k)
		if start.After(windowEnd) {
			break
		}

		occurrence := event
		occurrence.ID = InstanceID(event.ID, start)
		occurrence.StartTime = start
		occurrence.EndTime = start.AddDate(0, 0, durationDays)

		occurrences = append(occurrences, occurrence)
	}

	return occurrences, nil
}

func validate(event models.Event) error {
	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		return fmt.Errorf("%w: missing start or end time", ErrMalformedEvent)
	}

	switch event.Repeat {
	case models.RepeatNone,
		models.RepeatWeekly,
		models.RepeatMonthly,
		models.RepeatYearly:
		return nil
	default:
		return fmt.Errorf("%w: unknown repeat %q", ErrMalformedEvent, event.Repeat)
	}
}

// wholeDaysBetween is the calendar-day difference between the two dates,
// read in the location of start. Time of day is ignored.
func wholeDaysBetween(start time.Time, end time.Time) int {
	end = end.In(start.Location())

	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(endDate.Sub(startDate).Hours() / 24) //nolint:mnd //hours per day
}

// nthStart is the start of the k-th period after the template. Months and
// years are always added to the template itself, so a clamped short month
// does not shift the day of later occurrences.
func nthStart(template time.Time, repeat models.Repeat, k int) time.Time {
	switch repeat {
	case models.RepeatWeekly:
		return template.AddDate(0, 0, daysPerWeek*k)
	case models.RepeatMonthly:
		return addMonthsClamped(template, k)
	case models.RepeatYearly:
		return addMonthsClamped(template, 12*k) //nolint:mnd //months per year
	default:
		return template
	}
}

// firstIndex returns the index of the first period starting at or after
// windowStart. It estimates the index from the gap and then steps forward,
// so historical occurrences are never enumerated.
func firstIndex(event models.Event, windowStart time.Time) int {
	template := event.StartTime
	if !template.Before(windowStart) {
		return 0
	}

	ws := windowStart.In(template.Location())

	var k int
	switch event.Repeat {
	case models.RepeatWeekly:
		days := int(ws.Sub(template).Hours() / 24) //nolint:mnd //hours per day
		k = days/daysPerWeek - 1
	case models.RepeatMonthly:
		k = monthsBetween(template, ws) - 1
	case models.RepeatYearly:
		k = ws.Year() - template.Year() - 1
	case models.RepeatNone:
		return 0
	}

	if k < 0 {
		k = 0
	}

	for nthStart(template, event.Repeat, k).Before(windowStart) {
		k++
	}

	return k
}

func monthsBetween(from time.Time, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month()) //nolint:mnd //months per year
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}

	return time.Date(
		target.Year(),
		target.Month(),
		day,
		t.Hour(),
		t.Minute(),
		t.Second(),
		t.Nanosecond(),
		t.Location(),
	)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
