package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"dzisiaj.app/apps/calendar/internal/repositories"
	"dzisiaj.app/internal/eventstore"
	"dzisiaj.app/internal/metrics"
	"dzisiaj.app/internal/models"
)

const (
	productID         = "-//dzisiaj.app//calendar//EN"
	icsDateLayout     = "20060102"
	icsFloatingLayout = "20060102T150405"
)

type ICSService struct {
	logger     *slog.Logger
	store      *eventstore.Store
	feeds      *repositories.FeedRepository
	location   *time.Location
	workerPool *threading.WorkerPool
}

type ImportResult struct {
	Imported int
	Skipped  int
}

// Import stores every VEVENT of the calendar as a template owned by owner.
// Each VEVENT is converted and inserted on its own, a failing one is logged
// and counted as skipped.
func (service *ICSService) Import(
	ctx context.Context,
	owner string,
	data io.Reader,
) (ImportResult, error) {
	cal, err := ics.ParseCalendar(data)
	if err != nil {
		return ImportResult{}, fmt.Errorf("invalid calendar file: %w", err)
	}

	vevents := cal.Events()
	if len(vevents) == 0 {
		return ImportResult{}, nil
	}

	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	result := ImportResult{}
	for _, vevent := range vevents {
		wg.Add(1)
		service.workerPool.EnqueueWork(func(_ context.Context, logger *slog.Logger) error {
			defer wg.Done()

			errIn := service.importOne(ctx, owner, vevent)

			mu.Lock()
			defer mu.Unlock()

			if errIn != nil {
				result.Skipped++
				metrics.ICSImported.WithLabelValues("skipped").Inc()
				logger.Warn(
					"skipping calendar entry",
					slog.String("uid", vevent.Id()),
					logging.ErrAttr(errIn),
				)
				return nil
			}

			result.Imported++
			metrics.ICSImported.WithLabelValues("imported").Inc()
			return nil
		})
	}

	wg.Wait()

	return result, nil
}

func (service *ICSService) importOne(
	ctx context.Context,
	owner string,
	vevent *ics.VEvent,
) error {
	event, exact, err := ConvertVEvent(vevent, owner, service.location)
	if err != nil {
		return err
	}

	if !exact {
		service.logger.Info(
			"recurrence rule simplified on import",
			slog.String("uid", vevent.Id()),
			slog.String("repeat", string(event.Repeat)),
		)
	}

	return service.store.Create(ctx, &event)
}

// Export serializes every event the feed owner can see.
func (service *ICSService) Export(
	ctx context.Context,
	token string,
) ([]byte, error) {
	owner, err := service.feeds.GetOwner(ctx, token)
	if err != nil {
		return nil, err
	}

	events, err := service.store.GetAll(ctx, owner)
	if err != nil {
		return nil, err
	}

	return []byte(BuildCalendar(events, time.Now()).Serialize()), nil
}

func (service *ICSService) GetFeedToken(
	ctx context.Context,
	owner string,
) (*string, error) {
	token, err := service.feeds.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

func (service *ICSService) RotateFeedToken(
	ctx context.Context,
	owner string,
) (string, error) {
	return service.feeds.Rotate(ctx, owner)
}

// ConvertVEvent maps a VEVENT onto a new template. The returned bool is
// false when the recurrence rule could not be represented exactly.
func ConvertVEvent(
	vevent *ics.VEvent,
	owner string,
	loc *time.Location,
) (models.Event, bool, error) {
	start, err := timeProperty(vevent, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return models.Event{}, false, fmt.Errorf("invalid DTSTART: %w", err)
	}

	end, err := timeProperty(vevent, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		end = start
	}

	repeat, exact := models.RepeatNone, true
	if p := vevent.GetProperty(ics.ComponentPropertyRrule); p != nil {
		repeat, exact = RepeatFromRRule(p.Value)
	}

	//nolint:exhaustruct //share is never imported
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       propertyValue(vevent, ics.ComponentPropertySummary),
		Description: propertyValue(vevent, ics.ComponentPropertyDescription),
		Place:       propertyValue(vevent, ics.ComponentPropertyLocation),
		StartTime:   start,
		EndTime:     end,
		Repeat:      repeat,
		UserName:    owner,
	}

	if event.Title == "" {
		event.Title = "(untitled)"
	}

	return event, exact, nil
}

// timeProperty reads a DTSTART or DTEND. All-day dates and floating times
// carry no zone of their own and are read as wall clock in loc.
func timeProperty(
	vevent *ics.VEvent,
	property ics.ComponentProperty,
	loc *time.Location,
) (time.Time, error) {
	prop := vevent.GetProperty(property)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing %s", property)
	}

	value := strings.TrimSpace(prop.Value)
	_, hasTZID := prop.ICalParameters["TZID"]

	switch {
	case isAllDay(prop.ICalParameters, value):
		return time.ParseInLocation(icsDateLayout, value[:len(icsDateLayout)], loc)
	case !hasTZID && !strings.HasSuffix(value, "Z"):
		return time.ParseInLocation(icsFloatingLayout, value, loc)
	}

	var t time.Time
	var err error
	if property == ics.ComponentPropertyDtEnd {
		t, err = vevent.GetEndAt()
	} else {
		t, err = vevent.GetStartAt()
	}
	if err != nil {
		return time.Time{}, err
	}

	return t.In(loc), nil
}

func isAllDay(params map[string][]string, value string) bool {
	if len(value) < len(icsDateLayout) {
		return false
	}
	if values, ok := params["VALUE"]; ok && len(values) > 0 &&
		strings.EqualFold(values[0], "DATE") {
		return true
	}
	return !strings.Contains(value, "T")
}

// RepeatFromRRule maps FREQ onto the supported repeat rules. Rules with an
// interval other than 1, or another frequency, import as a single event.
// COUNT, UNTIL and BY* parts are dropped. Both cases report inexact.
func RepeatFromRRule(value string) (models.Repeat, bool) {
	option, err := rrule.StrToROption(strings.TrimPrefix(value, "RRULE:"))
	if err != nil {
		return models.RepeatNone, false
	}

	if option.Interval > 1 {
		return models.RepeatNone, false
	}

	var repeat models.Repeat
	switch option.Freq {
	case rrule.WEEKLY:
		repeat = models.RepeatWeekly
	case rrule.MONTHLY:
		repeat = models.RepeatMonthly
	case rrule.YEARLY:
		repeat = models.RepeatYearly
	default:
		return models.RepeatNone, false
	}

	exact := option.Count == 0 &&
		option.Until.IsZero() &&
		len(option.Byweekday) <= 1 &&
		len(option.Bymonthday) <= 1 &&
		len(option.Bymonth) <= 1

	return repeat, exact
}

var errNotRecurring = errors.New("event does not repeat")

func RRuleFromRepeat(repeat models.Repeat) (string, error) {
	//nolint:exhaustruct //only the frequency is set
	option := rrule.ROption{}

	switch repeat {
	case models.RepeatWeekly:
		option.Freq = rrule.WEEKLY
	case models.RepeatMonthly:
		option.Freq = rrule.MONTHLY
	case models.RepeatYearly:
		option.Freq = rrule.YEARLY
	case models.RepeatNone:
		return "", errNotRecurring
	default:
		return "", fmt.Errorf("unknown repeat %q", repeat)
	}

	return option.RRuleString(), nil
}

func BuildCalendar(events []models.Event, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, event := range events {
		vevent := cal.AddEvent(event.ID + "@dzisiaj.app")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(event.StartTime)
		vevent.SetEndAt(event.EndTime)
		vevent.SetSummary(event.Title)

		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		if event.Place != "" {
			vevent.SetLocation(event.Place)
		}

		if rule, err := RRuleFromRepeat(event.Repeat); err == nil {
			vevent.AddRrule(rule)
		}
	}

	return cal
}

func propertyValue(vevent *ics.VEvent, property ics.ComponentProperty) string {
	if p := vevent.GetProperty(property); p != nil {
		return p.Value
	}
	return ""
}
