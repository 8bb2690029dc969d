package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dzisiaj.app/apps/calendar/internal/dtos"
	"dzisiaj.app/internal/eventstore"
	"dzisiaj.app/internal/models"
	"dzisiaj.app/internal/recurrence"
)

type EventService struct {
	logger   *slog.Logger
	store    *eventstore.Store
	location *time.Location
}

type Day struct {
	Date        time.Time
	Occurrences []models.Event
}

func (service *EventService) Location() *time.Location {
	return service.location
}

func (service *EventService) GetOccurrences(
	ctx context.Context,
	identity string,
	from time.Time,
	to time.Time,
) ([]models.Event, error) {
	events, err := service.store.GetAll(ctx, identity)
	if err != nil {
		return nil, err
	}

	return recurrence.Expand(service.logger, events, from, to), nil
}

// GetTemplate accepts both stored and synthesized occurrence ids.
func (service *EventService) GetTemplate(
	ctx context.Context,
	id string,
	identity string,
) (*models.Event, error) {
	return service.store.GetByID(ctx, recurrence.TemplateID(id), identity)
}

func (service *EventService) Create(
	ctx context.Context,
	owner string,
	eventDto *dtos.EventDto,
) (*models.Event, error) {
	event, err := eventDto.ToEvent(uuid.NewString(), owner, service.location)
	if err != nil {
		return nil, err
	}

	err = service.store.Create(ctx, &event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (service *EventService) Update(
	ctx context.Context,
	id string,
	owner string,
	eventDto *dtos.EventDto,
) error {
	event, err := eventDto.ToEvent(recurrence.TemplateID(id), owner, service.location)
	if err != nil {
		return err
	}

	return service.store.Update(ctx, event)
}

func (service *EventService) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	return service.store.Delete(ctx, recurrence.TemplateID(id), owner)
}

// GroupByDay buckets occurrences by the day they start on, one entry per
// day of [from, to] in loc. Occurrences that started earlier but still
// overlap the range go to the first day.
func GroupByDay(
	occurrences []models.Event,
	from time.Time,
	to time.Time,
	loc *time.Location,
) []Day {
	from = from.In(loc)
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)

	days := []Day{}
	index := map[string]int{}
	for day := first; !day.After(to); day = day.AddDate(0, 0, 1) {
		index[day.Format(dtos.DateLayout)] = len(days)
		days = append(days, Day{Date: day, Occurrences: []models.Event{}})
	}

	for _, occurrence := range occurrences {
		if len(days) == 0 {
			break
		}

		i, ok := index[occurrence.StartTime.In(loc).Format(dtos.DateLayout)]
		if !ok {
			if !occurrence.StartTime.Before(first) {
				continue
			}
			i = 0
		}
		days[i].Occurrences = append(days[i].Occurrences, occurrence)
	}

	return days
}
