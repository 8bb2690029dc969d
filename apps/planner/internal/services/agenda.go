package services

import (
	"context"
	"log/slog"
	"time"

	"dzisiaj.app/apps/planner/internal/helper"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/internal/eventstore"
	sharedmodels "dzisiaj.app/internal/models"
	"dzisiaj.app/internal/recurrence"
)

type AgendaService struct {
	logger   *slog.Logger
	events   *eventstore.Store
	tasks    *TaskService
	schemas  *SchemaService
	composer helper.Composer
}

func (service *AgendaService) Location() *time.Location {
	return service.composer.Location
}

func (service *AgendaService) Composer() helper.Composer {
	return service.composer
}

func (service *AgendaService) Occurrences(
	ctx context.Context,
	identity string,
	from time.Time,
	to time.Time,
) ([]sharedmodels.Event, error) {
	events, err := service.events.GetAll(ctx, identity)
	if err != nil {
		return nil, err
	}

	return recurrence.Expand(service.logger, events, from, to), nil
}

func (service *AgendaService) Plan(
	ctx context.Context,
	identity string,
	day time.Time,
) (*models.DayPlan, error) {
	day = day.In(service.composer.Location)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, service.composer.Location)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	occurrences, err := service.Occurrences(ctx, identity, from, to)
	if err != nil {
		return nil, err
	}

	schemas, err := service.schemas.GetAll(ctx, identity)
	if err != nil {
		return nil, err
	}

	tasks, err := service.tasks.GetAll(ctx, identity)
	if err != nil {
		return nil, err
	}

	plan := service.composer.Compose(from, occurrences, schemas, tasks)
	return &plan, nil
}
