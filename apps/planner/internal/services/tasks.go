package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/helper"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/apps/planner/internal/repositories"
)

type TaskService struct {
	tasks    *repositories.TaskRepository
	composer helper.Composer
	parser   *when.Parser
}

func (service *TaskService) GetAll(
	ctx context.Context,
	owner string,
) ([]models.Task, error) {
	return service.tasks.GetAll(ctx, owner)
}

func (service *TaskService) GetByID(
	ctx context.Context,
	id string,
	owner string,
) (*models.Task, error) {
	return service.tasks.GetByID(ctx, id, owner)
}

// Create stores a new task. A non-empty When is read as natural language
// relative to now ("tomorrow 14:30") and becomes the scheduled time.
func (service *TaskService) Create(
	ctx context.Context,
	owner string,
	taskDto *dtos.TaskDto,
	now time.Time,
) (*models.Task, error) {
	scheduled, err := service.ParseWhen(taskDto.When, now)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct //created_at is set by the database
	task := models.Task{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(taskDto.Title),
		Description:   taskDto.Description,
		Priority:      taskDto.Priority,
		DueDate:       taskDto.Due(service.composer.Location),
		ScheduledTime: scheduled,
		UserName:      owner,
	}

	err = service.tasks.Create(ctx, &task)
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// ParseWhen returns nil for an empty value.
func (service *TaskService) ParseWhen(value string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil //nolint:nilnil //no time given
	}

	result, err := service.parser.Parse(value, now.In(service.composer.Location))
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("could not understand %q", value)
	}

	scheduled := result.Time.Truncate(time.Minute)
	return &scheduled, nil
}

func (service *TaskService) Schedule(
	ctx context.Context,
	id string,
	owner string,
	scheduleDto *dtos.ScheduleDto,
) error {
	day, err := time.ParseInLocation(
		dtos.DateLayout,
		scheduleDto.Date,
		service.composer.Location,
	)
	if err != nil {
		return err
	}

	scheduled, err := service.composer.ScheduledTime(day, scheduleDto.Slot)
	if err != nil {
		return err
	}

	return service.tasks.Schedule(ctx, id, owner, &scheduled)
}

func (service *TaskService) Unschedule(
	ctx context.Context,
	id string,
	owner string,
) error {
	return service.tasks.Schedule(ctx, id, owner, nil)
}

func (service *TaskService) SetDone(
	ctx context.Context,
	id string,
	owner string,
	done bool,
) error {
	return service.tasks.SetDone(ctx, id, owner, done)
}

func (service *TaskService) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	return service.tasks.Delete(ctx, id, owner)
}
