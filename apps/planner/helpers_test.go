package planner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/internal/mocks"
	sharedmodels "dzisiaj.app/internal/models"
)

func createTask(t *testing.T, title string, when string) *models.Task {
	t.Helper()

	//nolint:exhaustruct //other fields are optional
	task, err := testApp.Services.Tasks.Create(
		context.Background(),
		mocks.MockedUserEmail,
		&dtos.TaskDto{Title: title, When: when},
		now,
	)
	require.Nil(t, err)

	t.Cleanup(func() {
		//nolint:errcheck //cleanup
		testApp.Services.Tasks.Delete(
			context.Background(),
			task.ID,
			mocks.MockedUserEmail,
		)
	})

	return task
}

func createEvent(t *testing.T, start string, end string, repeat string) *sharedmodels.Event {
	t.Helper()

	startTime, err := time.ParseInLocation("2006-01-02T15:04", start, time.UTC)
	require.Nil(t, err)
	endTime, err := time.ParseInLocation("2006-01-02T15:04", end, time.UTC)
	require.Nil(t, err)

	//nolint:exhaustruct //other fields are optional
	event := sharedmodels.Event{
		Title:     "Dentist",
		Place:     "Clinic",
		StartTime: startTime,
		EndTime:   endTime,
		Repeat:    sharedmodels.Repeat(repeat),
		UserName:  mocks.MockedUserEmail,
	}
	err = testApp.Repositories.Events.Create(context.Background(), &event)
	require.Nil(t, err)

	t.Cleanup(func() {
		//nolint:errcheck //cleanup
		testApp.Repositories.Events.Delete(
			context.Background(),
			event.ID,
			mocks.MockedUserEmail,
		)
	})

	return &event
}

func createSchema(t *testing.T) *models.DaySchema {
	t.Helper()

	schema, err := testApp.Services.Schemas.Create(
		context.Background(),
		mocks.MockedUserEmail,
		&dtos.SchemaDto{
			Name:     "Workdays",
			Weekdays: []int{1, 2, 3, 4, 5},
			Entries:  "07:00 wake up\n12:30 lunch",
		},
	)
	require.Nil(t, err)

	t.Cleanup(func() {
		//nolint:errcheck //cleanup
		testApp.Services.Schemas.Delete(
			context.Background(),
			schema.ID,
			mocks.MockedUserEmail,
		)
	})

	return schema
}

func findTask(t *testing.T, id string) *models.Task {
	t.Helper()

	task, err := testApp.Services.Tasks.GetByID(
		context.Background(),
		id,
		mocks.MockedUserEmail,
	)
	require.Nil(t, err)

	return task
}
