package planner_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/test"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/internal/mocks"
)

func TestPlanCombinesSources(t *testing.T) {
	event := createEvent(t, "2025-06-03T10:15", "2025-06-03T11:00", "weekly")
	schema := createSchema(t)
	task := createTask(t, "Call mom", "")

	err := testApp.Services.Tasks.Schedule(
		context.Background(),
		task.ID,
		mocks.MockedUserEmail,
		&dtos.ScheduleDto{Date: "2025-06-10", Slot: "14:30"},
	)
	require.Nil(t, err)

	plan, err := testApp.Services.Agenda.Plan(
		context.Background(),
		mocks.MockedUserEmail,
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	)
	require.Nil(t, err)

	slots := map[string][]models.PlanItem{}
	for _, slot := range plan.Slots {
		slots[slot.Label] = slot.Items
	}

	require.Len(t, slots["07:00"], 1)
	assert.Equal(t, models.KindSchema, slots["07:00"][0].Kind)
	assert.Equal(t, schema.ID, slots["07:00"][0].SourceID)

	require.Len(t, slots["10:00"], 1)
	assert.Equal(t, models.KindEvent, slots["10:00"][0].Kind)
	assert.Equal(t, event.ID, slots["10:00"][0].SourceID)
	assert.Equal(t, "10:15", slots["10:00"][0].Time)

	require.Len(t, slots["14:00"], 1)
	assert.Equal(t, models.KindTask, slots["14:00"][0].Kind)
	assert.Equal(t, task.ID, slots["14:00"][0].ID)

	for _, backlog := range plan.Backlog {
		assert.NotEqual(t, task.ID, backlog.ID)
	}
}

func TestPlanOnWeekend(t *testing.T) {
	createSchema(t)

	plan, err := testApp.Services.Agenda.Plan(
		context.Background(),
		mocks.MockedUserEmail,
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	)
	require.Nil(t, err)

	for _, slot := range plan.Slots {
		for _, item := range slot.Items {
			assert.NotEqual(t, models.KindSchema, item.Kind)
		}
	}
}

func TestGetAgendaHandler(t *testing.T) {
	createEvent(t, "2025-06-10T09:00", "2025-06-10T10:00", "none")

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/agenda?date=2025-06-10", testApp.GetName()),
	)
	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)
}

func TestGetAgendaHandlerInvalidDate(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/agenda?date=10-06-2025", testApp.GetName()),
	)
	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusUnprocessableEntity, rs.StatusCode)
}
