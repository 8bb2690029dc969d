package calendar_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/test"

	"dzisiaj.app/apps/calendar/internal/dtos"
	"dzisiaj.app/internal/eventstore"
	"dzisiaj.app/internal/mocks"
	"dzisiaj.app/internal/models"
	"dzisiaj.app/internal/recurrence"
)

func createWeeklyEvent(t *testing.T) *models.Event {
	t.Helper()

	event, err := testApp.Services.Events.Create(
		context.Background(),
		mocks.MockedUserEmail,
		&dtos.EventDto{
			Title:  "Standup",
			Start:  "2025-01-01T09:00",
			End:    "2025-01-01T09:15",
			Repeat: "weekly",
		},
	)
	require.Nil(t, err)

	t.Cleanup(func() {
		//nolint:errcheck //cleanup
		testApp.Repositories.Events.Delete(
			context.Background(),
			event.ID,
			mocks.MockedUserEmail,
		)
	})

	return event
}

func TestGetOccurrencesHandler(t *testing.T) {
	event := createWeeklyEvent(t)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf(
			"/%s/api/occurrences?from=2025-01-01&to=2025-01-31",
			testApp.GetName(),
		),
	)
	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)

	occurrences, err := testApp.Services.Events.GetOccurrences(
		context.Background(),
		mocks.MockedUserEmail,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
	)
	require.Nil(t, err)

	count := 0
	for _, occurrence := range occurrences {
		if recurrence.TemplateID(occurrence.ID) == event.ID {
			count++
		}
	}
	assert.Equal(t, 5, count)
}

func TestGetOccurrencesHandlerInvalidRange(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/occurrences?from=january", testApp.GetName()),
	)
	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusUnprocessableEntity, rs.StatusCode)
}

func TestCreateEventHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/events", testApp.GetName()),
	)

	tReq.SetFollowRedirect(false)
	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.EventDto{
		Title:  "Dentist",
		Start:  "2025-06-10T09:00",
		End:    "2025-06-10T10:00",
		Repeat: "none",
	})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)

	events, err := testApp.Repositories.Events.GetAll(
		context.Background(),
		mocks.MockedUserEmail,
	)
	require.Nil(t, err)

	for _, event := range events {
		if event.Title == "Dentist" {
			//nolint:errcheck //cleanup
			testApp.Repositories.Events.Delete(
				context.Background(),
				event.ID,
				mocks.MockedUserEmail,
			)
		}
	}
}

func TestEditEventHandlerWithOccurrenceID(t *testing.T) {
	event := createWeeklyEvent(t)
	occurrenceID := recurrence.InstanceID(
		event.ID,
		event.StartTime.AddDate(0, 0, 7),
	)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/events/%s/edit", testApp.GetName(), occurrenceID),
	)

	tReq.SetFollowRedirect(false)
	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.EventDto{
		Title:  "Standup (moved)",
		Start:  "2025-01-02T10:00",
		End:    "2025-01-02T10:15",
		Repeat: "weekly",
	})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)

	updated, err := testApp.Repositories.Events.GetByID(
		context.Background(),
		event.ID,
		mocks.MockedUserEmail,
	)
	require.Nil(t, err)
	assert.Equal(t, "Standup (moved)", updated.Title)
	assert.True(t, time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC).Equal(updated.StartTime))
}

func TestDeleteEventHandlerWithOccurrenceID(t *testing.T) {
	event := createWeeklyEvent(t)
	occurrenceID := recurrence.InstanceID(event.ID, event.StartTime)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/events/%s/delete", testApp.GetName(), occurrenceID),
	)

	tReq.SetFollowRedirect(false)
	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)

	_, err := testApp.Repositories.Events.GetByID(
		context.Background(),
		event.ID,
		mocks.MockedUserEmail,
	)
	assert.NotNil(t, err)
}

func TestDeleteEventHandlerReturnsToPlanner(t *testing.T) {
	event := createWeeklyEvent(t)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/events/%s/delete", testApp.GetName(), event.ID),
	)

	tReq.SetFollowRedirect(false)
	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(struct {
		Next string `schema:"next"`
	}{Next: "/planner/?date=2025-01-08"})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Equal(t, "/planner/?date=2025-01-08", rs.Header.Get("Location"))
}

func TestDeleteEventHandlerIgnoresForeignReturn(t *testing.T) {
	event := createWeeklyEvent(t)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/events/%s/delete", testApp.GetName(), event.ID),
	)

	tReq.SetFollowRedirect(false)
	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(struct {
		Next string `schema:"next"`
	}{Next: "//example.com/"})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Equal(t, "/calendar/", rs.Header.Get("Location"))
}

func TestSharedEventVisible(t *testing.T) {
	share := mocks.MockedUserEmail

	//nolint:exhaustruct //other fields are optional
	event := models.Event{
		Title:     "Dinner",
		Share:     &share,
		StartTime: time.Date(2025, 2, 14, 19, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 2, 14, 21, 0, 0, 0, time.UTC),
		Repeat:    models.RepeatNone,
		UserName:  "friend@example.com",
	}
	err := testApp.Repositories.Events.Create(context.Background(), &event)
	require.Nil(t, err)
	//nolint:errcheck //cleanup
	defer testApp.Repositories.Events.Delete(
		context.Background(),
		event.ID,
		"friend@example.com",
	)

	occurrences, err := testApp.Services.Events.GetOccurrences(
		context.Background(),
		mocks.MockedUserEmail,
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	)
	require.Nil(t, err)

	found := false
	for _, occurrence := range occurrences {
		found = found || occurrence.ID == event.ID
	}
	assert.True(t, found)

	err = testApp.Services.Events.Delete(
		context.Background(),
		event.ID,
		mocks.MockedUserEmail,
	)
	assert.NotNil(t, err)
}

func TestEventStoreReadsInConfiguredZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.Nil(t, err)

	store := eventstore.New(testDB, loc)

	//nolint:exhaustruct //other fields are optional
	event := models.Event{
		Title:     "Standup",
		StartTime: time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 1, 6, 8, 15, 0, 0, time.UTC),
		Repeat:    models.RepeatWeekly,
		UserName:  mocks.MockedUserEmail,
	}
	err = store.Create(context.Background(), &event)
	require.Nil(t, err)
	//nolint:errcheck //cleanup
	defer store.Delete(context.Background(), event.ID, mocks.MockedUserEmail)

	stored, err := store.GetByID(context.Background(), event.ID, mocks.MockedUserEmail)
	require.Nil(t, err)
	assert.Equal(t, "Europe/Warsaw", stored.StartTime.Location().String())
	assert.Equal(t, 9, stored.StartTime.Hour())

	occurrences, err := recurrence.ExpandEvent(
		*stored,
		time.Date(2025, 4, 7, 0, 0, 0, 0, loc),
		time.Date(2025, 4, 7, 23, 59, 0, 0, loc),
	)
	require.Nil(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, 9, occurrences[0].StartTime.Hour())
}
