package helper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dzisiaj.app/apps/planner/internal/helper"
	"dzisiaj.app/apps/planner/internal/models"
	sharedmodels "dzisiaj.app/internal/models"
)

func TestReminders(t *testing.T) {
	scheduled := at(10, 9, 0)
	done := at(10, 8, 0)

	//nolint:exhaustruct //other fields are optional
	tasks := []models.Task{
		{ID: "task", Title: "Pay rent", ScheduledTime: &scheduled},
		{ID: "done", Title: "Done", ScheduledTime: &done, Done: true},
		{ID: "unscheduled", Title: "Someday"},
	}

	//nolint:exhaustruct //other fields are optional
	occurrences := []sharedmodels.Event{
		{ID: "event", Title: "Dentist", StartTime: at(10, 8, 30)},
	}

	reminders := helper.Reminders(occurrences, tasks, 15*time.Minute)
	require.Len(t, reminders, 2)

	assert.Equal(t, "event", reminders[0].ID)
	assert.Equal(t, at(10, 8, 15), reminders[0].At)
	assert.Equal(t, models.KindEvent, reminders[0].Kind)

	assert.Equal(t, "task", reminders[1].ID)
	assert.Equal(t, at(10, 8, 45), reminders[1].At)
}

func TestDue(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	reminders := []helper.Reminder{
		{ID: "before", At: at(10, 8, 0)},
		{ID: "edge", At: at(10, 8, 1)},
		{ID: "inside", At: at(10, 8, 1).Add(30 * time.Second)},
		{ID: "after", At: at(10, 8, 2)},
	}

	due := helper.Due(reminders, at(10, 8, 0), at(10, 8, 1).Add(59*time.Second))
	require.Len(t, due, 2)
	assert.Equal(t, "edge", due[0].ID)
	assert.Equal(t, "inside", due[1].ID)
}

func TestNextDigest(t *testing.T) {
	next, err := helper.NextDigest("0 7 * * *", at(10, 6, 59), time.UTC)
	require.Nil(t, err)
	assert.Equal(t, at(10, 7, 0), next)

	next, err = helper.NextDigest("0 7 * * *", at(10, 7, 0), time.UTC)
	require.Nil(t, err)
	assert.Equal(t, at(11, 7, 0), next)

	_, err = helper.NextDigest("every morning", at(10, 7, 0), time.UTC)
	assert.NotNil(t, err)
}

func TestDigestDue(t *testing.T) {
	due, err := helper.DigestDue("0 7 * * *", at(10, 6, 59), at(10, 7, 0), time.UTC)
	require.Nil(t, err)
	assert.True(t, due)

	due, err = helper.DigestDue("0 7 * * *", at(10, 7, 0), at(10, 7, 1), time.UTC)
	require.Nil(t, err)
	assert.False(t, due)

	due, err = helper.DigestDue("", at(10, 6, 59), at(10, 7, 0), time.UTC)
	require.Nil(t, err)
	assert.False(t, due)
}
