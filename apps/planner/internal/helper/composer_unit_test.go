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

func at(day int, hour int, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

func slot(t *testing.T, plan models.DayPlan, label string) models.Slot {
	t.Helper()

	for _, s := range plan.Slots {
		if s.Label == label {
			return s
		}
	}

	t.Fatalf("slot %s not found", label)
	return models.Slot{}
}

func TestComposeSlotLabels(t *testing.T) {
	composer := helper.NewComposer(time.UTC, 6, 23)
	plan := composer.Compose(at(10, 12, 0), nil, nil, nil)

	require.Len(t, plan.Slots, 18)
	assert.Equal(t, "06:00", plan.Slots[0].Label)
	assert.Equal(t, "23:00", plan.Slots[17].Label)
	assert.Equal(t, at(10, 0, 0), plan.Date)
}

func TestComposeTaskLandsInFlooredSlot(t *testing.T) {
	scheduled := at(10, 14, 30)

	//nolint:exhaustruct //other fields are optional
	tasks := []models.Task{{ID: "t1", Title: "Call", ScheduledTime: &scheduled}}

	plan := helper.NewComposer(time.UTC, 6, 23).Compose(at(10, 0, 0), nil, nil, tasks)

	items := slot(t, plan, "14:00").Items
	require.Len(t, items, 1)
	assert.Equal(t, models.KindTask, items[0].Kind)
	assert.Equal(t, "t1", items[0].ID)
	assert.Equal(t, "14:30", items[0].Time)
	assert.Empty(t, slot(t, plan, "15:00").Items)
}

func TestComposeDropsItemsOutsideRange(t *testing.T) {
	early := at(10, 5, 45)
	otherDay := at(11, 9, 0)

	//nolint:exhaustruct //other fields are optional
	tasks := []models.Task{
		{ID: "early", ScheduledTime: &early},
		{ID: "tomorrow", ScheduledTime: &otherDay},
		{ID: "backlog"},
	}

	//nolint:exhaustruct //other fields are optional
	occurrences := []sharedmodels.Event{
		{ID: "late_event", StartTime: at(10, 23, 59)},
		{ID: "yesterday", StartTime: at(9, 12, 0)},
	}

	plan := helper.NewComposer(time.UTC, 6, 22).Compose(at(10, 0, 0), occurrences, nil, tasks)

	total := 0
	for _, s := range plan.Slots {
		total += len(s.Items)
	}
	assert.Equal(t, 0, total)

	require.Len(t, plan.Backlog, 1)
	assert.Equal(t, "backlog", plan.Backlog[0].ID)
}

func TestComposeSchemasFilteredByWeekday(t *testing.T) {
	// 2025-06-10 is a Tuesday.
	//nolint:exhaustruct //other fields are optional
	schemas := []models.DaySchema{
		{
			ID:       "weekdays",
			Weekdays: []int{1, 2, 3, 4, 5},
			Entries: []models.SchemaEntry{
				{Time: "07:00", Label: "wake up"},
				{Time: "bogus", Label: "ignored"},
			},
		},
		{
			ID:       "weekend",
			Weekdays: []int{0, 6},
			Entries:  []models.SchemaEntry{{Time: "09:00", Label: "sleep in"}},
		},
	}

	plan := helper.NewComposer(time.UTC, 6, 23).Compose(at(10, 0, 0), nil, schemas, nil)

	items := slot(t, plan, "07:00").Items
	require.Len(t, items, 1)
	assert.Equal(t, models.KindSchema, items[0].Kind)
	assert.Equal(t, "wake up", items[0].Title)
	assert.Equal(t, "weekdays", items[0].SourceID)
	assert.Empty(t, slot(t, plan, "09:00").Items)
}

func TestComposeOrderWithinSlot(t *testing.T) {
	taskTime := at(10, 8, 0)
	laterTask := at(10, 8, 50)

	//nolint:exhaustruct //other fields are optional
	tasks := []models.Task{
		{ID: "later", ScheduledTime: &laterTask},
		{ID: "task", ScheduledTime: &taskTime},
	}

	//nolint:exhaustruct //other fields are optional
	occurrences := []sharedmodels.Event{
		{ID: "ev_2025-06-10T08:00:00.000Z", Title: "Meeting", StartTime: at(10, 8, 0)},
		{ID: "early", Title: "Coffee", StartTime: at(10, 8, 10)},
	}

	//nolint:exhaustruct //other fields are optional
	schemas := []models.DaySchema{{
		ID:       "s",
		Weekdays: []int{2},
		Entries:  []models.SchemaEntry{{Time: "08:00", Label: "commute"}},
	}}

	plan := helper.NewComposer(time.UTC, 6, 23).Compose(
		at(10, 0, 0),
		occurrences,
		schemas,
		tasks,
	)

	items := slot(t, plan, "08:00").Items
	require.Len(t, items, 5)

	kinds := []models.ItemKind{}
	ids := []string{}
	for _, item := range items {
		kinds = append(kinds, item.Kind)
		ids = append(ids, item.ID)
	}

	assert.Equal(t, []models.ItemKind{
		models.KindSchema,
		models.KindEvent,
		models.KindTask,
		models.KindEvent,
		models.KindTask,
	}, kinds)
	assert.Equal(t, "task", ids[2])
	assert.Equal(t, "later", ids[4])
	assert.Equal(t, "ev", items[1].SourceID)
}

func TestComposeUsesLocation(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	scheduled := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)

	//nolint:exhaustruct //other fields are optional
	tasks := []models.Task{{ID: "t", ScheduledTime: &scheduled}}

	plan := helper.NewComposer(loc, 0, 23).Compose(
		time.Date(2025, 6, 11, 12, 0, 0, 0, loc),
		nil,
		nil,
		tasks,
	)

	items := slot(t, plan, "00:00").Items
	require.Len(t, items, 1)
	assert.Equal(t, "00:30", items[0].Time)
}

func TestScheduledTime(t *testing.T) {
	composer := helper.NewComposer(time.UTC, 6, 23)

	scheduled, err := composer.ScheduledTime(at(10, 17, 3), "14:00")
	require.Nil(t, err)
	assert.Equal(t, at(10, 14, 0), scheduled)

	scheduled, err = composer.ScheduledTime(at(10, 0, 0), "09:45")
	require.Nil(t, err)
	assert.Equal(t, at(10, 9, 45), scheduled)

	_, err = composer.ScheduledTime(at(10, 0, 0), "03:00")
	assert.NotNil(t, err)

	_, err = composer.ScheduledTime(at(10, 0, 0), "noon")
	assert.NotNil(t, err)
}
