package helper

import (
	"fmt"
	"slices"
	"time"

	"dzisiaj.app/apps/planner/internal/models"
	sharedmodels "dzisiaj.app/internal/models"
	"dzisiaj.app/internal/recurrence"
)

const (
	clockLayout = "15:04"
	slotLayout  = "%02d:00"
)

// Composer buckets a day's items into hourly slots from FirstHour to
// LastHour inclusive, read in Location.
type Composer struct {
	Location  *time.Location
	FirstHour int
	LastHour  int
}

func NewComposer(loc *time.Location, firstHour int, lastHour int) Composer {
	return Composer{
		Location:  loc,
		FirstHour: firstHour,
		LastHour:  lastHour,
	}
}

// Compose builds the plan of day. Schemas apply when their weekday set
// contains the day, occurrences and tasks when they start on the day.
// Items outside the slot range are dropped. Within a slot items are
// ordered by minute, ties keep schema, event, task order.
func (composer Composer) Compose(
	day time.Time,
	occurrences []sharedmodels.Event,
	schemas []models.DaySchema,
	tasks []models.Task,
) models.DayPlan {
	day = composer.startOfDay(day)

	plan := models.DayPlan{
		Date:    day,
		Slots:   composer.emptySlots(),
		Backlog: []models.Task{},
	}

	for _, schema := range schemas {
		if !schema.AppliesTo(day.Weekday()) {
			continue
		}

		for i, entry := range schema.Entries {
			at, err := time.ParseInLocation(clockLayout, entry.Time, composer.Location)
			if err != nil {
				continue
			}

			//nolint:exhaustruct //schema entries have no place
			composer.place(&plan, models.PlanItem{
				Kind:     models.KindSchema,
				ID:       fmt.Sprintf("%s_%d", schema.ID, i),
				SourceID: schema.ID,
				Title:    entry.Label,
				Time:     at.Format(clockLayout),
				Minute:   at.Minute(),
				Start: time.Date(
					day.Year(), day.Month(), day.Day(),
					at.Hour(), at.Minute(), 0, 0, composer.Location,
				),
			}, at.Hour())
		}
	}

	for _, occurrence := range occurrences {
		start := occurrence.StartTime.In(composer.Location)
		if !composer.sameDay(start, day) {
			continue
		}

		//nolint:exhaustruct //events cannot be done
		composer.place(&plan, models.PlanItem{
			Kind:     models.KindEvent,
			ID:       occurrence.ID,
			SourceID: recurrence.TemplateID(occurrence.ID),
			Title:    occurrence.Title,
			Place:    occurrence.Place,
			Time:     start.Format(clockLayout),
			Minute:   start.Minute(),
			Start:    start,
		}, start.Hour())
	}

	for _, task := range tasks {
		if !task.IsScheduled() {
			plan.Backlog = append(plan.Backlog, task)
			continue
		}

		scheduled := task.ScheduledTime.In(composer.Location)
		if !composer.sameDay(scheduled, day) {
			continue
		}

		//nolint:exhaustruct //tasks have no place
		composer.place(&plan, models.PlanItem{
			Kind:     models.KindTask,
			ID:       task.ID,
			SourceID: task.ID,
			Title:    task.Title,
			Time:     scheduled.Format(clockLayout),
			Minute:   scheduled.Minute(),
			Start:    scheduled,
			Done:     task.Done,
		}, scheduled.Hour())
	}

	for i := range plan.Slots {
		slices.SortStableFunc(plan.Slots[i].Items, func(a, b models.PlanItem) int {
			return a.Minute - b.Minute
		})
	}

	return plan
}

// ScheduledTime is the timestamp a drop onto slot of day persists. Slot is
// either an hourly label ("14:00") or an exact clock time ("14:30").
func (composer Composer) ScheduledTime(day time.Time, slot string) (time.Time, error) {
	at, err := time.Parse(clockLayout, slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q", slot)
	}

	if at.Hour() < composer.FirstHour || at.Hour() > composer.LastHour {
		return time.Time{}, fmt.Errorf("slot %q is outside the planner", slot)
	}

	day = composer.startOfDay(day)

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		at.Hour(), at.Minute(), 0, 0, composer.Location,
	), nil
}

func SlotLabel(hour int) string {
	return fmt.Sprintf(slotLayout, hour)
}

func (composer Composer) place(plan *models.DayPlan, item models.PlanItem, hour int) {
	if hour < composer.FirstHour || hour > composer.LastHour {
		return
	}

	i := hour - composer.FirstHour
	plan.Slots[i].Items = append(plan.Slots[i].Items, item)
}

func (composer Composer) emptySlots() []models.Slot {
	slots := []models.Slot{}
	for hour := composer.FirstHour; hour <= composer.LastHour; hour++ {
		slots = append(slots, models.Slot{
			Label: SlotLabel(hour),
			Hour:  hour,
			Items: []models.PlanItem{},
		})
	}
	return slots
}

func (composer Composer) startOfDay(t time.Time) time.Time {
	t = t.In(composer.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, composer.Location)
}

func (composer Composer) sameDay(t time.Time, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
