package helper

import (
	"slices"
	"time"

	"github.com/robfig/cron/v3"

	"dzisiaj.app/apps/planner/internal/models"
	sharedmodels "dzisiaj.app/internal/models"
)

type Reminder struct {
	Kind  models.ItemKind `json:"type"`
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Start time.Time       `json:"start"`
	At    time.Time       `json:"at"`
}

// Reminders fires lead before the start of every occurrence and every
// scheduled task that is not done yet. The result is ordered by At.
func Reminders(
	occurrences []sharedmodels.Event,
	tasks []models.Task,
	lead time.Duration,
) []Reminder {
	reminders := []Reminder{}

	for _, occurrence := range occurrences {
		reminders = append(reminders, Reminder{
			Kind:  models.KindEvent,
			ID:    occurrence.ID,
			Title: occurrence.Title,
			Start: occurrence.StartTime,
			At:    occurrence.StartTime.Add(-lead),
		})
	}

	for _, task := range tasks {
		if !task.IsScheduled() || task.Done {
			continue
		}

		reminders = append(reminders, Reminder{
			Kind:  models.KindTask,
			ID:    task.ID,
			Title: task.Title,
			Start: *task.ScheduledTime,
			At:    task.ScheduledTime.Add(-lead),
		})
	}

	slices.SortStableFunc(reminders, func(a, b Reminder) int {
		return a.At.Compare(b.At)
	})

	return reminders
}

// Due keeps the reminders with At in (after, until].
func Due(reminders []Reminder, after time.Time, until time.Time) []Reminder {
	due := []Reminder{}
	for _, reminder := range reminders {
		if reminder.At.After(after) && !reminder.At.After(until) {
			due = append(due, reminder)
		}
	}
	return due
}

// NextDigest is the first digest time strictly after after, in loc.
func NextDigest(expr string, after time.Time, loc *time.Location) (time.Time, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.Next(after.In(loc)), nil
}

// DigestDue reports whether a digest fires in (after, until].
// An empty expression disables the digest.
func DigestDue(
	expr string,
	after time.Time,
	until time.Time,
	loc *time.Location,
) (bool, error) {
	if expr == "" {
		return false, nil
	}

	next, err := NextDigest(expr, after, loc)
	if err != nil {
		return false, err
	}

	return !next.After(until), nil
}
