package dtos

import (
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

const maxPriority = 3

type TaskDto struct {
	Title       string `schema:"title"`
	Description string `schema:"description"`
	Priority    int    `schema:"priority"`
	DueDate     string `schema:"dueDate"`
	When        string `schema:"when"`
}

func (dto *TaskDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "title", strings.TrimSpace(dto.Title), validate.IsNotEmpty)
	validate.Check(v, "priority", dto.Priority, isPriority)
	validate.Check(v, "dueDate", dto.DueDate, isOptionalDate)

	return v.Valid(), v.Errors()
}

// Due parses DueDate in loc. An empty value yields nil.
func (dto *TaskDto) Due(loc *time.Location) *time.Time {
	due, err := time.ParseInLocation(DateLayout, dto.DueDate, loc)
	if err != nil {
		return nil
	}
	return &due
}

// ScheduleDto places a task on the slot of a day. Slot is "HH:MM".
type ScheduleDto struct {
	Date string `schema:"date"`
	Slot string `schema:"slot"`
}

func (dto *ScheduleDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "date", dto.Date, isDate)
	validate.Check(v, "slot", dto.Slot, isClock)

	return v.Valid(), v.Errors()
}

type DoneDto struct {
	Done bool `schema:"done"`
}

func (dto *DoneDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}

func isPriority(value int) (bool, string) {
	if value < 0 || value > maxPriority {
		return false, "must be between 0 and 3"
	}
	return true, ""
}

func isClock(value string) (bool, string) {
	if _, err := time.Parse(ClockLayout, value); err != nil {
		return false, "must be a time (HH:MM)"
	}
	return true, ""
}
