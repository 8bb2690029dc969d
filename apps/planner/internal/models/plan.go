package models

import "time"

type ItemKind string

const (
	KindSchema ItemKind = "schema"
	KindEvent  ItemKind = "event"
	KindTask   ItemKind = "task"
)

// PlanItem is one entry of a planner slot. SourceID identifies the record
// that actions apply to: the template id for events, the schema id for
// schema entries and the task id for tasks.
type PlanItem struct {
	Kind     ItemKind  `json:"type"`
	ID       string    `json:"id"`
	SourceID string    `json:"sourceId"`
	Title    string    `json:"title"`
	Place    string    `json:"place,omitempty"`
	Time     string    `json:"time"`
	Minute   int       `json:"-"`
	Start    time.Time `json:"start"`
	Done     bool      `json:"done"`
}

type Slot struct {
	Label string     `json:"label"`
	Hour  int        `json:"hour"`
	Items []PlanItem `json:"items"`
}

type DayPlan struct {
	Date    time.Time `json:"date"`
	Slots   []Slot    `json:"slots"`
	Backlog []Task    `json:"backlog"`
}
