package models

import (
	"fmt"
	"strings"
	"time"
)

type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

//nolint:gochecknoglobals //enum values
var Repeats = []Repeat{RepeatNone, RepeatWeekly, RepeatMonthly, RepeatYearly}

// Event is a stored calendar record. For recurring series it is the
// template occurrence, individual instances are never persisted.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Place       string    `json:"place"`
	Share       *string   `json:"share"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Repeat      Repeat    `json:"repeat"`
	UserName    string    `json:"userName"`
}

func ParseRepeat(value string) (Repeat, error) {
	switch Repeat(strings.ToLower(strings.TrimSpace(value))) {
	case "", RepeatNone:
		return RepeatNone, nil
	case RepeatWeekly:
		return RepeatWeekly, nil
	case RepeatMonthly:
		return RepeatMonthly, nil
	case RepeatYearly:
		return RepeatYearly, nil
	default:
		return "", fmt.Errorf("unknown repeat rule %q", value)
	}
}

func (event Event) IsRecurring() bool {
	return event.Repeat != RepeatNone
}

// In returns the event with its times expressed in loc.
func (event Event) In(loc *time.Location) Event {
	event.StartTime = event.StartTime.In(loc)
	event.EndTime = event.EndTime.In(loc)
	return event
}

func (event Event) IsOwnedBy(identity string) bool {
	return event.UserName == identity
}
