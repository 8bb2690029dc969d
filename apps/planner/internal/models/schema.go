package models

import "time"

// DaySchema is a routine of fixed time-labeled entries that applies to a
// set of weekdays.
type DaySchema struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Weekdays []int         `json:"weekdays"`
	Entries  []SchemaEntry `json:"entries"`
	UserName string        `json:"userName"`
}

type SchemaEntry struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

func (schema DaySchema) AppliesTo(weekday time.Weekday) bool {
	for _, day := range schema.Weekdays {
		if time.Weekday(day) == weekday {
			return true
		}
	}
	return false
}
