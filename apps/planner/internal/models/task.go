package models

import "time"

type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Done          bool       `json:"done"`
	Priority      int        `json:"priority"`
	DueDate       *time.Time `json:"dueDate"`
	ScheduledTime *time.Time `json:"scheduledTime"`
	UserName      string     `json:"userName"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (task Task) IsScheduled() bool {
	return task.ScheduledTime != nil
}
