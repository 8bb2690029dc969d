package dtos

import (
	"time"

	"dzisiaj.app/apps/planner/internal/helper"
	"dzisiaj.app/apps/planner/internal/models"
)

type SubscribeMessageDto struct {
	Subject string `json:"subject"`
}

type StateMessageDto struct {
	LastRefresh  *time.Time `json:"lastRefresh"`
	IsRefreshing bool       `json:"isRefreshing"`
}

func (dto SubscribeMessageDto) Topic() string {
	return dto.Subject
}

func (dto SubscribeMessageDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}

type NotificationType string

const (
	ReminderNotification NotificationType = "reminder"
	DigestNotification   NotificationType = "digest"
)

// NotificationDto is pushed to connected planner clients. Reminder is set
// for reminders, Plan for the daily digest.
type NotificationDto struct {
	Type     NotificationType `json:"type"`
	Reminder *helper.Reminder `json:"reminder,omitempty"`
	Plan     *models.DayPlan  `json:"plan,omitempty"`
}
