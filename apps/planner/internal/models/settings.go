package models

import (
	"time"

	"github.com/xhit/go-str2duration/v2"
)

type Settings struct {
	UserName         string `json:"userName"`
	ReminderLead     string `json:"reminderLead"`
	DigestCron       string `json:"digestCron"`
	RemindersEnabled bool   `json:"remindersEnabled"`
}

func (settings Settings) Lead() (time.Duration, error) {
	return str2duration.ParseDuration(settings.ReminderLead)
}
