package dtos

import (
	"github.com/robfig/cron/v3"
	"github.com/xdoubleu/essentia/v2/pkg/validate"
	"github.com/xhit/go-str2duration/v2"

	"dzisiaj.app/apps/planner/internal/models"
)

type SettingsDto struct {
	ReminderLead     string `schema:"reminderLead"`
	DigestCron       string `schema:"digestCron"`
	RemindersEnabled bool   `schema:"remindersEnabled"`
}

func (dto *SettingsDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "reminderLead", dto.ReminderLead, isDuration)
	validate.Check(v, "digestCron", dto.DigestCron, isCron)

	return v.Valid(), v.Errors()
}

func (dto *SettingsDto) ToSettings(owner string) models.Settings {
	return models.Settings{
		UserName:         owner,
		ReminderLead:     dto.ReminderLead,
		DigestCron:       dto.DigestCron,
		RemindersEnabled: dto.RemindersEnabled,
	}
}

func isDuration(value string) (bool, string) {
	lead, err := str2duration.ParseDuration(value)
	if err != nil || lead < 0 {
		return false, "must be a duration like 15m or 1h"
	}
	return true, ""
}

func isCron(value string) (bool, string) {
	if value == "" {
		return true, ""
	}
	if _, err := cron.ParseStandard(value); err != nil {
		return false, "must be a cron expression like 0 7 * * *"
	}
	return true, ""
}
