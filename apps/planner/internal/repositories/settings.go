package repositories

import (
	"context"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/apps/planner/internal/models"
)

type SettingsRepository struct {
	db postgres.DB
}

func (repo *SettingsRepository) Get(
	ctx context.Context,
	owner string,
) (*models.Settings, error) {
	query := `
		SELECT user_name, reminder_lead, digest_cron, reminders_enabled
		FROM planner.settings
		WHERE user_name = $1
	`

	var settings models.Settings
	err := repo.db.QueryRow(ctx, query, owner).Scan(
		&settings.UserName,
		&settings.ReminderLead,
		&settings.DigestCron,
		&settings.RemindersEnabled,
	)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &settings, nil
}

func (repo *SettingsRepository) Upsert(
	ctx context.Context,
	settings models.Settings,
) error {
	query := `
		INSERT INTO planner.settings
		(user_name, reminder_lead, digest_cron, reminders_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_name)
		DO UPDATE SET reminder_lead = $2, digest_cron = $3, reminders_enabled = $4
	`

	_, err := repo.db.Exec(
		ctx,
		query,
		settings.UserName,
		settings.ReminderLead,
		settings.DigestCron,
		settings.RemindersEnabled,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}
