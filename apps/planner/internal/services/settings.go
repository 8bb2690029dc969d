package services

import (
	"context"
	"errors"

	"github.com/xdoubleu/essentia/v2/pkg/database"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/apps/planner/internal/repositories"
)

type SettingsService struct {
	settings *repositories.SettingsRepository
	defaults models.Settings
}

// Get falls back to the configured defaults for users that never saved
// their settings.
func (service *SettingsService) Get(
	ctx context.Context,
	owner string,
) (*models.Settings, error) {
	settings, err := service.settings.Get(ctx, owner)
	if errors.Is(err, database.ErrResourceNotFound) {
		defaults := service.defaults
		defaults.UserName = owner
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (service *SettingsService) Update(
	ctx context.Context,
	owner string,
	settingsDto *dtos.SettingsDto,
) error {
	return service.settings.Upsert(ctx, settingsDto.ToSettings(owner))
}
