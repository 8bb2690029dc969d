package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/helper"
)

type ReminderService struct {
	logger        *slog.Logger
	agenda        *AgendaService
	tasks         *TaskService
	settings      *SettingsService
	notifications *NotificationService
}

// Due lists the reminders of identity that fire in (after, until].
func (service *ReminderService) Due(
	ctx context.Context,
	identity string,
	after time.Time,
	until time.Time,
	lead time.Duration,
) ([]helper.Reminder, error) {
	occurrences, err := service.agenda.Occurrences(
		ctx,
		identity,
		after.Add(lead),
		until.Add(lead),
	)
	if err != nil {
		return nil, err
	}

	tasks, err := service.tasks.GetAll(ctx, identity)
	if err != nil {
		return nil, err
	}

	return helper.Due(helper.Reminders(occurrences, tasks, lead), after, until), nil
}

// Dispatch pushes the reminders and the digest that fall in (after, until]
// to the connected clients of identity. It returns the number of
// notifications delivered.
func (service *ReminderService) Dispatch(
	ctx context.Context,
	identity string,
	after time.Time,
	until time.Time,
) (int, error) {
	settings, err := service.settings.Get(ctx, identity)
	if err != nil {
		return 0, err
	}

	if !settings.RemindersEnabled || service.notifications.Connected(identity) == 0 {
		return 0, nil
	}

	lead, err := settings.Lead()
	if err != nil {
		return 0, err
	}

	due, err := service.Due(ctx, identity, after, until, lead)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		sent += service.notifications.Send(ctx, identity, dtos.NotificationDto{
			Type:     dtos.ReminderNotification,
			Reminder: &due[i],
			Plan:     nil,
		})
	}

	digestDue, err := helper.DigestDue(
		settings.DigestCron,
		after,
		until,
		service.agenda.Location(),
	)
	if err != nil {
		service.logger.Warn(
			"invalid digest schedule",
			slog.String("user", identity),
			logging.ErrAttr(err),
		)
		return sent, nil
	}

	if digestDue {
		plan, err := service.agenda.Plan(ctx, identity, until)
		if err != nil {
			return sent, err
		}

		sent += service.notifications.Send(ctx, identity, dtos.NotificationDto{
			Type:     dtos.DigestNotification,
			Reminder: nil,
			Plan:     plan,
		})
	}

	return sent, nil
}
