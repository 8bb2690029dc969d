package services

import (
	"log/slog"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"dzisiaj.app/apps/planner/internal/helper"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/apps/planner/internal/repositories"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/config"
)

type Services struct {
	Auth          auth.Service
	Tasks         *TaskService
	Schemas       *SchemaService
	Settings      *SettingsService
	Agenda        *AgendaService
	Notifications *NotificationService
	Reminders     *ReminderService
	JobState      *JobStateService
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	jobQueue *threading.JobQueue,
	repos *repositories.Repositories,
	authService auth.Service,
) *Services {
	composer := helper.NewComposer(
		cfg.Location(),
		cfg.PlannerFirstHour,
		cfg.PlannerLastHour,
	)

	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)

	tasks := &TaskService{
		tasks:    repos.Tasks,
		composer: composer,
		parser:   parser,
	}
	schemas := &SchemaService{
		schemas: repos.Schemas,
	}
	settings := &SettingsService{
		settings: repos.Settings,
		defaults: models.Settings{
			UserName:         "",
			ReminderLead:     cfg.ReminderLead,
			DigestCron:       cfg.DigestCron,
			RemindersEnabled: true,
		},
	}
	agenda := &AgendaService{
		logger:   logger,
		events:   repos.Events,
		tasks:    tasks,
		schemas:  schemas,
		composer: composer,
	}
	notifications := NewNotificationService(logger)

	return &Services{
		Auth:          authService,
		Tasks:         tasks,
		Schemas:       schemas,
		Settings:      settings,
		Agenda:        agenda,
		Notifications: notifications,
		Reminders: &ReminderService{
			logger:        logger,
			agenda:        agenda,
			tasks:         tasks,
			settings:      settings,
			notifications: notifications,
		},
		JobState: NewJobStateService(logger, []string{cfg.WebURL}, jobQueue),
	}
}
