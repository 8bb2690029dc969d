package services

import (
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"dzisiaj.app/apps/calendar/internal/repositories"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/config"
)

const (
	importWorkers   = 4
	importQueueSize = 100
)

type Services struct {
	Auth   auth.Service
	Events *EventService
	ICS    *ICSService
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	repos *repositories.Repositories,
	authService auth.Service,
) *Services {
	loc := cfg.Location()

	return &Services{
		Auth: authService,
		Events: &EventService{
			logger:   logger,
			store:    repos.Events,
			location: loc,
		},
		ICS: &ICSService{
			logger:     logger,
			store:      repos.Events,
			feeds:      repos.Feeds,
			location:   loc,
			workerPool: threading.NewWorkerPool(
				logger,
				importWorkers,
				importQueueSize,
			),
		},
	}
}
