package main

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/apps/calendar"
	"dzisiaj.app/apps/planner"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/config"
)

type Apps struct {
	apps []App
}

type App interface {
	Routes(prefix string, mux *http.ServeMux)
	ApplyMigrations(db *pgxpool.Pool) error
	GetName() string
}

func NewApps(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Apps {
	apps := &Apps{
		apps: []App{},
	}

	// calendar owns the events table the planner reads, so it migrates first
	apps.addApp(calendar.New(authService, logger, cfg, db))
	apps.addApp(planner.New(authService, logger, cfg, db))

	return apps
}

func (apps *Apps) ApplyMigrations(db *pgxpool.Pool) error {
	for _, app := range apps.apps {
		err := app.ApplyMigrations(db)
		if err != nil {
			return err
		}
	}
	return nil
}

func (apps *Apps) Routes(mux *http.ServeMux) {
	for _, app := range apps.apps {
		app.Routes(app.GetName(), mux)
	}
}

func (apps *Apps) Names() []string {
	names := []string{}
	for _, app := range apps.apps {
		names = append(names, app.GetName())
	}
	return names
}

func (apps *Apps) addApp(app App) {
	apps.apps = append(apps.apps, app)
}
