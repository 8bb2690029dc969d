package calendar

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/apps/calendar/internal/repositories"
	"dzisiaj.app/apps/calendar/internal/services"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

type Calendar struct {
	logger       *slog.Logger
	ctx          context.Context
	ctxCancel    context.CancelFunc
	Config       config.Config
	tpl          *template.Template
	Services     *services.Services
	Repositories *repositories.Repositories
}

func New(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Calendar {
	tpl := template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(htmlTemplates, "templates/html/**/*.html"),
	)

	spandb := postgres.NewSpanDB(db)
	repos := repositories.New(spandb, cfg.Location())

	//nolint:exhaustruct //other fields are optional
	app := &Calendar{
		logger:       logger,
		Config:       cfg,
		tpl:          tpl,
		Repositories: repos,
		Services:     services.New(logger, cfg, repos, authService),
	}

	app.setContext()

	return app
}

func (app *Calendar) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)
	goose.SetTableName("calendar_goose_db_version")

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *Calendar) setContext() {
	ctx, cancel := context.WithCancel(context.Background())
	app.ctx = ctx
	app.ctxCancel = cancel
}

func (app *Calendar) GetName() string {
	return "calendar"
}
