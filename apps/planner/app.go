package planner

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"dzisiaj.app/apps/planner/internal/jobs"
	"dzisiaj.app/apps/planner/internal/repositories"
	"dzisiaj.app/apps/planner/internal/services"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

type Planner struct {
	logger       *slog.Logger
	ctx          context.Context
	ctxCancel    context.CancelFunc
	Config       config.Config
	tpl          *template.Template
	jobQueue     *threading.JobQueue
	Services     *services.Services
	Repositories *repositories.Repositories
}

func New(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Planner {
	return NewInner(authService, logger, cfg, db, time.Now)
}

// NewInner allows replacing the clock the reminder job reads.
func NewInner(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
	now func() time.Time,
) *Planner {
	tpl := template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(htmlTemplates, "templates/html/**/*.html"),
	)

	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 2, 100)

	spandb := postgres.NewSpanDB(db)
	repos := repositories.New(spandb, cfg.Location())

	//nolint:exhaustruct //other fields are optional
	app := &Planner{
		logger:       logger,
		Config:       cfg,
		tpl:          tpl,
		jobQueue:     jobQueue,
		Repositories: repos,
		Services:     services.New(logger, cfg, jobQueue, repos, authService),
	}

	app.setContext()
	app.setJobs(authService, now)

	return app
}

func (app *Planner) setJobs(authService auth.Service, now func() time.Time) {
	err := app.jobQueue.AddJob(
		jobs.NewRemindersJob(
			authService,
			app.Services.Reminders,
			app.Config.DefaultUserEmail,
			now,
		),
		app.Services.JobState.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.JobState.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *Planner) setContext() {
	ctx, cancel := context.WithCancel(context.Background())
	app.ctx = ctx
	app.ctxCancel = cancel
}

func (app *Planner) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)
	goose.SetTableName("planner_goose_db_version")

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *Planner) GetName() string {
	return "planner"
}
