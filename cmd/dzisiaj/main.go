package main

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/supabase-community/gotrue-go"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	configtools "github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"

	"dzisiaj.app/cmd/dzisiaj/internal/services"
	"dzisiaj.app/internal/config"
)

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

type Application struct {
	logger   *slog.Logger
	config   config.Config
	services *services.Services
	apps     *Apps
	tpl      *template.Template
}

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env, newLogHandler(cfg.Env)))
	db, err := postgres.Connect(
		logger,
		cfg.DBDsn,
		25, //nolint:mnd //no magic number
		"15m",
		60,             //nolint:mnd //no magic number
		10*time.Second, //nolint:mnd //no magic number
		5*time.Minute,  //nolint:mnd //no magic number
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	supabase := gotrue.New(
		cfg.SupabaseProjRef,
		cfg.SupabaseAPIKey,
	)

	app := NewApplication(logger, cfg, db, supabase)
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     app.Routes(),
		IdleTimeout: time.Minute,
		ReadTimeout: 5 * time.Second, //nolint:mnd //no magic number
		// notification sockets are long-lived
		WriteTimeout: 0,
	}
	err = httptools.Serve(logger, srv, cfg.Env)
	if err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

func newLogHandler(env string) slog.Handler {
	if env == configtools.DevEnv {
		return tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.NewTextHandler(os.Stdout, nil)
}

func NewApplication(
	logger *slog.Logger,
	config config.Config,
	db *pgxpool.Pool,
	supabaseClient gotrue.Client,
) *Application {
	tpl := template.Must(template.ParseFS(htmlTemplates, "templates/html/**/*.html"))

	//nolint:exhaustruct //other fields are optional
	app := &Application{
		logger:   logger,
		config:   config,
		services: services.New(config, supabaseClient, tpl),
		tpl:      tpl,
	}

	apps := NewApps(app.services.Auth, logger, config, db)

	err := apps.ApplyMigrations(db)
	if err != nil {
		panic(err)
	}

	app.apps = apps

	return app
}
