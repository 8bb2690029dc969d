//nolint:mnd //no magic number
package config

import (
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/config"
)

type Config struct {
	Env              string
	Port             int
	Throttle         bool
	WebURL           string
	SentryDsn        string
	SampleRate       float64
	AccessExpiry     string
	RefreshExpiry    string
	DBDsn            string
	Release          string
	SupabaseUserID   string
	SupabaseProjRef  string
	SupabaseAPIKey   string
	DefaultUserEmail string
	Timezone         string
	PlannerFirstHour int
	PlannerLastHour  int
	ReminderLead     string
	DigestCron       string
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.Throttle = parser.EnvBool("THROTTLE", true)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.AccessExpiry = parser.EnvStr("ACCESS_EXPIRY", "1h")
	cfg.RefreshExpiry = parser.EnvStr("REFRESH_EXPIRY", "7d")
	cfg.DBDsn = parser.EnvStr("DB_DSN", "postgres://postgres@localhost/postgres")
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.SupabaseUserID = parser.EnvStr("SUPABASE_USER_ID", "")
	cfg.SupabaseProjRef = parser.EnvStr("SUPABASE_PROJ_REF", "")
	cfg.SupabaseAPIKey = parser.EnvStr("SUPABASE_API_KEY", "")
	cfg.DefaultUserEmail = parser.EnvStr("DEFAULT_USER_EMAIL", "")

	cfg.Timezone = parser.EnvStr("TIMEZONE", "Europe/Warsaw")
	cfg.PlannerFirstHour = parser.EnvInt("PLANNER_FIRST_HOUR", 6)
	cfg.PlannerLastHour = parser.EnvInt("PLANNER_LAST_HOUR", 23)
	cfg.ReminderLead = parser.EnvStr("REMINDER_LEAD", "15m")
	cfg.DigestCron = parser.EnvStr("DIGEST_CRON", "0 7 * * *")

	return cfg
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (cfg Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
