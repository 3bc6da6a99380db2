// Package config reads the service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr   = ":8080"
	defaultCacheTTL   = 10 * time.Minute
	defaultSessionTTL = 7 * 24 * time.Hour
	defaultMinMatches = 3
)

type Config struct {
	App                   string
	HTTPAddr              string
	PostgresDSN           string
	PostgresMigrationsDir string
	DBPath                string
	DBMigrationsDir       string
	RedisURL              string
	CacheTTL              time.Duration
	SessionSecret         string
	SessionTTL            time.Duration
	LogLevel              string
	Location              *time.Location
	MinMatchesEff         int
	MinMatchesForm        int
	AdminEmail            string
	AdminPassword         string
}

// IsDev reports whether the dev-only routes and seed data are enabled.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.App, "dev")
}

// InLambda reports whether the process runs inside AWS Lambda.
func InLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// Load reads .env files outside Lambda, then the process environment.
// Malformed numbers, durations and timezones fall back to their defaults.
func Load() Config {
	if !InLambda() {
		_ = godotenv.Load(".env", ".env.local")
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		App:                   strings.ToLower(get("APP")),
		HTTPAddr:              get("HTTP_ADDR"),
		PostgresDSN:           get("POSTGRES_DSN"),
		PostgresMigrationsDir: get("POSTGRES_MIGRATIONS_DIR"),
		DBPath:                get("DB_PATH"),
		DBMigrationsDir:       get("DB_MIGRATIONS_DIR"),
		RedisURL:              get("REDIS_URL"),
		CacheTTL:              parseDuration(get("CACHE_TTL"), defaultCacheTTL),
		SessionSecret:         get("SESSION_SECRET"),
		SessionTTL:            parseDuration(get("SESSION_TTL"), defaultSessionTTL),
		LogLevel:              get("LOG_LEVEL"),
		Location:              parseLocation(get("APP_TIMEZONE")),
		MinMatchesEff:         parsePositiveInt(get("AWARDS_MIN_EFF"), defaultMinMatches),
		MinMatchesForm:        parsePositiveInt(get("AWARDS_MIN_FORM"), defaultMinMatches),
		AdminEmail:            get("ADMIN_EMAIL"),
		AdminPassword:         getenv("ADMIN_PASSWORD"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.SessionSecret == "" && cfg.IsDev() {
		cfg.SessionSecret = "petak-dev-secret"
	}
	return cfg
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

func parseLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
