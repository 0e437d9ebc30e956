package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	APIBaseURL string        `env:"API_BASE_URL,required"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// Empty means random keys, which log everybody out on restart.
	SessionSecret string `env:"SESSION_SECRET"`
	SessionSecure bool   `env:"SESSION_SECURE" envDefault:"false"`

	// Empty keeps the activity log in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	PageSize      int `env:"PAGE_SIZE" envDefault:"9"`
	ActivityLimit int `env:"ACTIVITY_LIMIT" envDefault:"5"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads the given dotenv files, or .env when present, and then the
// process environment.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	return parse(env.Options{})
}

// Database is the subset of the configuration the migrate command needs.
type Database struct {
	URL string `env:"DATABASE_URL,required"`
}

func LoadDatabase(envFiles ...string) (Database, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Database{}, err
	}
	var db Database
	if err := env.Parse(&db); err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	return db, nil
}

const defaultEnvFile = ".env"

// loadEnvFiles never overrides variables already set in the environment.
// Without explicit files it reads .env when present. An explicit file must exist.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", defaultEnvFile, err)
		}
		return nil
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.ActivityLimit < 0 {
		return fmt.Errorf("config: ACTIVITY_LIMIT must not be negative, got %d", c.ActivityLimit)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("config: LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
