package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultHTTPAddr            = ":8080"
	defaultPprofAddr           = "localhost:6060"
	defaultArtistsTimeout      = 5 * time.Second
	defaultHealthCheckSchedule = "@every 1m"
)

var errNoDatabase = errors.New("no DB_CONNECTION_STRING provided")

type Config struct {
	DBConnectionString  string
	ArtistsServiceURL   string
	ArtistsTimeout      time.Duration
	HTTPAddr            string
	PprofAddr           string
	HealthCheckSchedule string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}
	return FromEnv()
}

// LoadDatabase is Load for commands that only talk to the database.
func LoadDatabase() (string, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}
	connStr := os.Getenv("DB_CONNECTION_STRING")
	if connStr == "" {
		return "", errNoDatabase
	}
	return connStr, nil
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DBConnectionString:  os.Getenv("DB_CONNECTION_STRING"),
		ArtistsServiceURL:   os.Getenv("ARTISTS_SERVICE_URL"),
		ArtistsTimeout:      defaultArtistsTimeout,
		HTTPAddr:            getEnv("HTTP_ADDR", defaultHTTPAddr),
		HealthCheckSchedule: getEnv("HEALTH_CHECK_SCHEDULE", defaultHealthCheckSchedule),
	}

	// An explicitly empty PPROF_ADDR turns the profiler off.
	if addr, ok := os.LookupEnv("PPROF_ADDR"); ok {
		cfg.PprofAddr = addr
	} else {
		cfg.PprofAddr = defaultPprofAddr
	}

	if raw := os.Getenv("ARTISTS_SERVICE_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ARTISTS_SERVICE_TIMEOUT %q: %w", raw, err)
		}
		cfg.ArtistsTimeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBConnectionString == "" {
		return errNoDatabase
	}
	if c.ArtistsServiceURL == "" {
		return errors.New("no ARTISTS_SERVICE_URL provided")
	}
	u, err := url.Parse(c.ArtistsServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ARTISTS_SERVICE_URL %q", c.ArtistsServiceURL)
	}
	if c.ArtistsTimeout <= 0 {
		return fmt.Errorf("ARTISTS_SERVICE_TIMEOUT must be positive, got %s", c.ArtistsTimeout)
	}
	if _, err := cron.ParseStandard(c.HealthCheckSchedule); err != nil {
		return fmt.Errorf("invalid HEALTH_CHECK_SCHEDULE %q: %w", c.HealthCheckSchedule, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
