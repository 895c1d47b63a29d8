package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	PhotoBaseURL        string
	DBPath              string
	LogLevel            string
	FetchTimeoutSeconds int
	HistoryLimit        int
	Addr                string
	PhotoDir            string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		PhotoBaseURL:        envOr("PHOTO_BASE_URL", "http://localhost:8477/"),
		DBPath:              envOr("DB_PATH", "file:photodeck.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		FetchTimeoutSeconds: envIntOr("FETCH_TIMEOUT_SECONDS", 15),
		HistoryLimit:        envIntOr("HISTORY_LIMIT", 100),
		Addr:                envOr("ADDR", ":8477"),
		PhotoDir:            envOr("PHOTO_DIR", "photos"),
	}
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var problems []string

	if c.PhotoBaseURL == "" {
		problems = append(problems, "PHOTO_BASE_URL cannot be empty")
	} else if u, err := url.Parse(c.PhotoBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("PHOTO_BASE_URL must be an http(s) URL, got %q", c.PhotoBaseURL))
	}

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	if c.FetchTimeoutSeconds < 1 || c.FetchTimeoutSeconds > 300 {
		problems = append(problems, fmt.Sprintf("FETCH_TIMEOUT_SECONDS must be between 1 and 300, got %d", c.FetchTimeoutSeconds))
	}

	if c.HistoryLimit < 1 {
		problems = append(problems, fmt.Sprintf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit))
	}

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}

	if c.PhotoDir == "" {
		problems = append(problems, "PHOTO_DIR cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
