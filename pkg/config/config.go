package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Sync     SyncConfig
	API      APIConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path          string
	MigrationsDir string
}

type GitHubConfig struct {
	Token string
	Org   string
	Repos []string
}

type SyncConfig struct {
	// Sources enabled for background sync. Each name must be present
	// in the adapter registry assembled at startup.
	Sources      []string
	PollInterval int // seconds between job queue polls
	WindowDays   int // how far back a scheduled sync reaches
}

type APIConfig struct {
	Token string // empty disables token auth
}

// Load loads configuration from .env file and environment variables.
// The returned Config is passed by reference into every constructor
// that needs it; there is no package-level instance.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./teampulse.db"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		GitHub: GitHubConfig{
			Token: getEnv("GITHUB_TOKEN", ""),
			Org:   getEnv("GITHUB_ORG", ""),
			Repos: getEnvAsList("GITHUB_REPOS", nil),
		},
		Sync: SyncConfig{
			Sources:      getEnvAsList("SYNC_SOURCES", []string{"github"}),
			PollInterval: getEnvAsInt("SYNC_POLL_INTERVAL", 10),
			WindowDays:   getEnvAsInt("SYNC_WINDOW_DAYS", 30),
		},
		API: APIConfig{
			Token: getEnv("API_TOKEN", ""),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
