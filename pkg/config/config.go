package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API    APIConfig
	State  StateConfig
	Export ExportConfig
	Log    LogConfig
}

// APIConfig describes how the client reaches the tutoring backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StateConfig locates the durable client state on disk.
type StateConfig struct {
	Dir string
}

// ExportConfig locates generated CSV/PDF exports.
type ExportConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if _, statErr := os.Stat(".env"); !os.IsNotExist(statErr) {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: NormalizeBaseURL(v.GetString("API_BASE_URL")),
		Timeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 15*time.Second),
	}

	cfg.State = StateConfig{Dir: expandHome(v.GetString("STATE_DIR"))}
	cfg.Export = ExportConfig{Dir: expandHome(v.GetString("EXPORT_DIR"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("HTTP_TIMEOUT", "15s")

	v.SetDefault("STATE_DIR", "~/.tutorhub")
	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// NormalizeBaseURL strips a trailing slash and appends an /api segment
// unless the URL already ends with one.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return trimmed
	}
	if strings.HasSuffix(trimmed, "/api") {
		return trimmed
	}
	return trimmed + "/api"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
