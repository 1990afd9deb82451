package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quantix/internal"
	"quantix/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port          string
	GinMode       string
	ReloadTimeout time.Duration
}

// DataConfig locates the student data file. An empty File means the
// built-in synthetic class is used.
type DataConfig struct {
	File         string
	Sheet        string // XLSX only
	DecimalComma bool
}

// AnalysisConfig tunes derived views
type AnalysisConfig struct {
	HistogramBins int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads an optional .env file, then environment variables, and
// validates the result
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to read .env")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	bins, err := getEnvPositiveInt("HISTOGRAM_BINS", 10)
	if err != nil {
		return nil, err
	}

	reloadTimeout, err := getEnvDuration("RELOAD_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	decimalComma, err := getEnvBool("DECIMAL_COMMA", true)
	if err != nil {
		return nil, err
	}

	level := internal.LogLevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, ok := internal.ParseLogLevel(raw)
		if !ok {
			return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", raw))
		}
		level = parsed
	}

	config := &Config{
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8080"),
			GinMode:       getEnvOrDefault("GIN_MODE", "release"),
			ReloadTimeout: reloadTimeout,
		},
		Data: DataConfig{
			File:         getEnvOrDefault("DATA_FILE", ""),
			Sheet:        getEnvOrDefault("DATA_SHEET", "Sheet1"),
			DecimalComma: decimalComma,
		},
		Analysis: AnalysisConfig{HistogramBins: bins},
		Log:      LogConfig{Level: level},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if port, err := strconv.Atoi(config.Server.Port); err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("PORT %q is not a valid port", config.Server.Port))
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GIN_MODE %q must be debug, release or test", config.Server.GinMode))
	}
	if config.Data.File != "" {
		switch strings.ToLower(filepath.Ext(config.Data.File)) {
		case ".csv", ".xlsx":
		default:
			return errors.ConfigInvalid(fmt.Sprintf("DATA_FILE %q must be a .csv or .xlsx file", config.Data.File))
		}
	}
	if config.Server.ReloadTimeout <= 0 {
		return errors.ConfigInvalid("RELOAD_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s %q must be a positive integer", key, value))
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(fmt.Sprintf("%s %q must be true or false", key, value))
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s %q must be a duration such as 10s", key, value))
	}
	return d, nil
}
