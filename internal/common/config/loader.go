// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultLatitude  = 20.5937
	DefaultLongitude = 78.9629
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like SUBMISSION_ENDPOINT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)
	bindKnownKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			// An unset variable expands to "" so validation sees a missing value.
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// bindKnownKeys makes AutomaticEnv see keys that are absent from every config file.
func bindKnownKeys(v *viper.Viper) {
	for _, key := range []string{
		"submission.endpoint",
		"submission.secret_token",
		"submission.include_secret",
		"geolocation.provider",
		"logging.level",
		"logging.output",
		"metrics.enabled",
		"metrics.address",
	} {
		_ = v.BindEnv(key)
	}
}

// overrideEmptyConfig fills secrets from the environment when the file left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Submission.Endpoint == "" {
		if val := os.Getenv("SUBMISSION_ENDPOINT"); val != "" {
			cfg.Submission.Endpoint = val
		}
	}
	if cfg.Submission.SecretToken == "" {
		if val := os.Getenv("SUBMISSION_SECRET_TOKEN"); val != "" {
			cfg.Submission.SecretToken = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "household-form"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Submission.Timeout == 0 {
		cfg.Submission.Timeout = 15000
	}
	if cfg.Submission.TimestampLayout == "" {
		cfg.Submission.TimestampLayout = "1/2/2006, 3:04:05 PM"
	}

	if cfg.Map.DefaultLatitude == 0 && cfg.Map.DefaultLongitude == 0 {
		cfg.Map.DefaultLatitude = DefaultLatitude
		cfg.Map.DefaultLongitude = DefaultLongitude
	}
	if cfg.Map.DefaultZoom == 0 {
		cfg.Map.DefaultZoom = 5
	}
	if cfg.Map.ReopenZoom == 0 {
		cfg.Map.ReopenZoom = 13
	}
	if cfg.Map.LiveZoom == 0 {
		cfg.Map.LiveZoom = 15
	}

	if cfg.Geolocation.Provider == "" {
		cfg.Geolocation.Provider = "http"
	}
	if cfg.Geolocation.URL == "" {
		cfg.Geolocation.URL = "https://ipapi.co/json/"
	}
	if cfg.Geolocation.Timeout == 0 {
		cfg.Geolocation.Timeout = 5000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "household-form.log"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Submission.Endpoint == "" {
		return fmt.Errorf("submission.endpoint is required")
	}
	u, err := url.Parse(cfg.Submission.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("submission.endpoint must be an absolute http(s) URL")
	}
	if cfg.Submission.IncludeSecret && cfg.Submission.SecretToken == "" {
		return fmt.Errorf("submission.secret_token is required when include_secret is set")
	}
	if cfg.Submission.Timeout < 0 {
		return fmt.Errorf("submission.timeout must be positive")
	}

	switch cfg.Geolocation.Provider {
	case "static", "http", "none":
	default:
		return fmt.Errorf("geolocation.provider must be one of static, http, none")
	}

	if cfg.Map.DefaultLatitude < -90 || cfg.Map.DefaultLatitude > 90 {
		return fmt.Errorf("map.default_latitude out of range")
	}
	if cfg.Map.DefaultLongitude < -180 || cfg.Map.DefaultLongitude > 180 {
		return fmt.Errorf("map.default_longitude out of range")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
