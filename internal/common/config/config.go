// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Submission  SubmissionConfig  `mapstructure:"submission"`
	Map         MapConfig         `mapstructure:"map"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	Form        FormConfig        `mapstructure:"form"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// SubmissionConfig holds settings for the outbound POST.
type SubmissionConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	SecretToken     string `mapstructure:"secret_token"`
	IncludeSecret   bool   `mapstructure:"include_secret"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
	ConfirmResponse bool   `mapstructure:"confirm_response"`
	TimestampLayout string `mapstructure:"timestamp_layout"`
	SchemaPath      string `mapstructure:"schema_path"`
}

// MapConfig holds the picker's default view.
type MapConfig struct {
	DefaultLatitude  float64 `mapstructure:"default_latitude"`
	DefaultLongitude float64 `mapstructure:"default_longitude"`
	DefaultZoom      int     `mapstructure:"default_zoom"`
	ReopenZoom       int     `mapstructure:"reopen_zoom"`
	LiveZoom         int     `mapstructure:"live_zoom"`
}

// GeolocationConfig selects and tunes the device location source.
type GeolocationConfig struct {
	Provider        string  `mapstructure:"provider"` // static | http | none
	URL             string  `mapstructure:"url"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
	HighAccuracy    bool    `mapstructure:"high_accuracy"`
	MaximumAge      int     `mapstructure:"maximum_age"` // milliseconds
	StaticLatitude  float64 `mapstructure:"static_latitude"`
	StaticLongitude float64 `mapstructure:"static_longitude"`
}

// FormConfig points at the respondent field definitions.
type FormConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the ops listener serving /metrics and /healthz.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
