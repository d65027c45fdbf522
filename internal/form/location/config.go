package location

import (
	"fmt"
	"time"
)

type Config struct {
	DefaultCenter Coordinates   `mapstructure:"default_center"`
	DefaultZoom   int           `mapstructure:"default_zoom"`
	ReopenZoom    int           `mapstructure:"reopen_zoom"`
	LiveZoom      int           `mapstructure:"live_zoom"`
	LocateTimeout time.Duration `mapstructure:"locate_timeout"`
	HighAccuracy  bool          `mapstructure:"high_accuracy"`
	MaximumAge    time.Duration `mapstructure:"maximum_age"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultCenter: Coordinates{Latitude: 20.5937, Longitude: 78.9629},
		DefaultZoom:   5,
		ReopenZoom:    13,
		LiveZoom:      15,
		LocateTimeout: 5 * time.Second,
		HighAccuracy:  true,
	}
}

func (c *Config) Validate() error {
	if c.LocateTimeout <= 0 {
		return fmt.Errorf("locate_timeout must be positive")
	}
	if c.DefaultZoom < 0 || c.ReopenZoom < 0 || c.LiveZoom < 0 {
		return fmt.Errorf("zoom levels must not be negative")
	}
	if c.DefaultCenter.Latitude < -90 || c.DefaultCenter.Latitude > 90 {
		return fmt.Errorf("default_center latitude out of range")
	}
	if c.DefaultCenter.Longitude < -180 || c.DefaultCenter.Longitude > 180 {
		return fmt.Errorf("default_center longitude out of range")
	}
	return nil
}

func (c *Config) options() Options {
	return Options{
		HighAccuracy: c.HighAccuracy,
		Timeout:      c.LocateTimeout,
		MaximumAge:   c.MaximumAge,
	}
}
