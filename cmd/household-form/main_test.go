package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MDSCJ/Data-Collection/internal/common/config"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "household-form"},
		Submission: config.SubmissionConfig{
			Endpoint:        "https://script.example.com/macros/s/abc/exec",
			Timeout:         15000,
			TimestampLayout: "1/2/2006, 3:04:05 PM",
		},
		Map: config.MapConfig{
			DefaultLatitude:  20.5937,
			DefaultLongitude: 78.9629,
			DefaultZoom:      5,
			ReopenZoom:       13,
			LiveZoom:         15,
		},
		Geolocation: config.GeolocationConfig{
			Provider:        "static",
			Timeout:         5000,
			StaticLatitude:  6.9271,
			StaticLongitude: 79.8612,
		},
	}
}

func TestBuildLocator(t *testing.T) {
	log := logger.NewTestLogger(t)

	static := buildLocator(config.GeolocationConfig{Provider: "static", StaticLatitude: 1, StaticLongitude: 2}, log)
	assert.Equal(t, location.StaticLocator{Position: location.Coordinates{Latitude: 1, Longitude: 2}}, static)

	httpLoc := buildLocator(config.GeolocationConfig{Provider: "http", URL: "https://ipapi.co/json/", Timeout: 5000}, log)
	assert.IsType(t, &location.HTTPLocator{}, httpLoc)

	assert.Nil(t, buildLocator(config.GeolocationConfig{Provider: "none"}, log))
}

func TestBuildApp(t *testing.T) {
	a, err := buildApp(testConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"full_name", "phone", "address", "email"}, a.fieldOrder())
	v := a.controller.View()
	assert.Len(t, v.Members, 1)
	assert.False(t, v.SubmitEnabled)
}

func TestBuildApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "missing registry", mutate: func(c *config.Config) {
			c.Form.RegistryPath = filepath.Join(t.TempDir(), "missing.json")
		}},
		{name: "missing schema", mutate: func(c *config.Config) {
			c.Submission.SchemaPath = filepath.Join(t.TempDir(), "missing.json")
		}},
		{name: "bad endpoint", mutate: func(c *config.Config) { c.Submission.Endpoint = "not a url" }},
		{name: "zero locate timeout", mutate: func(c *config.Config) { c.Geolocation.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			_, err := buildApp(cfg, logger.NewTestLogger(t))
			assert.Error(t, err)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "household-form dev\n", out.String())
}
