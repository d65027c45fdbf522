package main

import (
	"fmt"

	"github.com/MDSCJ/Data-Collection/internal/common/clock"
	"github.com/MDSCJ/Data-Collection/internal/common/config"
	commonhttp "github.com/MDSCJ/Data-Collection/internal/common/http"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/observability"
	"github.com/MDSCJ/Data-Collection/internal/common/validation"
	"github.com/MDSCJ/Data-Collection/internal/form/controller"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
	"github.com/MDSCJ/Data-Collection/internal/form/submission"
	"github.com/MDSCJ/Data-Collection/internal/form/validator"
	"github.com/MDSCJ/Data-Collection/pkg/registry"
)

type app struct {
	controller *controller.Controller
	form       *registry.FormRegistry
	obs        *observability.Observability
}

func buildApp(cfg *config.Config, log logger.Logger) (*app, error) {
	form := registry.Default()
	if cfg.Form.RegistryPath != "" {
		loaded, err := registry.LoadRegistry(cfg.Form.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("load form registry: %w", err)
		}
		form = loaded
	}

	v, err := validator.New(form, log)
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	pickerCfg := &location.Config{
		DefaultCenter: location.Coordinates{Latitude: cfg.Map.DefaultLatitude, Longitude: cfg.Map.DefaultLongitude},
		DefaultZoom:   cfg.Map.DefaultZoom,
		ReopenZoom:    cfg.Map.ReopenZoom,
		LiveZoom:      cfg.Map.LiveZoom,
		LocateTimeout: config.GetDuration(cfg.Geolocation.Timeout),
		HighAccuracy:  cfg.Geolocation.HighAccuracy,
		MaximumAge:    config.GetDuration(cfg.Geolocation.MaximumAge),
	}
	if err := pickerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("picker config: %w", err)
	}
	picker := location.NewPicker(location.PickerDependencies{
		Logger:  log,
		Locator: buildLocator(cfg.Geolocation, log),
	}, pickerCfg)

	schema := validation.PayloadSchema()
	if cfg.Submission.SchemaPath != "" {
		schema, err = validation.LoadSchemaFile(cfg.Submission.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("load payload schema: %w", err)
		}
	}
	subCfg := &submission.Config{
		Endpoint:        cfg.Submission.Endpoint,
		SecretToken:     cfg.Submission.SecretToken,
		IncludeSecret:   cfg.Submission.IncludeSecret,
		Timeout:         config.GetDuration(cfg.Submission.Timeout),
		ConfirmResponse: cfg.Submission.ConfirmResponse,
		TimestampLayout: cfg.Submission.TimestampLayout,
		Schema:          schema,
	}
	if err := subCfg.Validate(); err != nil {
		return nil, fmt.Errorf("submission config: %w", err)
	}

	obs := observability.Noop()
	if cfg.Metrics.Enabled {
		obs = observability.New(cfg.App.Name)
	}

	pipeline := submission.NewPipeline(submission.ServiceDependencies{
		Logger:        log,
		HTTPClient:    commonhttp.NewClient(subCfg.Timeout),
		Clock:         clock.NewSystemClock(),
		Observability: obs,
	}, subCfg)

	ctrl, err := controller.New(controller.Dependencies{
		Logger:    log,
		Registry:  form,
		Validator: v,
		Picker:    picker,
		Submitter: pipeline,
	})
	if err != nil {
		return nil, err
	}
	return &app{controller: ctrl, form: form, obs: obs}, nil
}

func buildLocator(cfg config.GeolocationConfig, log logger.Logger) location.Locator {
	switch cfg.Provider {
	case "static":
		return location.StaticLocator{Position: location.Coordinates{
			Latitude:  cfg.StaticLatitude,
			Longitude: cfg.StaticLongitude,
		}}
	case "http":
		return location.NewHTTPLocator(commonhttp.NewClient(config.GetDuration(cfg.Timeout)), cfg.URL, log)
	default:
		return nil
	}
}

func (a *app) fieldOrder() []string {
	names := make([]string, 0, len(a.form.Fields))
	for _, f := range a.form.Fields {
		names = append(names, f.Name)
	}
	return names
}
