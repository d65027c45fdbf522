package location

import (
	"context"
	stderrors "errors"

	"github.com/MDSCJ/Data-Collection/internal/common/errors"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/metrics"
)

type PickerDependencies struct {
	Logger     logger.Logger
	MapFactory MapFactory
	Locator    Locator // nil when the device has no location source
}

// Picker owns the transient marker (through its Map) and the committed Pin.
// State changes must happen on the form controller's thread; only Locate
// may run elsewhere.
type Picker struct {
	config  *Config
	logger  logger.Logger
	factory MapFactory
	locator Locator

	view        Map
	initialized bool
	open        bool
	locating    bool
	liveFailed  bool
	pin         Pin
	advisory    Advisory
}

func NewPicker(deps PickerDependencies, config *Config) *Picker {
	if config == nil {
		config = DefaultConfig()
	}
	factory := deps.MapFactory
	if factory == nil {
		factory = NewGridMap
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Picker{
		config:  config,
		logger:  log.WithFields(map[string]interface{}{"component": "location-picker"}),
		factory: factory,
		locator: deps.Locator,
	}
}

// Open shows the picker. The map is created on first use and recentred afterwards.
func (p *Picker) Open() {
	p.open = true
	p.liveFailed = false
	center := p.config.DefaultCenter
	if p.pin.Pinned {
		center = p.pin.Coordinates()
	}

	if !p.initialized {
		view, err := p.factory(center, p.config.DefaultZoom)
		if err != nil {
			p.logger.Error("map initialization failed", map[string]interface{}{"error": err.Error()})
			p.setAdvisory(AdvisoryMapFailed, true)
			return
		}
		p.view = view
		p.initialized = true
		if _, ok := p.view.Marker(); !ok {
			p.view.SetMarker(center)
		}
	} else {
		p.view.SetView(center, p.config.ReopenZoom)
		p.view.SetMarker(center)
	}
	p.setAdvisory(AdvisorySelect, false)
}

// Close hides the picker without committing anything.
func (p *Picker) Close() {
	p.open = false
}

// MoveMarker handles a marker drag.
func (p *Picker) MoveMarker(c Coordinates) bool {
	if !p.initialized {
		return false
	}
	p.view.SetMarker(c)
	p.liveFailed = false
	m, _ := p.view.Marker()
	p.setAdvisory(markerAdvisory(m), false)
	return true
}

// ClickMap moves the marker to the clicked point.
func (p *Picker) ClickMap(c Coordinates) bool {
	return p.MoveMarker(c)
}

// BeginLiveLocate validates that a live-locate request may start and marks it
// in flight. The picker is opened first if needed.
func (p *Picker) BeginLiveLocate() error {
	if p.locating {
		p.setAdvisory(AdvisoryBusy, false)
		return errors.NewGeolocationError(errors.ErrCodeGeolocationInFlight, nil)
	}
	if p.locator == nil {
		p.setAdvisory(AdvisoryUnsupported, true)
		metrics.GeolocationRequests.WithLabelValues("unsupported").Inc()
		return errors.NewGeolocationError(errors.ErrCodeGeolocationUnsupported, nil)
	}
	if !p.open {
		p.Open()
	}
	if !p.initialized {
		return errors.NewGeolocationError(errors.ErrCodeGeolocationUnavailable, nil)
	}
	p.locating = true
	p.setAdvisory(AdvisoryFinding, false)
	return nil
}

// Locate queries the device location source, bounded by the configured
// timeout. It reads no picker state besides configuration and is safe to
// call from another goroutine.
func (p *Picker) Locate(ctx context.Context) (Coordinates, error) {
	if p.locator == nil {
		return Coordinates{}, &LocateError{Cause: CauseUnavailable}
	}
	ctx, cancel := context.WithTimeout(ctx, p.config.LocateTimeout)
	defer cancel()

	c, err := p.locator.Locate(ctx, p.config.options())
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) && CauseOf(err) == CauseUnknown {
			err = &LocateError{Cause: CauseTimeout, Err: err}
		}
		return Coordinates{}, err
	}
	return c, nil
}

// FinishLiveLocate applies the outcome of Locate. Failures only change the
// advisory; the committed pin is never touched.
func (p *Picker) FinishLiveLocate(c Coordinates, err error) error {
	p.locating = false
	if err != nil {
		cause := CauseOf(err)
		p.liveFailed = true
		p.setAdvisory(cause.Message(), true)
		metrics.GeolocationRequests.WithLabelValues(cause.String()).Inc()
		p.logger.Warn("live location failed", map[string]interface{}{
			"cause": cause.String(),
			"error": err.Error(),
		})
		return errors.NewGeolocationError(cause.code(), err)
	}
	metrics.GeolocationRequests.WithLabelValues("ok").Inc()
	p.liveFailed = false
	if p.initialized {
		p.view.SetView(c, p.config.LiveZoom)
		p.view.SetMarker(c)
	}
	p.setAdvisory(liveAdvisory(c), false)
	return nil
}

// Confirm commits the marker position as the pin and closes the picker.
// After a failed live-locate the marker is only placeholder placement, so
// Confirm is refused until the user moves it or reopens the picker.
func (p *Picker) Confirm() error {
	if !p.initialized || p.liveFailed {
		p.setAdvisory(AdvisoryNoMarker, true)
		return errors.NewLocationNotSelectedError()
	}
	m, ok := p.view.Marker()
	if !ok {
		p.setAdvisory(AdvisoryNoMarker, true)
		return errors.NewLocationNotSelectedError()
	}
	p.pin = Pin{
		Latitude:  roundCommitted(m.Latitude),
		Longitude: roundCommitted(m.Longitude),
		Pinned:    true,
	}
	p.open = false
	p.logger.Info("location pinned", map[string]interface{}{
		"latitude":  p.pin.LatitudeText(),
		"longitude": p.pin.LongitudeText(),
	})
	return nil
}

// Reset returns to the unpinned state. The map instance is kept for reuse.
func (p *Picker) Reset() {
	p.pin = Pin{}
	p.open = false
	p.liveFailed = false
	p.advisory = Advisory{}
}

func (p *Picker) Pin() Pin           { return p.pin }
func (p *Picker) IsOpen() bool       { return p.open }
func (p *Picker) Initialized() bool  { return p.initialized }
func (p *Picker) Locating() bool     { return p.locating }
func (p *Picker) Advisory() Advisory { return p.advisory }

// View reports the map centre and zoom, zero before the map exists.
func (p *Picker) View() (Coordinates, int) {
	if !p.initialized {
		return Coordinates{}, 0
	}
	return p.view.View()
}

// Marker reports the transient marker position, if the map exists.
func (p *Picker) Marker() (Coordinates, bool) {
	if !p.initialized {
		return Coordinates{}, false
	}
	return p.view.Marker()
}

func (p *Picker) setAdvisory(text string, isError bool) {
	p.advisory = Advisory{Text: text, IsError: isError}
}
