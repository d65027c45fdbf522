package location

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/MDSCJ/Data-Collection/internal/common/errors"
	commonhttp "github.com/MDSCJ/Data-Collection/internal/common/http"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
)

// Cause classifies a failed device location query.
type Cause int

const (
	CauseUnknown Cause = iota
	CausePermissionDenied
	CauseUnavailable
	CauseTimeout
)

func (c Cause) String() string {
	switch c {
	case CausePermissionDenied:
		return "permission_denied"
	case CauseUnavailable:
		return "unavailable"
	case CauseTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Message is the advisory shown for the cause.
func (c Cause) Message() string {
	switch c {
	case CausePermissionDenied:
		return "Geolocation error: Permission denied. Please allow location access."
	case CauseUnavailable:
		return "Geolocation error: Location information is unavailable."
	case CauseTimeout:
		return "Geolocation error: The request to get user location timed out."
	default:
		return "Geolocation error: An unknown error occurred."
	}
}

func (c Cause) code() errors.ErrorCode {
	switch c {
	case CausePermissionDenied:
		return errors.ErrCodeGeolocationPermissionDenied
	case CauseUnavailable:
		return errors.ErrCodeGeolocationUnavailable
	case CauseTimeout:
		return errors.ErrCodeGeolocationTimeout
	default:
		return errors.ErrCodeGeolocationUnknown
	}
}

// LocateError is returned by a Locator that could not produce a fix.
type LocateError struct {
	Cause Cause
	Err   error
}

func (e *LocateError) Error() string {
	if e.Err == nil {
		return "locate: " + e.Cause.String()
	}
	return fmt.Sprintf("locate: %s: %v", e.Cause, e.Err)
}

func (e *LocateError) Unwrap() error { return e.Err }

// CauseOf extracts the cause from err, treating context deadlines as timeouts.
func CauseOf(err error) Cause {
	var le *LocateError
	if stderrors.As(err, &le) {
		return le.Cause
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return CauseTimeout
	}
	return CauseUnknown
}

// Options mirrors the usual one-shot position request settings.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Locator is the device geolocation capability.
type Locator interface {
	Locate(ctx context.Context, opts Options) (Coordinates, error)
}

// StaticLocator always reports the same position.
type StaticLocator struct {
	Position Coordinates
}

func (s StaticLocator) Locate(ctx context.Context, _ Options) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, &LocateError{Cause: contextCause(err), Err: err}
	}
	return s.Position, nil
}

// contextCause maps a context error: only an expired deadline is a timeout.
func contextCause(err error) Cause {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return CauseTimeout
	}
	return CauseUnknown
}

// HTTPLocator resolves the position from an IP geolocation service that
// answers with {"latitude": .., "longitude": ..}.
type HTTPLocator struct {
	client *commonhttp.Client
	url    string
	logger logger.Logger

	mu       sync.Mutex
	cached   Coordinates
	cachedAt time.Time
	now      func() time.Time
}

func NewHTTPLocator(client *commonhttp.Client, url string, log logger.Logger) *HTTPLocator {
	return &HTTPLocator{
		client: client,
		url:    url,
		logger: log.WithFields(map[string]interface{}{"component": "http-locator"}),
		now:    time.Now,
	}
}

type ipLookupResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

func (l *HTTPLocator) Locate(ctx context.Context, opts Options) (Coordinates, error) {
	if c, ok := l.fromCache(opts.MaximumAge); ok {
		return c, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	resp, err := l.client.GetJSON(ctx, l.url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Coordinates{}, &LocateError{Cause: contextCause(ctxErr), Err: ctxErr}
		}
		return Coordinates{}, &LocateError{Cause: CauseUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Coordinates{}, &LocateError{Cause: CausePermissionDenied, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Coordinates{}, &LocateError{Cause: CauseUnavailable, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return Coordinates{}, &LocateError{Cause: CauseUnknown, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var body ipLookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
		return Coordinates{}, &LocateError{Cause: CauseUnknown, Err: fmt.Errorf("decode response: %w", err)}
	}
	if body.Error || body.Latitude == nil || body.Longitude == nil {
		return Coordinates{}, &LocateError{Cause: CauseUnavailable, Err: fmt.Errorf("no position in response: %s", body.Reason)}
	}

	c := Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude}
	l.store(c)
	l.logger.Debug("position resolved", map[string]interface{}{
		"latitude":  c.Latitude,
		"longitude": c.Longitude,
	})
	return c, nil
}

func (l *HTTPLocator) fromCache(maxAge time.Duration) (Coordinates, bool) {
	if maxAge <= 0 {
		return Coordinates{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cachedAt.IsZero() || l.now().Sub(l.cachedAt) > maxAge {
		return Coordinates{}, false
	}
	return l.cached, true
}

func (l *HTTPLocator) store(c Coordinates) {
	l.mu.Lock()
	l.cached = c
	l.cachedAt = l.now()
	l.mu.Unlock()
}
