package ops

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MDSCJ/Data-Collection/internal/common/metrics"
)

func TestRouter_Health(t *testing.T) {
	fixed := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	router := NewRouter("household-form", func() time.Time { return fixed })

	for path, state := range map[string]string{"/healthz": "healthy", "/ready": "ready"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, state, body["status"])
			assert.Equal(t, "household-form", body["service"])
			assert.Equal(t, "2024-03-05T08:00:00Z", body["time"])
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	metrics.SubmissionsTotal.WithLabelValues("acknowledged").Inc()
	router := NewRouter("household-form", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "form_submissions_total")
}

func TestRouter_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter("household-form", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
