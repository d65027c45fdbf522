// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of submission attempts by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "form_submission_duration_seconds",
			Help: "Duration of the submission request in seconds",
		},
		[]string{"outcome"},
	)

	ValidationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validation_runs_total",
			Help: "Total number of validator passes by verdict",
		},
		[]string{"verdict"},
	)

	MembersLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "form_members_live",
			Help: "Number of member records currently present",
		},
	)

	GeolocationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_geolocation_requests_total",
			Help: "Total number of live-locate requests by result",
		},
		[]string{"result"},
	)
)
