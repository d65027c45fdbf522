// internal/common/ops/router.go
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MDSCJ/Data-Collection/internal/common/logger"
)

// NewRouter serves the health and metrics endpoints.
func NewRouter(service string, now func() time.Time) http.Handler {
	if now == nil {
		now = time.Now
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	status := func(state string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":  state,
				"service": service,
				"time":    now().Format(time.RFC3339),
			})
		}
	}
	r.Get("/healthz", status("healthy"))
	r.Get("/ready", status("ready"))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func NewServer(addr, service string, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(service, nil),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Start listens in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("ops server listening", map[string]interface{}{"address": s.srv.Addr})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ops server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
