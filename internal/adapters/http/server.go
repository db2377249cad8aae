package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return specYAML
}

// Server exposes a TaskRunner over HTTP.
type Server struct {
	Runner ports.TaskRunner

	metrics http.Handler
	logger  *slog.Logger
	router  routers.Router
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler. Requests under /v1 are validated
// against the embedded OpenAPI document before they reach the runner.
func NewHandler(runner ports.TaskRunner, opts ...Option) (http.Handler, error) {
	s := &Server{Runner: runner, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := openapi3.NewLoader().LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if s.router, err = legacy.NewRouter(doc); err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(specYAML)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(s.validate)
		v1.Post("/tasks", s.StartTask)
		v1.Post("/disambiguate", s.Disambiguate)
	})
	return r, nil
}

func (s *Server) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := s.router.FindRoute(r)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Warn("Rejected request", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartTask handles POST /v1/tasks.
func (s *Server) StartTask(w http.ResponseWriter, r *http.Request) {
	var task domain.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	res, err := s.Runner.StartTask(r.Context(), task)
	if err != nil {
		s.logger.Error("Task failed", "task_id", res.TaskID, "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type disambiguateRequest struct {
	Story string `json:"story"`
}

type disambiguateResponse struct {
	Sentences []string `json:"sentences"`
}

// Disambiguate handles POST /v1/disambiguate.
func (s *Server) Disambiguate(w http.ResponseWriter, r *http.Request) {
	var body disambiguateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	sentences, err := s.Runner.Disambiguate(r.Context(), body.Story)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if sentences == nil {
		sentences = []string{}
	}
	writeJSON(w, http.StatusOK, disambiguateResponse{Sentences: sentences})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
