// Package api provides the HTTP API for generating photo composites.
//
// The API is job-based: clients upload a set of photos, receive a job
// ID, poll the job until it completes, and download the rendered
// composites. Jobs and their outputs live in memory with a short TTL,
// so the API needs no database.
//
// Endpoints:
//
//	GET  /healthz                             - liveness and build info
//	POST /api/v1/jobs                         - upload photos, start a job
//	GET  /api/v1/jobs/{id}                    - job status and composites
//	GET  /api/v1/jobs/{id}/composites/{n}     - download one composite PNG
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/printworks/photomatrix/pkg/cache"
	"github.com/printworks/photomatrix/pkg/pipeline"
)

// DefaultMaxUploadBytes caps one job's multipart upload. Print photos
// run large, so the limit is generous.
const DefaultMaxUploadBytes = 256 << 20 // 256 MiB

// Config configures the API server.
type Config struct {
	// Runner executes the composite pipeline. Required.
	Runner *pipeline.Runner

	// Logger receives request and job logs. Defaults to log.Default().
	Logger *log.Logger

	// JobTTL bounds how long finished jobs and their composites stay
	// available. Defaults to cache.TTLJob.
	JobTTL time.Duration

	// MaxUploadBytes caps the multipart request size.
	// Defaults to DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// Server is the HTTP API server.
type Server struct {
	runner    *pipeline.Runner
	jobs      *JobStore
	logger    *log.Logger
	router    chi.Router
	maxUpload int64
}

// NewServer creates the API server and mounts its routes.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.JobTTL == 0 {
		cfg.JobTTL = cache.TTLJob
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		runner:    cfg.Runner,
		jobs:      NewJobStore(cfg.JobTTL),
		logger:    cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/jobs", s.handleCreateJob)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Get("/jobs/{id}/composites/{n}", s.handleGetComposite)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully. A background sweep evicts expired jobs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepExpired(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("api server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// sweepExpired periodically drops expired jobs so composite bytes don't
// accumulate.
func (s *Server) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.jobs.Cleanup(); n > 0 {
				s.logger.Debug("evicted expired jobs", "count", n)
			}
		}
	}
}
