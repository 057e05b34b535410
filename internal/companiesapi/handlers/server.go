// Package handlers serves the development companies API over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// CompanyStore is the storage the handlers read from.
type CompanyStore interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id models.CompanyID) (*models.Company, error)
	Ping(ctx context.Context) error
}

// Options tune the API to exercise the client's loading and error states.
type Options struct {
	// Delay is added before every /companies response.
	Delay time.Duration
	// FailStatus, when non-zero, is returned by /companies instead of data.
	FailStatus int
}

// Server serves the companies API.
type Server struct {
	httpServer *http.Server
	store      CompanyStore
	opts       Options
	logger     *zap.Logger
	endpoint   string
	listener   net.Listener
	errChan    chan error
}

// NewServer constructs a Server listening on port.
func NewServer(port int, store CompanyStore, opts Options, logger *zap.Logger) *Server {
	s := &Server{
		store:    store,
		opts:     opts,
		logger:   logger.Named("http"),
		endpoint: fmt.Sprintf(":%d", port),
		errChan:  make(chan error, 1),
	}
	s.httpServer = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(cors)

	r.Get("/healthz", s.health)
	r.Route("/companies", func(r chi.Router) {
		r.Use(s.simulate)
		r.Get("/", s.listCompanies)
		r.Get("/{id}", s.getCompany)
	})
	return r
}

// Start begins listening and serves in the background.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.endpoint)
	if err != nil {
		return fmt.Errorf("HTTP listen error: %w", err)
	}
	s.listener = lis

	s.logger.Info("Starting HTTP server", zap.String("endpoint", lis.Addr().String()))
	go func() {
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
		close(s.errChan)
	}()
	return nil
}

// Addr returns the listening address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.endpoint
	}
	return s.listener.Addr().String()
}

// Errors reports a serve failure, then closes.
func (s *Server) Errors() <-chan error {
	return s.errChan
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	s.logger.Info("Server stopped")
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.ListCompanies(r.Context())
	if err != nil {
		s.logger.Error("Failed to list companies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	id := models.CompanyID(chi.URLParam(r, "id"))
	company, err := s.store.GetCompany(r.Context(), id)
	switch {
	case errors.Is(err, e.ErrNotFound):
		writeError(w, http.StatusNotFound, "company not found")
		return
	case err != nil:
		s.logger.Error("Failed to get company", zap.String("id", string(id)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// simulate applies the configured delay and forced failure.
func (s *Server) simulate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Delay > 0 {
			select {
			case <-time.After(s.opts.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if s.opts.FailStatus != 0 {
			writeError(w, s.opts.FailStatus, http.StatusText(s.opts.FailStatus))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one log line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http_request",
				zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

// cors lets a browser front end on another port read the API.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
