// Package navserver exposes the navigation engine over HTTP: JSON
// endpoints for resolving and executing navigations, a WebSocket
// channel streaming route changes, and the Prometheus scrape endpoint.
package navserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfind-dev/wayfind/pkg/engine"
)

// Config configures the navigation server.
type Config struct {
	// Address is the listen address. Default: ":8080".
	Address string

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout for the HTTP server. Default: 5s.
	ReadHeaderTimeout time.Duration

	// WriteTimeout for the HTTP server. Default: 30s.
	WriteTimeout time.Duration

	// IdleTimeout for the HTTP server. Default: 120s.
	IdleTimeout time.Duration

	// CheckOrigin controls WebSocket origin checks.
	// Default: same-origin only (the websocket package default).
	CheckOrigin func(*http.Request) bool

	// MetricsGatherer backs the /metrics endpoint.
	// Default: prometheus.DefaultGatherer.
	MetricsGatherer prometheus.Gatherer

	// Logger for request and lifecycle events.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":8080",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MetricsGatherer:   prometheus.DefaultGatherer,
	}
}

// Server serves the navigation API.
type Server struct {
	engine   *engine.Engine
	config   Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	mux      *chi.Mux

	httpServer *http.Server

	hub *hub
}

// New creates a Server around an engine. Route changes are broadcast
// to connected WebSocket clients.
func New(eng *engine.Engine, config Config) *Server {
	defaults := DefaultConfig()
	if config.Address == "" {
		config.Address = defaults.Address
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.ReadHeaderTimeout == 0 {
		config.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.IdleTimeout == 0 {
		config.IdleTimeout = defaults.IdleTimeout
	}
	if config.MetricsGatherer == nil {
		config.MetricsGatherer = defaults.MetricsGatherer
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: eng,
		config: config,
		logger: logger.With("component", "navserver"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		hub: newHub(),
	}
	s.mux = s.routes()

	eng.OnRouteChange(s.broadcastRouteChange)

	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Route("/nav", func(r chi.Router) {
		r.Post("/navigate", s.handleNavigate)
		r.Post("/back", s.handleBack)
		r.Post("/modal/{handle}/close", s.handleCloseModal)
		r.Post("/transition/{trigger}", s.handleTransition)
		r.Get("/resolve", s.handleResolve)
		r.Get("/url/{routeID}", s.handleBuildURL)
		r.Get("/state", s.handleState)
		r.Get("/menu", s.handleMenu)
		r.Get("/ws", s.handleWS)
	})
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.config.MetricsGatherer, promhttp.HandlerOpts{}))

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("navigation server listening", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server and closes WebSocket clients.
func (s *Server) Shutdown() error {
	s.hub.closeAll()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("navigation server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
