// Package server exposes tournaments and their rendered brackets over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /tournaments                    list (?q= fuzzy name filter)
//	POST   /tournaments                    create
//	GET    /tournaments/{id}               fetch
//	PUT    /tournaments/{id}               partial update (store.Patch)
//	DELETE /tournaments/{id}               delete
//	POST   /tournaments/{id}/winner        record a winner and advance it
//	GET    /tournaments/{id}/bracket.{fmt} rendered bracket (svg, png, pdf, json, dot)
//	POST   /render                         render posted rounds without storing them
//
// Rendered brackets are held per tournament and options. When a tournament's
// rounds stop rendering (for example after an update leaves a malformed
// lineage), the last good render is served with an X-Bracket-Error header
// instead of failing the request.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/store"
)

// HeaderRenderError carries the reason a stale render was served.
const HeaderRenderError = "X-Bracket-Error"

// DefaultMaxViews bounds the renders held for last-good fallback.
const DefaultMaxViews = 256

// Config configures the HTTP server.
type Config struct {
	Addr         string
	CORSOrigins  []string
	RateLimit    float64 // requests per second per client; 0 disables limiting
	RateBurst    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxViews     int // held renders; the least recently used is evicted beyond it
}

// Server serves the tournament API.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	opts   pipeline.Options
	cfg    Config
	logger *log.Logger

	mu    sync.Mutex
	views map[string]*heldView

	httpServer *http.Server
}

// New creates a server backed by s that renders with runner. opts supplies
// the default layout and render options; requests may override style, viz
// type and title.
func New(s store.Store, runner *pipeline.Runner, opts pipeline.Options, cfg Config, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxViews <= 0 {
		cfg.MaxViews = DefaultMaxViews
	}
	return &Server{
		store:  s,
		runner: runner,
		opts:   opts,
		cfg:    cfg,
		logger: logger,
		views:  make(map[string]*heldView),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	if s.cfg.RateLimit > 0 {
		r.Use(newRateLimiter(s.cfg.RateLimit, s.cfg.RateBurst).middleware)
	}

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Delete("/", s.handleDelete)
			r.Post("/winner", s.handleWinner)
			r.Get("/bracket.{format}", s.handleBracket)
		})
	})

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{HeaderRenderError},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("server shutdown", "err", err)
		return err
	}
	return nil
}

type heldView struct {
	view     *pipeline.View
	lastUsed time.Time
}

// view returns the held view for key, creating it with opts on first use.
// At most cfg.MaxViews views are held.
func (s *Server) view(key string, opts pipeline.Options) *pipeline.View {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.views[key]
	if !ok {
		for len(s.views) >= s.cfg.MaxViews {
			s.evictOldest()
		}
		h = &heldView{view: pipeline.NewView(s.runner, opts)}
		s.views[key] = h
	}
	h.lastUsed = now
	return h.view
}

func (s *Server) evictOldest() {
	var (
		oldest string
		at     time.Time
	)
	for k, h := range s.views {
		if oldest == "" || h.lastUsed.Before(at) {
			oldest, at = k, h.lastUsed
		}
	}
	delete(s.views, oldest)
}

// forget drops every held view of tournament id.
func (s *Server) forget(id string) {
	prefix := id + "|"
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.views {
		if strings.HasPrefix(k, prefix) {
			delete(s.views, k)
		}
	}
}
