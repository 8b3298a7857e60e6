// Package server wires the form schema, the submission store, and the HTML
// renderer behind one chi router: a JSON API for programmatic clients and
// server-rendered pages for browsers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/formdeck/formdeck/internal/store"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/renderers/vanilla"
)

// DefaultAddr is the listen address used when the caller supplies none.
const DefaultAddr = ":5000"

type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger sets the structured logger used by handlers and middleware.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTheme applies a theme to the rendered pages.
func WithTheme(theme *render.ThemeConfig) Option {
	return func(s *Server) {
		s.theme = theme
	}
}

// WithPageSize overrides the default page size for submission listings.
func WithPageSize(size int) Option {
	return func(s *Server) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// Server hosts the form API and the browser pages.
type Server struct {
	store    *store.Store
	html     render.PageRenderer
	theme    *render.ThemeConfig
	log      *zap.Logger
	addr     string
	pageSize int
}

// New builds a server around a submission store and a page renderer,
// typically resolved from a render.Registry.
func New(st *store.Store, html render.PageRenderer, options ...Option) *Server {
	s := &Server{
		store:    st,
		html:     html,
		log:      zap.NewNop(),
		addr:     DefaultAddr,
		pageSize: store.DefaultLimit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Handler assembles the routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(s.log))
	r.Use(RequestLogger(s.log))
	r.Use(CORS)

	r.Get("/api/form-schema", s.handleSchema)
	r.Route("/api/submissions", func(r chi.Router) {
		r.Post("/", s.handleCreateSubmission)
		r.Get("/", s.handleListSubmissions)
	})

	r.Get("/", s.handleFormPage)
	r.Post("/submit", s.handleSubmitForm)
	r.Get("/submissions", s.handleSubmissionsPage)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("server listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	}
}
