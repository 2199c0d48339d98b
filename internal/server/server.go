// Package server exposes the registration form over HTTP. Drafts live in an
// in-memory Store; the browser runtime posts each edit to /validate and
// swaps the submit control according to the answer.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	chirender "github.com/go-chi/render"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signupform/internal/metrics"
	"github.com/goliatone/go-signupform/pkg/form"
	"github.com/goliatone/go-signupform/pkg/model"
	pkgopenapi "github.com/goliatone/go-signupform/pkg/openapi"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
	"github.com/goliatone/go-signupform/pkg/validation"
)

const (
	validatePath      = "/validate"
	defaultSubmitPath = "/submit"
	assetsPath        = "/assets"
	// fieldParam names the single field the runtime re-validates.
	fieldParam = "_field"
)

// Option customises a Server.
type Option func(*Server)

// SubmitHandler receives every accepted snapshot before the draft is
// discarded. An error answers 500 and keeps the draft, so the user can retry.
type SubmitHandler func(ctx context.Context, snapshot form.Snapshot) error

// WithSubmitHandler registers fn to run on every valid submission.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(s *Server) {
		s.onSubmit = fn
	}
}

// WithOrchestrator sets the pipeline that builds the form model and resolves
// the theme.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithRenderer replaces the HTML renderer.
func WithRenderer(renderer *vanilla.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithChecker replaces the rule engine used by drafts.
func WithChecker(checker form.Checker) Option {
	return func(s *Server) {
		if checker != nil {
			s.checker = checker
		}
	}
}

// WithStore replaces the draft store.
func WithStore(store *Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMetrics replaces the metric collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigins configures CORS.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append([]string(nil), origins...)
	}
}

// WithLocale sets the locale passed to renderers.
func WithLocale(locale string) Option {
	return func(s *Server) {
		s.locale = locale
	}
}

// WithTranslator localises labels and messages.
func WithTranslator(t render.Translator) Option {
	return func(s *Server) {
		s.translator = t
	}
}

// Server serves one form.
type Server struct {
	orch       *orchestrator.Orchestrator
	renderer   *vanilla.Renderer
	checker    form.Checker
	store      *Store
	metrics    *metrics.Metrics
	logger     *slog.Logger
	origins    []string
	locale     string
	translator render.Translator
	onSubmit   SubmitHandler

	form       model.FormModel
	submitPath string
	theme      *theme.RendererConfig
	openapi    []byte
	router     chi.Router
}

// New builds the form model once, exports its OpenAPI contract and mounts
// the routes.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		logger:  slog.Default(),
		origins: []string{"*"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.applyDefaults(); err != nil {
		return nil, err
	}

	built, err := s.orch.Model(ctx, orchestrator.Request{})
	if err != nil {
		return nil, fmt.Errorf("server: build form: %w", err)
	}
	s.form = built
	s.submitPath = built.Endpoint
	if s.submitPath == "" {
		s.submitPath = defaultSubmitPath
	}

	opts, err := s.orch.RenderOptions(orchestrator.Request{})
	if err != nil {
		return nil, fmt.Errorf("server: resolve theme: %w", err)
	}
	s.theme = opts.Theme

	contract := s.form
	contract.Endpoint = s.submitPath
	s.openapi, err = pkgopenapi.JSON(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("server: export contract: %w", err)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) applyDefaults() error {
	if s.orch == nil {
		selector, err := orchestrator.NewManifestSelector(orchestrator.DefaultManifest())
		if err != nil {
			return err
		}
		s.orch = orchestrator.New(orchestrator.WithThemeSelector(selector))
	}
	if s.renderer == nil {
		renderer, err := vanilla.New(
			vanilla.WithStylesheetURL(assetsPath+"/"+vanilla.StylesheetName),
			vanilla.WithRuntimeScriptURL(assetsPath+"/"+vanilla.RuntimeScriptName),
		)
		if err != nil {
			return fmt.Errorf("server: renderer: %w", err)
		}
		s.renderer = renderer
	}
	if s.checker == nil {
		engine, err := validation.New()
		if err != nil {
			return fmt.Errorf("server: rule engine: %w", err)
		}
		s.checker = engine
	}
	if s.store == nil {
		s.store = NewStore(30 * time.Minute)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID, s.recoverer, s.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Post(validatePath, s.handleValidate)
	r.Post(s.submitPath, s.handleSubmit)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Handle(assetsPath+"/*", http.StripPrefix(assetsPath+"/", http.FileServerFS(vanilla.AssetsFS())))
	r.Handle("/metrics", s.metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		chirender.PlainText(w, r, "ok")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Form returns the served form model.
func (s *Server) Form() model.FormModel {
	return s.form
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "form", s.form.ID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
