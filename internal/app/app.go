// Package app assembles the service: configuration, registry population,
// and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ocrsift/ocrsift/internal/heuristic"
	"github.com/ocrsift/ocrsift/internal/llm"
	"github.com/ocrsift/ocrsift/internal/menu"
	"github.com/ocrsift/ocrsift/internal/ocr"
	"github.com/ocrsift/ocrsift/internal/pipeline"
	"github.com/ocrsift/ocrsift/internal/registry"
	"github.com/ocrsift/ocrsift/internal/schema"
	"github.com/ocrsift/ocrsift/internal/server"
)

// App holds the wired service.
type App struct {
	cfg      Config
	registry *registry.Registry
	srv      *server.Server
}

// BuildRegistry populates a fresh registry from the config: built-in
// schemas, then the LLM strategy, then the heuristic baseline. Registration
// order is trial order, so the model is always attempted before the rules
// and its disabled or failing states fall straight through to them.
func BuildRegistry(cfg Config) *registry.Registry {
	reg := registry.New()
	for _, s := range schema.Builtins() {
		reg.RegisterSchema(s)
	}

	client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
	extractor := llm.NewExtractor(client, cfg.LLMModel, cfg.LLMTimeout)
	if extractor.Enabled() {
		log.Info().Str("model", cfg.LLMModel).Str("base", cfg.LLMBaseURL).Msg("llm extraction enabled")
	} else {
		log.Warn().Msg("no LLM credential configured; heuristic extraction only")
	}
	reg.RegisterExtractor(extractor)
	reg.RegisterExtractor(heuristic.New())

	if cfg.EnableMenuPlugin {
		menu.Register(reg)
		log.Info().Msg("menu plugin registered")
	}
	return reg
}

// New wires the application from config.
func New(cfg Config) *App {
	reg := BuildRegistry(cfg)
	orch := pipeline.New(reg)
	ocrClient := &ocr.Client{
		BaseURL:    cfg.OCRBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	return &App{
		cfg:      cfg,
		registry: reg,
		srv:      server.New(reg, orch, ocrClient),
	}
}

// Registry exposes the populated registry, mainly for plugin registration
// before Run and for tests.
func (a *App) Registry() *registry.Registry { return a.registry }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    a.cfg.ListenAddr,
		Handler: a.srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.cfg.ListenAddr).Msg("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
