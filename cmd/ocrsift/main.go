package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ocrsift/ocrsift/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		listenAddr string
		configPath string
		ocrBase    string
		llmBase    string
		llmModel   string
		llmKey     string
		llmTimeout time.Duration
		enableMenu bool
		verbose    bool
	)

	flag.StringVar(&listenAddr, "listen", "", "HTTP listen address (default :8001)")
	flag.StringVar(&configPath, "config", "ocrsift.yaml", "Path to optional YAML config file")
	flag.StringVar(&ocrBase, "ocr.base", "", "Base URL of the OCR service")
	flag.StringVar(&llmBase, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key; empty disables the LLM strategy")
	flag.DurationVar(&llmTimeout, "llm.timeout", 0, "Per-request LLM timeout (default 30s)")
	flag.BoolVar(&enableMenu, "plugins.menu", false, "Register the example menu plugin")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr:       listenAddr,
		OCRBaseURL:       ocrBase,
		LLMBaseURL:       llmBase,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		LLMTimeout:       llmTimeout,
		EnableMenuPlugin: enableMenu,
		Verbose:          verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if err := app.LoadConfigFile(configPath, &cfg); err != nil {
		log.Fatal().Err(err).Msg("config file")
	}
	app.ApplyDefaults(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg).Run(ctx); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}
