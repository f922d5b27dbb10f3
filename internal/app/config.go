package app

import (
	"os"
	"strings"
	"time"
)

// Config carries everything the service needs. Precedence is flags > env >
// config file > defaults; the binary applies flags first, then
// ApplyEnvToConfig for the gaps, then ApplyDefaults.
type Config struct {
	ListenAddr string

	OCRBaseURL string

	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	LLMTimeout time.Duration

	EnableMenuPlugin bool
	Verbose          bool
}

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
	if cfg.OCRBaseURL == "" {
		cfg.OCRBaseURL = os.Getenv("OCR_BASE_URL")
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.LLMTimeout == 0 {
		if s := os.Getenv("LLM_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.LLMTimeout = d
			}
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.EnableMenuPlugin, "ENABLE_MENU_PLUGIN")
	setBool(&cfg.Verbose, "VERBOSE")
}

// ApplyDefaults fills anything still unset after flags, env and file.
func ApplyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8001"
	}
	if cfg.OCRBaseURL == "" {
		cfg.OCRBaseURL = "http://127.0.0.1:8000"
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = 30 * time.Second
	}
}
