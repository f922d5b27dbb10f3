package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvToConfig_FillsOnlyUnset(t *testing.T) {
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("ENABLE_MENU_PLUGIN", "true")

	cfg := Config{LLMModel: "flag-model"}
	ApplyEnvToConfig(&cfg)

	if cfg.LLMModel != "flag-model" {
		t.Fatalf("explicit value overridden by env: %q", cfg.LLMModel)
	}
	if cfg.LLMAPIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.LLMAPIKey)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.LLMTimeout)
	}
	if !cfg.EnableMenuPlugin {
		t.Fatalf("expected menu plugin enabled from env")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)
	if cfg.ListenAddr != ":8001" {
		t.Fatalf("listen = %q", cfg.ListenAddr)
	}
	if cfg.OCRBaseURL == "" || cfg.LLMTimeout == 0 {
		t.Fatalf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocrsift.yaml")
	data := []byte("listen: \":9000\"\nocr:\n  base: http://ocr:8000\nllm:\n  base: http://llm:11434/v1\n  model: qwen3\n  key: secret\n  timeout: 45s\nplugins:\n  menu: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Config{ListenAddr: ":7777"} // flag value wins over file
	if err := LoadConfigFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7777" {
		t.Fatalf("listen = %q", cfg.ListenAddr)
	}
	if cfg.OCRBaseURL != "http://ocr:8000" || cfg.LLMModel != "qwen3" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LLMTimeout != 45*time.Second || !cfg.EnableMenuPlugin {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadConfigFile_MissingIsFine(t *testing.T) {
	cfg := Config{}
	if err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}

func TestLoadConfigFile_MalformedFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadConfigFile(path, &Config{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
