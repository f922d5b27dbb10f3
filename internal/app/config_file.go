package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally onto flags and env variables.
type FileConfig struct {
	Listen string `yaml:"listen"`

	OCR struct {
		Base string `yaml:"base"`
	} `yaml:"ocr"`

	LLM struct {
		Base    string        `yaml:"base"`
		Model   string        `yaml:"model"`
		APIKey  string        `yaml:"key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Plugins struct {
		Menu bool `yaml:"menu"`
	} `yaml:"plugins"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file and fills unset cfg fields from
// it. A missing file is not an error; a malformed one is.
func LoadConfigFile(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fc.Listen
	}
	if cfg.OCRBaseURL == "" {
		cfg.OCRBaseURL = fc.OCR.Base
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.Base
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = fc.LLM.Timeout
	}
	if !cfg.EnableMenuPlugin {
		cfg.EnableMenuPlugin = fc.Plugins.Menu
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
	return nil
}
