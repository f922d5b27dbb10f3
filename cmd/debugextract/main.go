// Command debugextract runs the extraction pipeline over a local text file,
// bypassing the OCR and HTTP boundaries. Useful for tuning heuristics and
// prompts against captured OCR output.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ocrsift/ocrsift/internal/app"
	"github.com/ocrsift/ocrsift/internal/pipeline"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var (
		filePath       string
		extractionType string
		llmBase        string
		llmModel       string
		llmKey         string
		enableMenu     bool
		listTypes      bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a text file with OCR output ('-' for stdin)")
	flag.StringVar(&extractionType, "type", "person", "Extraction type to run")
	flag.StringVar(&llmBase, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key; empty disables the LLM strategy")
	flag.BoolVar(&enableMenu, "plugins.menu", false, "Register the example menu plugin")
	flag.BoolVar(&listTypes, "list", false, "List registered extraction types and exit")
	flag.Parse()

	cfg := app.Config{
		LLMBaseURL:       llmBase,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		EnableMenuPlugin: enableMenu,
	}
	app.ApplyDefaults(&cfg)
	reg := app.BuildRegistry(cfg)

	if listTypes {
		for info := range reg.Types() {
			fmt.Printf("%-16s %s\n", info.Type, info.Description)
		}
		return
	}

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: debugextract -file ocr.txt -type person")
		os.Exit(2)
	}
	var text []byte
	var err error
	if filePath == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(filePath)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}

	res := pipeline.New(reg).Extract(context.Background(), string(text), extractionType)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	if !res.Success {
		os.Exit(1)
	}
}
