// Package pipeline drives one extraction request through the registry's
// extractor chain: resolve the type, try extractors in registration order,
// accept the first producer, stamp confidence and provenance.
package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ocrsift/ocrsift/internal/registry"
	"github.com/ocrsift/ocrsift/internal/schema"
)

// Result is the caller-facing outcome of one extraction request. A request
// either succeeds, possibly with zero records when the text holds nothing
// extractable, or fails with a named cause. There is no in-between.
type Result struct {
	Success        bool            `json:"success"`
	ExtractionType string          `json:"extraction_type"`
	Records        []schema.Record `json:"data"`
	Error          string          `json:"error_message,omitempty"`
	OCRText        string          `json:"ocr_text,omitempty"`
}

// Orchestrator runs the dual-strategy extraction over an explicit registry.
// Passing the registry in keeps the engine testable and allows independent
// registries side by side.
type Orchestrator struct {
	registry *registry.Registry
}

// New builds an orchestrator bound to reg.
func New(reg *registry.Registry) *Orchestrator {
	return &Orchestrator{registry: reg}
}

// Extract resolves the extraction type, walks its eligible extractors in
// order and accepts the first one producing records. An extractor returning
// nothing is "did not produce", not a partial success; only type resolution
// fails the request. Later extractors are never consulted once one produces.
func (o *Orchestrator) Extract(ctx context.Context, text, extractionType string) Result {
	s, extractors, err := o.registry.Resolve(extractionType)
	if err != nil {
		return Result{
			Success:        false,
			ExtractionType: extractionType,
			Error:          err.Error(),
			OCRText:        text,
		}
	}

	var records []schema.Record
	for _, e := range extractors {
		recs, err := e.Extract(ctx, text, s)
		if err != nil {
			// Extractor bugs are contained: log and fall through to the
			// next strategy as if nothing was produced.
			log.Warn().Err(err).Str("extractor", e.Name()).Str("type", extractionType).
				Msg("extractor failed; trying next")
			continue
		}
		if len(recs) == 0 {
			continue
		}
		records = make([]schema.Record, len(recs))
		for i, rec := range recs {
			rec.Confidence = s.Confidence(&rec)
			rec.Provenance = e.Name()
			records[i] = rec
		}
		log.Debug().Str("extractor", e.Name()).Str("type", extractionType).
			Int("records", len(records)).Msg("extraction produced records")
		break
	}

	return Result{
		Success:        true,
		ExtractionType: extractionType,
		Records:        records,
		OCRText:        text,
	}
}
