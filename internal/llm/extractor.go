package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ocrsift/ocrsift/internal/schema"
)

// Name identifies this extractor in record provenance.
const Name = "llm"

// DefaultTimeout bounds a single structured-extraction call.
const DefaultTimeout = 30 * time.Second

// Extractor asks a chat model to populate a schema's fields from OCR text.
// It is fail-soft end to end: the disabled state (no client) and every
// call, parse or validation error all surface as zero records, never as an
// error the caller must handle. That contract is what makes chaining the
// heuristic fallback after it unconditional and safe.
type Extractor struct {
	client  Client
	model   string
	timeout time.Duration
	prompts map[string]string
}

// NewExtractor builds the LLM strategy. A nil client or empty model leaves
// the extractor in its disabled state.
func NewExtractor(client Client, model string, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	prompts := make(map[string]string, len(systemPrompts))
	for k, v := range systemPrompts {
		prompts[k] = v
	}
	return &Extractor{client: client, model: model, timeout: timeout, prompts: prompts}
}

func (e *Extractor) Name() string { return Name }

// Enabled reports whether the extractor holds a usable client.
func (e *Extractor) Enabled() bool {
	return e.client != nil && e.model != ""
}

// Supports reports whether a system prompt exists for the schema's type.
func (e *Extractor) Supports(s schema.Schema) bool {
	_, ok := e.prompts[s.Type()]
	return ok
}

// AddPrompt opts an extraction type into the LLM strategy. Call before
// registering the extractor.
func (e *Extractor) AddPrompt(extractionType, prompt string) {
	e.prompts[extractionType] = prompt
}

// Extract issues one structured-output request and maps the reply onto
// records. It returns nil both when disabled and when the endpoint fails
// or answers outside the contract.
func (e *Extractor) Extract(ctx context.Context, text string, s schema.Schema) ([]schema.Record, error) {
	if !e.Enabled() {
		return nil, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	prompt, ok := e.prompts[s.Type()]
	if !ok {
		return nil, nil
	}

	reqID := uuid.New().String()
	start := time.Now()
	contract := buildJSONSchema(s)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: userPromptPrefix + text},
			{Role: openai.ChatMessageRoleSystem, Content: "Respond with JSON only, matching this JSON Schema:\n" + mustJSON(contract)},
		},
		Temperature: 0,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("req_id", reqID).Str("type", s.Type()).
			Dur("elapsed", time.Since(start)).Msg("llm extraction call failed; no records")
		return nil, nil
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("req_id", reqID).Str("type", s.Type()).Msg("llm returned no choices; no records")
		return nil, nil
	}

	raw := []byte(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err := validateAgainst(contract, raw); err != nil {
		log.Warn().Err(err).Str("req_id", reqID).Str("type", s.Type()).Msg("llm reply outside contract; no records")
		return nil, nil
	}

	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Warn().Err(err).Str("req_id", reqID).Str("type", s.Type()).Msg("llm reply unmarshal failed; no records")
		return nil, nil
	}

	records := make([]schema.Record, 0, len(payload.Items))
	for _, values := range payload.Items {
		rec, err := schema.New(s, values)
		if err != nil {
			log.Warn().Err(err).Str("req_id", reqID).Str("type", s.Type()).Msg("llm item violates schema; no records")
			return nil, nil
		}
		records = append(records, rec)
	}
	log.Debug().Str("req_id", reqID).Str("type", s.Type()).Int("records", len(records)).
		Dur("elapsed", time.Since(start)).Msg("llm extraction ok")
	return records, nil
}
