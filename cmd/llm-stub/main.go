// Command llm-stub is a tiny OpenAI-compatible server for local development
// and integration testing. It answers chat completion requests with canned
// structured-extraction JSON derived from the requested type's prompt.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = strings.ToLower(req.Messages[0].Content)
		}

		var payload map[string]any
		switch {
		case strings.Contains(sys, "sentiment"):
			payload = map[string]any{"items": []map[string]any{{
				"sentiment": "positive",
				"score":     0.9,
				"keywords":  []string{"great", "excellent"},
			}}}
		case strings.Contains(sys, "company"):
			payload = map[string]any{"items": []map[string]any{{
				"company_name": "Example Inc",
				"industry":     "Software",
				"email":        "hello@example.com",
			}}}
		case strings.Contains(sys, "product"):
			payload = map[string]any{"items": []map[string]any{{
				"product_name": "Widget",
				"price":        "$9.99",
				"brand":        "Acme",
			}}}
		case strings.Contains(sys, "contact"):
			payload = map[string]any{"items": []map[string]any{{
				"name":  "Ada Lovelace",
				"email": "ada@example.com",
			}}}
		default:
			payload = map[string]any{"items": []map[string]any{{
				"full_name":    "Ada Lovelace",
				"job_title":    "Software Engineer",
				"company_name": "Example Inc",
			}}}
		}
		content, _ := json.Marshal(payload)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": string(content),
				},
			}},
		})
	})

	log.Printf("llm-stub listening on %s (model %s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
