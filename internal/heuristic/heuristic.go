// Package heuristic implements the deterministic, rule-based extraction
// strategy. It is the guaranteed baseline: pure computation over normalized
// text, no network, no failure modes beyond leaving fields unset.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"github.com/ocrsift/ocrsift/internal/schema"
)

// Name identifies this extractor in record provenance.
const Name = "heuristic"

var (
	companySuffixRe = regexp.MustCompile(`(?i)\b(inc|corp|llc|co|ltd|gmbh)\b\.?`)
	phoneRe         = regexp.MustCompile(`[\d()+\-\s]{5,}`)
	currencyMarkers = []string{"¥", "$", "￥", "元", "USD", "CNY", "EUR", "€"}
	phoneKeywords   = []string{"tel", "phone", "电话"}
	cjkCompanyHints = []string{"公司", "有限"}

	positiveWords = []string{"好", "棒", "优秀", "满意", "喜欢", "推荐", "excellent", "good", "great", "awesome"}
	negativeWords = []string{"差", "坏", "糟糕", "失望", "不满", "讨厌", "bad", "terrible", "awful", "poor"}
)

type rule func(text string, lines []string) map[string]any

// Extractor applies per-type pattern rules. The rule table is built once;
// individual Extract calls share no mutable state.
type Extractor struct {
	rules map[string]rule
}

// New returns an extractor covering the built-in extraction types.
func New() *Extractor {
	e := &Extractor{rules: make(map[string]rule)}
	e.rules["person"] = extractPerson
	e.rules["sentiment"] = extractSentiment
	e.rules["company_info"] = extractCompany
	e.rules["product_info"] = extractProduct
	e.rules["contact_info"] = extractContact
	return e
}

func (e *Extractor) Name() string { return Name }

// Supports reports whether a pattern rule exists for the schema's type.
func (e *Extractor) Supports(s schema.Schema) bool {
	_, ok := e.rules[s.Type()]
	return ok
}

// Extract runs the type's rule over the text. Unmatched fields stay absent;
// malformed input yields at worst a record with every field missing.
func (e *Extractor) Extract(_ context.Context, text string, s schema.Schema) ([]schema.Record, error) {
	r, ok := e.rules[s.Type()]
	if !ok {
		return nil, nil
	}
	normalized := Normalize(text)
	lines := Lines(text)
	if len(lines) == 0 {
		return nil, nil
	}
	values := r(normalized, lines)
	rec, err := schema.New(s, values)
	if err != nil {
		return nil, err
	}
	return []schema.Record{rec}, nil
}

// extractPerson treats the leading lines as name, title, employer. OCR of
// business cards renders the prominent text first, usually as headings.
func extractPerson(_ string, lines []string) map[string]any {
	values := map[string]any{}
	keys := []string{"full_name", "job_title", "company_name"}
	for i, key := range keys {
		if i < len(lines) {
			values[key] = strings.TrimSpace(strings.TrimLeft(lines[i], "#"))
		}
	}
	return values
}

func extractSentiment(text string, _ []string) map[string]any {
	lower := strings.ToLower(text)
	var keywords []string
	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
			keywords = append(keywords, w)
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
			keywords = append(keywords, w)
		}
	}

	var label string
	var score float64
	switch {
	case pos > neg:
		label = "positive"
		score = min(0.8, float64(pos)*0.2)
	case neg > pos:
		label = "negative"
		score = min(0.8, float64(neg)*0.2)
	default:
		label = "neutral"
		score = 0.5
	}
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return map[string]any{
		"sentiment": label,
		"score":     score,
		"keywords":  keywords,
	}
}

func extractCompany(_ string, lines []string) map[string]any {
	values := map[string]any{}
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case companySuffixRe.MatchString(line) || containsAny(line, cjkCompanyHints):
			values["company_name"] = line
		case containsAny(lower, phoneKeywords):
			if m := phoneRe.FindString(line); strings.TrimSpace(m) != "" {
				values["phone"] = strings.TrimSpace(m)
			}
		case strings.Contains(line, "@"):
			values["email"] = line
		}
	}
	return values
}

func extractProduct(_ string, lines []string) map[string]any {
	values := map[string]any{}
	for _, line := range lines {
		if containsAny(line, currencyMarkers) {
			if _, ok := values["price"]; !ok {
				values["price"] = line
			}
			continue
		}
		if _, ok := values["product_name"]; !ok && len([]rune(line)) > 2 {
			values["product_name"] = line
		}
	}
	return values
}

func extractContact(_ string, lines []string) map[string]any {
	values := map[string]any{}
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(line, "@"):
			values["email"] = line
		case containsAny(lower, phoneKeywords):
			if m := phoneRe.FindString(line); strings.TrimSpace(m) != "" {
				values["phone"] = strings.TrimSpace(m)
			}
		default:
			if _, ok := values["name"]; !ok && len([]rune(line)) > 1 {
				values["name"] = line
			}
		}
	}
	return values
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
