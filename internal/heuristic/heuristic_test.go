package heuristic

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/ocrsift/ocrsift/internal/schema"
)

func TestExtract_PersonBusinessCard(t *testing.T) {
	s := schema.Person()
	text := "# Ada Lovelace\n# Software Engineer\n# Example Inc"
	recs, err := New().Extract(context.Background(), text, s)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if got := rec.GetString("full_name"); got != "Ada Lovelace" {
		t.Fatalf("full_name = %q", got)
	}
	if got := rec.GetString("job_title"); got != "Software Engineer" {
		t.Fatalf("job_title = %q", got)
	}
	if got := rec.GetString("company_name"); got != "Example Inc" {
		t.Fatalf("company_name = %q", got)
	}
	if got := rec.MissingFields(); len(got) != 0 {
		t.Fatalf("missing fields = %v, want none", got)
	}
	if got := s.Confidence(&rec); got != 1.0 {
		t.Fatalf("confidence = %v, want 1.0 for 3/3 fields", got)
	}
}

func TestExtract_SentimentChinesePositive(t *testing.T) {
	s := schema.Sentiment()
	text := "这个产品很优秀，质量很好。非常满意！"
	recs, err := New().Extract(context.Background(), text, s)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if got := rec.GetString("sentiment"); got != "positive" {
		t.Fatalf("sentiment = %q, want positive", got)
	}
	if kw := rec.GetList("keywords"); len(kw) == 0 {
		t.Fatalf("expected non-empty keyword list")
	}
	if got := s.Confidence(&rec); got <= 0.5 {
		t.Fatalf("confidence = %v, want > 0.5", got)
	}
}

func TestExtract_SentimentNeutral(t *testing.T) {
	s := schema.Sentiment()
	recs, err := New().Extract(context.Background(), "the sky is blue today", s)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	rec := recs[0]
	if got := rec.GetString("sentiment"); got != "neutral" {
		t.Fatalf("sentiment = %q, want neutral", got)
	}
	if got := rec.GetNumber("score"); got != 0.5 {
		t.Fatalf("score = %v, want 0.5", got)
	}
}

func TestExtract_CompanyInfo(t *testing.T) {
	text := "Acme Corp\nTel: 010-1234-5678\nsales@acme.example\nSomething else"
	recs, err := New().Extract(context.Background(), text, schema.Company())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	rec := recs[0]
	if got := rec.GetString("company_name"); got != "Acme Corp" {
		t.Fatalf("company_name = %q", got)
	}
	if got := rec.GetString("phone"); !strings.Contains(got, "1234") {
		t.Fatalf("phone = %q", got)
	}
	if got := rec.GetString("email"); got != "sales@acme.example" {
		t.Fatalf("email = %q", got)
	}
}

func TestExtract_ProductPriceAndName(t *testing.T) {
	text := "Thinkpad X1\n¥ 9999 元\nlightweight laptop"
	recs, err := New().Extract(context.Background(), text, schema.Product())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	rec := recs[0]
	if got := rec.GetString("product_name"); got != "Thinkpad X1" {
		t.Fatalf("product_name = %q", got)
	}
	if got := rec.GetString("price"); !strings.Contains(got, "9999") {
		t.Fatalf("price = %q", got)
	}
}

func TestExtract_ContactInfo(t *testing.T) {
	text := "张三\nPhone: +86 138 0000 0000\nzhang@xn.example"
	recs, err := New().Extract(context.Background(), text, schema.Contact())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	rec := recs[0]
	if got := rec.GetString("name"); got != "张三" {
		t.Fatalf("name = %q", got)
	}
	if got := rec.GetString("email"); got != "zhang@xn.example" {
		t.Fatalf("email = %q", got)
	}
	if got := rec.GetString("phone"); !strings.Contains(got, "138") {
		t.Fatalf("phone = %q", got)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := New()
	texts := []string{
		"# Ada Lovelace\n# Software Engineer\n# Example Inc",
		"这个产品很优秀，质量很好。非常满意！",
		"garbage \x00 input � lines\n\n\n###",
	}
	for _, s := range schema.Builtins() {
		for _, text := range texts {
			if !e.Supports(s) {
				t.Fatalf("heuristic should support builtin %q", s.Type())
			}
			first, err1 := e.Extract(context.Background(), text, s)
			second, err2 := e.Extract(context.Background(), text, s)
			if err1 != nil || err2 != nil {
				t.Fatalf("extract errors: %v / %v", err1, err2)
			}
			if len(first) != len(second) {
				t.Fatalf("%s: record counts differ", s.Type())
			}
			for i := range first {
				if !reflect.DeepEqual(first[i].Values(), second[i].Values()) {
					t.Fatalf("%s: run 1 and 2 differ: %v vs %v", s.Type(), first[i].Values(), second[i].Values())
				}
			}
		}
	}
}

func TestExtract_MalformedInputNeverErrors(t *testing.T) {
	e := New()
	inputs := []string{"", "   \n\t\n ", "<table><tr><td></td></tr>", strings.Repeat("#", 500)}
	for _, s := range schema.Builtins() {
		for _, text := range inputs {
			if _, err := e.Extract(context.Background(), text, s); err != nil {
				t.Fatalf("%s on %q: %v", s.Type(), text, err)
			}
		}
	}
}

func TestExtract_EmptyTextProducesNothing(t *testing.T) {
	recs, err := New().Extract(context.Background(), "  \n ", schema.Person())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records for blank input, got %d", len(recs))
	}
}

func TestNormalize_HTMLTable(t *testing.T) {
	text := "<table><tr><td>Acme Corp</td></tr><tr><td>Tel: 123-4567</td></tr></table>"
	lines := Lines(text)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines from table rows, got %v", lines)
	}
	if !strings.Contains(lines[0], "Acme Corp") {
		t.Fatalf("first line = %q", lines[0])
	}
}

func TestNormalize_FullWidthFolded(t *testing.T) {
	got := Normalize("Ｔｅｌ：１２３４")
	if got != "Tel:1234" {
		t.Fatalf("normalized = %q, want %q", got, "Tel:1234")
	}
}

func TestNormalize_CollapsesBlankLines(t *testing.T) {
	got := Normalize("a\n\n\n\nb")
	if got != "a\n\nb" {
		t.Fatalf("normalized = %q", got)
	}
}
