package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ocrsift/ocrsift/internal/schema"
)

type fakeExtractor struct {
	name     string
	supports func(schema.Schema) bool
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Supports(s schema.Schema) bool {
	if f.supports == nil {
		return true
	}
	return f.supports(s)
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ schema.Schema) ([]schema.Record, error) {
	return nil, nil
}

func TestResolve_RoundTrip(t *testing.T) {
	r := New()
	for _, s := range schema.Builtins() {
		r.RegisterSchema(s)
	}
	for info := range r.Types() {
		s, _, err := r.Resolve(info.Type)
		if err != nil {
			t.Fatalf("resolve %q: %v", info.Type, err)
		}
		if s.Type() != info.Type {
			t.Fatalf("resolved schema type %q for %q", s.Type(), info.Type)
		}
	}
}

func TestResolve_UnknownType(t *testing.T) {
	r := New()
	_, _, err := r.Resolve("nope")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestRegisterSchema_ReplaceLastWriterWins(t *testing.T) {
	r := New()
	r.RegisterSchema(&schema.Def{TypeName: "person", Desc: "first"})
	r.RegisterSchema(&schema.Def{TypeName: "person", Desc: "second"})
	s, _, err := r.Resolve("person")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Description() != "second" {
		t.Fatalf("expected replacement schema, got %q", s.Description())
	}
}

func TestRegisterExtractor_OrderAndEligibility(t *testing.T) {
	r := New()
	r.RegisterSchema(schema.Person())
	r.RegisterSchema(schema.Sentiment())

	personOnly := &fakeExtractor{name: "person-only", supports: func(s schema.Schema) bool {
		return s.Type() == "person"
	}}
	all := &fakeExtractor{name: "all"}
	r.RegisterExtractor(personOnly)
	r.RegisterExtractor(all)

	_, exts, err := r.Resolve("person")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(exts) != 2 || exts[0].Name() != "person-only" || exts[1].Name() != "all" {
		t.Fatalf("unexpected extractor order for person: %v", names(exts))
	}

	_, exts, err = r.Resolve("sentiment")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(exts) != 1 || exts[0].Name() != "all" {
		t.Fatalf("unexpected extractors for sentiment: %v", names(exts))
	}
}

func TestRegisterExtractor_AppliesToLaterSchemas(t *testing.T) {
	r := New()
	r.RegisterExtractor(&fakeExtractor{name: "early"})
	r.RegisterSchema(schema.Person())
	_, exts, err := r.Resolve("person")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(exts) != 1 || exts[0].Name() != "early" {
		t.Fatalf("extractor registered before schema should be eligible, got %v", names(exts))
	}
}

func TestTypes_SortedAndRestartable(t *testing.T) {
	r := New()
	for _, s := range schema.Builtins() {
		r.RegisterSchema(s)
	}
	seq := r.Types()
	first := collect(seq)
	second := collect(seq)
	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected 5 types per pass, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restarted sequence diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Type >= first[i].Type {
			t.Fatalf("types not sorted: %v", first)
		}
	}
}

func TestTypes_EarlyBreak(t *testing.T) {
	r := New()
	for _, s := range schema.Builtins() {
		r.RegisterSchema(s)
	}
	n := 0
	for range r.Types() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected to stop after 2, saw %d", n)
	}
}

func TestConcurrentReadsDuringRegistration(t *testing.T) {
	r := New()
	r.RegisterSchema(schema.Person())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s, _, err := r.Resolve("person")
				if err != nil {
					t.Errorf("resolve: %v", err)
					return
				}
				if s.Type() != "person" {
					t.Errorf("partial binding observed: %q", s.Type())
					return
				}
			}
		}()
	}
	for j := 0; j < 50; j++ {
		r.RegisterSchema(schema.Person())
		r.RegisterExtractor(&fakeExtractor{name: "e"})
	}
	wg.Wait()
}

func names(exts []Extractor) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = e.Name()
	}
	return out
}

func collect(seq func(func(TypeInfo) bool)) []TypeInfo {
	var out []TypeInfo
	seq(func(ti TypeInfo) bool {
		out = append(out, ti)
		return true
	})
	return out
}
