// Package registry maps extraction-type identifiers to their schema and the
// ordered list of extractors able to serve them.
package registry

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/ocrsift/ocrsift/internal/schema"
)

// Extractor is the capability set every extraction strategy implements.
// Extract must be deterministic for the heuristic variant and fail-soft for
// networked variants: transient failures are absorbed and reported as zero
// records. A returned error signals a programming fault, not bad input.
type Extractor interface {
	Name() string
	Supports(s schema.Schema) bool
	Extract(ctx context.Context, text string, s schema.Schema) ([]schema.Record, error)
}

// ErrUnknownType is wrapped by Resolve for unregistered extraction types.
var ErrUnknownType = fmt.Errorf("unknown extraction type")

// TypeInfo is one entry of the discovery listing.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type binding struct {
	schema     schema.Schema
	extractors []Extractor
}

// Registry holds the process-wide type bindings. Registration happens at
// startup (or through a serialized plugin call); reads are safe under
// arbitrary concurrency and never observe a partially registered type.
type Registry struct {
	mu         sync.RWMutex
	bindings   map[string]*binding
	extractors []Extractor // registration order defines trial order
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{bindings: make(map[string]*binding)}
}

// RegisterSchema binds s under its extraction type. Re-registering the same
// type replaces the previous binding entirely; eligible extractors are
// re-evaluated against the new schema.
func (r *Registry) RegisterSchema(s schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := &binding{schema: s}
	for _, e := range r.extractors {
		if e.Supports(s) {
			b.extractors = append(b.extractors, e)
		}
	}
	r.bindings[s.Type()] = b
}

// RegisterExtractor appends e to the eligible list of every registered type
// it supports. Extractors registered earlier are tried first.
func (r *Registry) RegisterExtractor(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
	for _, b := range r.bindings {
		if e.Supports(b.schema) {
			b.extractors = append(b.extractors, e)
		}
	}
}

// Resolve returns the schema and ordered extractor list for a type.
func (r *Registry) Resolve(extractionType string) (schema.Schema, []Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[extractionType]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownType, extractionType)
	}
	return b.schema, append([]Extractor(nil), b.extractors...), nil
}

// Types yields the registered extraction types with their descriptions,
// sorted by type for deterministic listings. The sequence is restartable;
// each iteration walks a snapshot taken when it starts.
func (r *Registry) Types() iter.Seq[TypeInfo] {
	return func(yield func(TypeInfo) bool) {
		r.mu.RLock()
		infos := make([]TypeInfo, 0, len(r.bindings))
		for name, b := range r.bindings {
			infos = append(infos, TypeInfo{Type: name, Description: b.schema.Description()})
		}
		r.mu.RUnlock()
		sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
		for _, info := range infos {
			if !yield(info) {
				return
			}
		}
	}
}
