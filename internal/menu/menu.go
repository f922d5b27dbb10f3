// Package menu is a worked example of extending the engine from outside
// the built-in set: a custom schema plus a regex extractor registered
// through the same calls plugins use.
package menu

import (
	"context"
	"regexp"

	"github.com/ocrsift/ocrsift/internal/heuristic"
	"github.com/ocrsift/ocrsift/internal/registry"
	"github.com/ocrsift/ocrsift/internal/schema"
)

// ExtractorName identifies the menu extractor in record provenance.
const ExtractorName = "menu-regex"

// Schema describes one menu entry. Confidence gets a boost when both the
// dish name and a price were found, since those two carry the listing.
func NewSchema() schema.Schema {
	return &schema.Def{
		TypeName: "menu_info",
		Desc:     "Menu details (dish, price, description, category)",
		FieldSpecs: []schema.FieldSpec{
			{Name: "dish_name", Type: schema.String, Description: "Dish name"},
			{Name: "price", Type: schema.String, Description: "Price as printed"},
			{Name: "description", Type: schema.String, Description: "Dish description"},
			{Name: "category", Type: schema.String, Description: "Dish category"},
			{Name: "spicy_level", Type: schema.String, Description: "Spiciness"},
		},
		Boost: boost,
	}
}

func boost(rec *schema.Record, base float64) float64 {
	if rec.GetString("dish_name") != "" && rec.GetString("price") != "" {
		return base + 0.2
	}
	return base
}

var (
	priceRe = regexp.MustCompile(`[¥$￥]\s*\d+(?:\.\d{2})?|\d+(?:\.\d{2})?\s*[元块]`)
	spicyRe = regexp.MustCompile(`[不无]?辣|微辣|中辣|特辣|变态辣`)
)

// Extractor pulls menu entries with plain regular expressions.
type Extractor struct{}

func (e *Extractor) Name() string { return ExtractorName }

func (e *Extractor) Supports(s schema.Schema) bool {
	return s.Type() == "menu_info"
}

func (e *Extractor) Extract(_ context.Context, text string, s schema.Schema) ([]schema.Record, error) {
	if !e.Supports(s) {
		return nil, nil
	}
	lines := heuristic.Lines(text)
	if len(lines) == 0 {
		return nil, nil
	}

	values := map[string]any{}
	for _, line := range lines {
		priceMatch := priceRe.FindString(line)
		if priceMatch != "" {
			if _, ok := values["price"]; !ok {
				values["price"] = priceMatch
			}
		}
		if m := spicyRe.FindString(line); m != "" {
			values["spicy_level"] = m
		}
		switch {
		case priceMatch == "" && values["dish_name"] == nil && len([]rune(line)) > 2:
			values["dish_name"] = line
		case values["dish_name"] != nil && values["description"] == nil && len([]rune(line)) > 5 && priceMatch == "":
			values["description"] = line
		}
	}

	rec, err := schema.New(s, values)
	if err != nil {
		return nil, err
	}
	return []schema.Record{rec}, nil
}

// Register installs the menu schema and extractor into reg. Call before
// serving requests, like any plugin registration.
func Register(reg *registry.Registry) {
	reg.RegisterSchema(NewSchema())
	reg.RegisterExtractor(&Extractor{})
}
