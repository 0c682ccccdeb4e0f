// Package pricing turns free-text room prompts into itemized furniture estimates.
package pricing

import (
	"strings"

	"homelytics/internal/catalog"
)

// Item is one priced line of an estimate.
type Item struct {
	Key    string        `json:"key,omitempty"`
	Name   string        `json:"name"`
	Price  int           `json:"price"`
	Custom bool          `json:"custom"`
	Links  catalog.Links `json:"links"`
}

// Result is the estimate for a single prompt.
type Result struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// Names returns the display names of all items in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Items))
	for i, item := range r.Items {
		names[i] = item.Name
	}
	return names
}

// Estimator prices prompts against an immutable catalog. It holds no
// per-request state and is safe for concurrent use.
type Estimator struct {
	catalog *catalog.Catalog
	matcher *Matcher
}

// NewEstimator wires the matcher to the catalog's keyword rules.
func NewEstimator(cat *catalog.Catalog) *Estimator {
	return &Estimator{
		catalog: cat,
		matcher: NewMatcher(cat.Rules()),
	}
}

// Estimate lists catalog items mentioned in prompt followed by custom items,
// and sums their prices.
func (e *Estimator) Estimate(prompt string) Result {
	res := Result{Items: []Item{}}
	if strings.TrimSpace(prompt) == "" {
		return res
	}

	match := e.matcher.Match(prompt)
	for _, key := range match.Keys {
		entry, ok := e.catalog.Lookup(key)
		if !ok {
			continue
		}
		res.Items = append(res.Items, Item{
			Key:   key,
			Name:  entry.Name,
			Price: entry.Price,
			Links: e.catalog.Links(key),
		})
	}

	for _, c := range ExtractCustom(prompt, match.Phrases) {
		res.Items = append(res.Items, Item{
			Name:   c.DisplayName,
			Price:  c.Price,
			Custom: true,
			Links:  catalog.SearchLinks(c.Name),
		})
	}

	for _, item := range res.Items {
		res.Total += item.Price
	}
	return res
}
