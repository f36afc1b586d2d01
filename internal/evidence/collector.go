package evidence

import (
	"testmorph/internal/formats"
	"testmorph/internal/jsonval"
)

// Collector probes a document against one format's rule table.
// Pure function of (document, format, registry); it never errors —
// absent or mistyped fields simply contribute no evidence.
type Collector struct {
	registry *formats.Registry
}

// NewCollector builds a collector over the given registry.
func NewCollector(reg *formats.Registry) *Collector {
	return &Collector{registry: reg}
}

// Collect returns the matched evidence items for format f plus the total
// possible weight for f. The total is the sum of all declared rule weights,
// independent of the document, so completeness normalizes consistently.
// Malformed input (non-object, nil, scalars) yields an empty item list.
func (c *Collector) Collect(doc any, f formats.SupportedFormat) ([]Item, float64) {
	rules := c.registry.Rules(f)
	root := jsonval.Of(doc)
	var items []Item
	for _, rule := range rules {
		v := root.At(rule.Path)
		if !rule.Kind.Matches(v) {
			continue
		}
		items = append(items, Item{
			Path:   rule.Path,
			Weight: rule.Weight,
			Unique: rule.Unique,
			Strong: v.NonEmpty(),
		})
	}
	return items, c.registry.TotalWeight(f)
}
