// Package evidence turns a decoded JSON document into weighted,
// per-format evidence and the normalized metrics the scorer consumes.
// Everything here is per-detection-pass scratch state; nothing persists
// across documents.
package evidence

// Item is one matched field/structure marker for one format. Created
// transiently during a detection pass, never persisted.
type Item struct {
	Path   string  // rule path that matched
	Weight float64 // declared rule weight
	Unique bool    // marker is exclusive to the format under evaluation
	Strong bool    // value also passed the stricter non-empty shape check
}

// Profile accumulates the items matched for one format during a pass,
// together with the fixed normalizing denominator for that format.
type Profile struct {
	Items               []Item
	TotalPossibleWeight float64
}

// Metrics summarizes how well a document matches one format's expected
// shape. All ratio fields are in [0,1]; UniqueCount <= EvidenceCount.
type Metrics struct {
	Completeness  float64
	Quality       float64
	Uniqueness    float64
	EvidenceCount int
	UniqueCount   int
}

// Derive computes Metrics from matched items and the format's total
// possible weight. Deterministic; zero denominators yield zero ratios
// rather than dividing.
func Derive(items []Item, totalPossibleWeight float64) Metrics {
	m := Metrics{EvidenceCount: len(items)}
	var matched, unique float64
	strong := 0
	for _, it := range items {
		matched += it.Weight
		if it.Unique {
			unique += it.Weight
			m.UniqueCount++
		}
		if it.Strong {
			strong++
		}
	}
	if totalPossibleWeight > 0 {
		m.Completeness = clamp01(matched / totalPossibleWeight)
	}
	if len(items) > 0 {
		m.Quality = clamp01(float64(strong) / float64(len(items)))
	}
	if matched > 0 {
		m.Uniqueness = clamp01(unique / matched)
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
