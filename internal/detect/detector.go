// Package detect orchestrates evidence collection, accumulation and
// scoring into a single format decision per document.
package detect

import (
	"testmorph/internal/evidence"
	"testmorph/internal/formats"
	"testmorph/internal/scoring"
)

// Result is one detection outcome: the best-guess format and the full
// posterior distribution over all registered formats (sums to 1).
type Result struct {
	Format      formats.SupportedFormat
	Confidences map[formats.SupportedFormat]float64
}

// Detector runs the reset→collect→score→decide pass over the registry.
// Registry and scorer are read-only, so a Detector is safe for concurrent
// use; every Detect call owns a fresh accumulator.
type Detector struct {
	registry  *formats.Registry
	scorer    *scoring.Scorer
	collector *evidence.Collector
}

// New builds a detector over an explicit registry and scorer.
func New(reg *formats.Registry, scorer *scoring.Scorer) *Detector {
	return &Detector{
		registry:  reg,
		scorer:    scorer,
		collector: evidence.NewCollector(reg),
	}
}

// NewDefault builds a detector with the built-in registry, reference
// parameters and uniform priors.
func NewDefault() *Detector {
	return New(formats.DefaultRegistry(), scoring.NewDefaultScorer())
}

// Detect evaluates one decoded document against every registered format.
// It never fails: malformed or empty input degrades to a near-uniform
// distribution and the generic fallback format. Repeated calls on the
// same input return identical results.
func (d *Detector) Detect(doc any) Result {
	acc := evidence.NewAccumulator(d.scorer, d.scorer.Calibration().RatioCap)
	for _, f := range d.registry.Formats() {
		items, total := d.collector.Collect(doc, f)
		acc.SetTotalPossibleWeight(f, total)
		for _, it := range items {
			acc.Add(f, it)
		}
	}

	likelihoods := acc.AllFormatLikelihoods()
	confidences := d.scorer.Normalize(likelihoods)

	// The decision is the argmax of the posterior, so skewed priors move
	// the detected format together with the distribution they shape.
	best := d.argmax(confidences)
	if !anyPositive(likelihoods) {
		// No format produced any evidence: the posterior is uniform, so
		// fall through to the generic mapping downstream.
		best = d.fallback()
	}
	return Result{Format: best, Confidences: confidences}
}

// DetectFormat returns only the best-guess format.
func (d *Detector) DetectFormat(doc any) formats.SupportedFormat {
	return d.Detect(doc).Format
}

// AllFormatConfidences returns only the posterior distribution.
func (d *Detector) AllFormatConfidences(doc any) map[formats.SupportedFormat]float64 {
	return d.Detect(doc).Confidences
}

// argmax picks the highest-confidence format, ties broken by registry
// declaration order.
func (d *Detector) argmax(confidences map[formats.SupportedFormat]float64) formats.SupportedFormat {
	var best formats.SupportedFormat
	bestC := -1.0
	for _, f := range d.registry.Formats() {
		if c := confidences[f]; c > bestC {
			best, bestC = f, c
		}
	}
	return best
}

func anyPositive(likelihoods map[formats.SupportedFormat]float64) bool {
	for _, l := range likelihoods {
		if l > 0 {
			return true
		}
	}
	return false
}

func (d *Detector) fallback() formats.SupportedFormat {
	if d.registry.Has(formats.Generic) {
		return formats.Generic
	}
	return d.registry.Formats()[0]
}
