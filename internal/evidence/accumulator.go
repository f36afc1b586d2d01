package evidence

import (
	"testmorph/internal/formats"
)

// Scorer maps derived metrics to a single-format likelihood in [0,1].
// Implemented by scoring.Scorer; the accumulator only needs this one method.
type Scorer interface {
	CalculateLikelihood(m Metrics) float64
}

// Accumulator gathers per-format evidence for one detection pass and
// produces calibrated, ratio-capped likelihoods for all candidates at once.
//
// An Accumulator is scratch state for a single document: construct a fresh
// one per detection call. It is not safe for concurrent mutation; concurrent
// detections must each own their own instance.
type Accumulator struct {
	scorer   Scorer
	ratioCap float64
	profiles map[formats.SupportedFormat]*Profile
	order    []formats.SupportedFormat
}

// NewAccumulator builds an empty accumulator. ratioCap bounds the ratio
// between the best format's likelihood and any other scored format's
// likelihood; values <= 1 disable capping.
func NewAccumulator(scorer Scorer, ratioCap float64) *Accumulator {
	return &Accumulator{
		scorer:   scorer,
		ratioCap: ratioCap,
		profiles: make(map[formats.SupportedFormat]*Profile),
	}
}

func (a *Accumulator) profile(f formats.SupportedFormat) *Profile {
	p, ok := a.profiles[f]
	if !ok {
		p = &Profile{}
		a.profiles[f] = p
		a.order = append(a.order, f)
	}
	return p
}

// Add appends one evidence item to the format's in-progress profile.
func (a *Accumulator) Add(f formats.SupportedFormat, item Item) {
	p := a.profile(f)
	p.Items = append(p.Items, item)
}

// SetTotalPossibleWeight records the normalizing denominator for a format.
// Set once per format per pass.
func (a *Accumulator) SetTotalPossibleWeight(f formats.SupportedFormat, weight float64) {
	a.profile(f).TotalPossibleWeight = weight
}

// MetricsByFormat derives metrics for every format that matched at least
// one item. Formats with zero accumulated evidence are omitted: there is
// nothing to score.
func (a *Accumulator) MetricsByFormat() map[formats.SupportedFormat]Metrics {
	out := make(map[formats.SupportedFormat]Metrics, len(a.profiles))
	for _, f := range a.order {
		p := a.profiles[f]
		if len(p.Items) == 0 {
			continue
		}
		out[f] = Derive(p.Items, p.TotalPossibleWeight)
	}
	return out
}

// AllFormatLikelihoods scores every format seen this pass. Formats that
// matched no evidence score 0. Among scored formats, the conservative
// ratio cap is applied: no format's likelihood may fall below best/ratioCap.
// The cap deliberately damps overconfidence so downstream posteriors stay
// numerically stable; it raises losers rather than clipping the winner,
// preserving the argmax.
func (a *Accumulator) AllFormatLikelihoods() map[formats.SupportedFormat]float64 {
	out := make(map[formats.SupportedFormat]float64, len(a.profiles))
	var best float64
	for _, f := range a.order {
		p := a.profiles[f]
		if len(p.Items) == 0 {
			out[f] = 0
			continue
		}
		l := a.scorer.CalculateLikelihood(Derive(p.Items, p.TotalPossibleWeight))
		out[f] = l
		if l > best {
			best = l
		}
	}
	if a.ratioCap > 1 && best > 0 {
		floor := best / a.ratioCap
		for f, l := range out {
			// Zero-evidence formats stay at zero; the cap only moderates
			// gaps between formats that produced real evidence.
			if l > 0 && l < floor {
				out[f] = floor
			}
		}
	}
	return out
}
