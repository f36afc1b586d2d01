package scoring

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"testmorph/internal/evidence"
	"testmorph/internal/formats"
)

// metricEps keeps density evaluation off the exact interval edges, where
// Beta PDFs with alpha or beta < 1 diverge.
const metricEps = 1e-9

// Likelihoods exposes the per-axis component values for transparency.
// Components are densities and may exceed 1; Overall is squashed to [0,1].
type Likelihoods struct {
	Completeness float64 `json:"completeness"`
	Quality      float64 `json:"quality"`
	Uniqueness   float64 `json:"uniqueness"`
	Overall      float64 `json:"overall"`
}

// Scorer computes per-format likelihoods and posteriors from evidence
// metrics. Read-only after construction; safe for concurrent readers.
type Scorer struct {
	params BetaParams
	cal    Calibration
	priors map[formats.SupportedFormat]float64
}

// NewScorer validates the configuration and builds a scorer. priors maps
// format to prior probability in (0,1); omitted formats fall back to the
// calibration's default prior, nil means uniform.
func NewScorer(params BetaParams, cal Calibration, priors map[formats.SupportedFormat]float64) (*Scorer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	for f, p := range priors {
		if p <= 0 || p >= 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("scorer: prior for %q is %g, must be in (0,1)", f, p)
		}
	}
	s := &Scorer{params: params, cal: cal}
	if len(priors) > 0 {
		s.priors = make(map[formats.SupportedFormat]float64, len(priors))
		for f, p := range priors {
			s.priors[f] = p
		}
	}
	return s, nil
}

// NewDefaultScorer builds a scorer with reference parameters and uniform
// priors.
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(DefaultBetaParams(), DefaultCalibration(), nil)
	if err != nil {
		// Defaults are validated by tests; reaching this is a bug.
		panic(err)
	}
	return s
}

// Calibration returns the scorer's calibration constants.
func (s *Scorer) Calibration() Calibration { return s.cal }

// Prior returns the configured prior for a format, or the default.
func (s *Scorer) Prior(f formats.SupportedFormat) float64 {
	if p, ok := s.priors[f]; ok {
		return p
	}
	return s.cal.DefaultPrior
}

// component evaluates one Beta-density axis at x. The raw density may
// exceed 1 (it is a PDF, not a probability) but is always finite,
// non-negative and non-NaN for x in [0,1]; the density floor keeps a
// single zero axis from annihilating the product.
func (s *Scorer) component(shape BetaShape, x float64) float64 {
	if math.IsNaN(x) {
		x = 0
	}
	x = math.Min(math.Max(x, metricEps), 1-metricEps)
	d := distuv.Beta{Alpha: shape.Alpha, Beta: shape.Beta}.Prob(x)
	if math.IsNaN(d) || d < 0 {
		d = 0
	}
	if d > s.cal.MaxDensity {
		d = s.cal.MaxDensity
	}
	return s.cal.DensityFloor + (1-s.cal.DensityFloor)*d
}

// squash compresses a non-negative combined density into [0,1).
// x/(1+x) is monotone, maps the neutral density 1 to 0.5, and never
// overflows.
func squash(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	return x / (1 + x)
}

// EvidenceLikelihoods returns the three component densities and the
// squashed overall likelihood for one metrics tuple.
func (s *Scorer) EvidenceLikelihoods(m evidence.Metrics) Likelihoods {
	cc := s.component(s.params.Completeness, m.Completeness)
	cq := s.component(s.params.Quality, m.Quality)
	cu := s.component(s.params.Uniqueness, m.Uniqueness)
	// Geometric mean of the component densities; the axes are treated as
	// conditionally independent given the format hypothesis.
	g := math.Cbrt(cc * cq * cu)
	return Likelihoods{
		Completeness: cc,
		Quality:      cq,
		Uniqueness:   cu,
		Overall:      squash(g),
	}
}

// CalculateLikelihood maps metrics to a single likelihood in [0,1].
func (s *Scorer) CalculateLikelihood(m evidence.Metrics) float64 {
	return s.EvidenceLikelihoods(m).Overall
}

// DiscriminativeScore amplifies the uniqueness axis on top of the raw
// likelihood, for ranking candidate formats against each other. Unlike
// the likelihood it is not bounded to [0,1].
func (s *Scorer) DiscriminativeScore(m evidence.Metrics) float64 {
	return s.CalculateLikelihood(m) * (1 + s.cal.UniquenessAmp*m.Uniqueness)
}

// Posterior applies posterior ∝ likelihood × prior as a two-class odds
// update. If metrics are supplied and all three axes clear the
// strong-evidence threshold, the result is floored at the calibrated
// high-confidence minimum.
func (s *Scorer) Posterior(likelihood float64, f formats.SupportedFormat, m *evidence.Metrics) float64 {
	likelihood = clamp01(likelihood)
	prior := s.Prior(f)
	num := likelihood * prior
	den := num + (1-likelihood)*(1-prior)
	var post float64
	if den > 0 {
		post = num / den
	}
	if m != nil &&
		m.Completeness >= s.cal.StrongEvidence &&
		m.Quality >= s.cal.StrongEvidence &&
		m.Uniqueness >= s.cal.StrongEvidence &&
		post < s.cal.HighConfidenceFloor {
		post = s.cal.HighConfidenceFloor
	}
	return clamp01(post)
}

// PosteriorDistribution scores every supplied format and normalizes
// likelihood × prior into a probability distribution summing to 1.
// With no usable evidence anywhere the distribution degrades to uniform.
func (s *Scorer) PosteriorDistribution(metricsByFormat map[formats.SupportedFormat]evidence.Metrics) map[formats.SupportedFormat]float64 {
	likelihoods := make(map[formats.SupportedFormat]float64, len(metricsByFormat))
	for f, m := range metricsByFormat {
		likelihoods[f] = s.CalculateLikelihood(m)
	}
	return s.Normalize(likelihoods)
}

// Normalize combines precomputed likelihoods with priors into a normalized
// posterior distribution over exactly the supplied formats.
func (s *Scorer) Normalize(likelihoods map[formats.SupportedFormat]float64) map[formats.SupportedFormat]float64 {
	out := make(map[formats.SupportedFormat]float64, len(likelihoods))
	if len(likelihoods) == 0 {
		return out
	}
	// Sum in a fixed key order: map iteration order is randomized, and
	// float addition is not associative, so an unordered sum would make
	// identical inputs produce confidences differing in the last bits.
	order := make([]formats.SupportedFormat, 0, len(likelihoods))
	for f := range likelihoods {
		order = append(order, f)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	var sum float64
	for _, f := range order {
		w := clamp01(likelihoods[f]) * s.Prior(f)
		out[f] = w
		sum += w
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(out))
		for f := range out {
			out[f] = uniform
		}
		return out
	}
	for f := range out {
		out[f] /= sum
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
