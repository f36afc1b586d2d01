// Package scoring maps evidence metrics to calibrated per-format
// likelihoods and posteriors. The three metric axes are treated as
// conditionally independent given the format hypothesis; each passes
// through a Beta-density component before the results are combined.
package scoring

import (
	"fmt"
	"math"
)

// BetaShape holds the (alpha, beta) shape of one Beta-density component.
type BetaShape struct {
	Alpha float64 `yaml:"alpha" json:"alpha"`
	Beta  float64 `yaml:"beta" json:"beta"`
}

func (s BetaShape) valid() bool {
	return s.Alpha > 0 && s.Beta > 0 &&
		!math.IsInf(s.Alpha, 0) && !math.IsInf(s.Beta, 0) &&
		!math.IsNaN(s.Alpha) && !math.IsNaN(s.Beta)
}

// BetaParams is the per-axis shape configuration of a scorer. Owned by one
// scorer instance; swappable for sensitivity testing, never mutated
// mid-calculation.
type BetaParams struct {
	Completeness BetaShape `yaml:"completeness" json:"completeness"`
	Quality      BetaShape `yaml:"quality" json:"quality"`
	Uniqueness   BetaShape `yaml:"uniqueness" json:"uniqueness"`
}

// Validate rejects non-positive or non-finite shape parameters. Invalid
// parameters are a configuration error; constructing a scorer with them
// fails fast rather than producing garbage likelihoods later.
func (p BetaParams) Validate() error {
	if !p.Completeness.valid() {
		return fmt.Errorf("beta params: completeness shape (%g, %g) must be positive and finite", p.Completeness.Alpha, p.Completeness.Beta)
	}
	if !p.Quality.valid() {
		return fmt.Errorf("beta params: quality shape (%g, %g) must be positive and finite", p.Quality.Alpha, p.Quality.Beta)
	}
	if !p.Uniqueness.valid() {
		return fmt.Errorf("beta params: uniqueness shape (%g, %g) must be positive and finite", p.Uniqueness.Alpha, p.Uniqueness.Beta)
	}
	return nil
}

// DefaultBetaParams returns shapes with Beta == 1 and Alpha >= 1, which
// keeps each component density monotone non-decreasing on [0,1] (the
// density reduces to alpha * x^(alpha-1)). Uniqueness gets the steepest
// shape: unique markers are the strongest discriminator.
func DefaultBetaParams() BetaParams {
	return BetaParams{
		Completeness: BetaShape{Alpha: 2, Beta: 1},
		Quality:      BetaShape{Alpha: 2, Beta: 1},
		Uniqueness:   BetaShape{Alpha: 3, Beta: 1},
	}
}

// Calibration collects the tunable constants of the scoring pipeline.
// These were tuned empirically; they are configuration, not invariants of
// the math, so they live here rather than as literals in the logic.
type Calibration struct {
	// RatioCap bounds best/other likelihood ratios in the accumulator.
	RatioCap float64 `yaml:"ratio_cap" json:"ratio_cap"`
	// DensityFloor blends each Beta density d into floor + (1-floor)*d so
	// a single zero axis cannot annihilate the combined likelihood.
	DensityFloor float64 `yaml:"density_floor" json:"density_floor"`
	// MaxDensity caps a component density; guards shapes whose PDF
	// diverges at the interval edges (alpha or beta < 1).
	MaxDensity float64 `yaml:"max_density" json:"max_density"`
	// UniquenessAmp amplifies uniqueness in the discriminative score.
	UniquenessAmp float64 `yaml:"uniqueness_amp" json:"uniqueness_amp"`
	// DefaultPrior applies to formats without a configured prior.
	DefaultPrior float64 `yaml:"default_prior" json:"default_prior"`
	// StrongEvidence is the per-axis threshold above which metrics count
	// as very strong evidence for the high-confidence floor.
	StrongEvidence float64 `yaml:"strong_evidence" json:"strong_evidence"`
	// HighConfidenceFloor is the minimum posterior granted to very strong
	// evidence.
	HighConfidenceFloor float64 `yaml:"high_confidence_floor" json:"high_confidence_floor"`
	// SuppressionFactor and AmbiguityCeiling are the calibration targets
	// the pipeline is tuned against: a structurally wrong format should
	// score below SuppressionFactor times the right one, and ambiguous
	// data should keep scored ratios under AmbiguityCeiling.
	SuppressionFactor float64 `yaml:"suppression_factor" json:"suppression_factor"`
	AmbiguityCeiling  float64 `yaml:"ambiguity_ceiling" json:"ambiguity_ceiling"`
}

// DefaultCalibration returns the reference constants.
func DefaultCalibration() Calibration {
	return Calibration{
		RatioCap:            3.0,
		DensityFloor:        0.25,
		MaxDensity:          64,
		UniquenessAmp:       2.0,
		DefaultPrior:        0.2,
		StrongEvidence:      0.8,
		HighConfidenceFloor: 0.7,
		SuppressionFactor:   0.7,
		AmbiguityCeiling:    1.8,
	}
}

// Validate rejects out-of-range calibration constants.
func (c Calibration) Validate() error {
	switch {
	case c.RatioCap < 1:
		return fmt.Errorf("calibration: ratio_cap %g must be >= 1", c.RatioCap)
	case c.DensityFloor < 0 || c.DensityFloor >= 1:
		return fmt.Errorf("calibration: density_floor %g must be in [0,1)", c.DensityFloor)
	case c.MaxDensity <= 0:
		return fmt.Errorf("calibration: max_density %g must be > 0", c.MaxDensity)
	case c.UniquenessAmp < 0:
		return fmt.Errorf("calibration: uniqueness_amp %g must be >= 0", c.UniquenessAmp)
	case c.DefaultPrior <= 0 || c.DefaultPrior >= 1:
		return fmt.Errorf("calibration: default_prior %g must be in (0,1)", c.DefaultPrior)
	case c.StrongEvidence <= 0 || c.StrongEvidence > 1:
		return fmt.Errorf("calibration: strong_evidence %g must be in (0,1]", c.StrongEvidence)
	case c.HighConfidenceFloor < 0 || c.HighConfidenceFloor > 1:
		return fmt.Errorf("calibration: high_confidence_floor %g must be in [0,1]", c.HighConfidenceFloor)
	case c.SuppressionFactor <= 0 || c.SuppressionFactor > 1:
		return fmt.Errorf("calibration: suppression_factor %g must be in (0,1]", c.SuppressionFactor)
	case c.AmbiguityCeiling < 1:
		return fmt.Errorf("calibration: ambiguity_ceiling %g must be >= 1", c.AmbiguityCeiling)
	}
	return nil
}
