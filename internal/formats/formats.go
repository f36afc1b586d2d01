// Package formats declares the closed set of supported test-management
// export formats and the per-format field rule tables the detector scores
// against. The registry is constructed explicitly and injected; there is no
// package-level mutable table.
package formats

import "testmorph/internal/jsonval"

// SupportedFormat identifies one source export format.
type SupportedFormat string

const (
	Zephyr   SupportedFormat = "zephyr"
	JiraXray SupportedFormat = "jira_xray"
	TestLink SupportedFormat = "testlink"
	TestRail SupportedFormat = "testrail"
	// Generic is the lowest-common-denominator fallback; ambiguous or
	// unrecognized documents resolve to it.
	Generic SupportedFormat = "generic"
)

// RuleKind constrains the JSON shape a field rule accepts.
type RuleKind int

const (
	KindAny RuleKind = iota
	KindObject
	KindArray
	KindString
	KindNumber
)

// Matches reports whether a resolved value satisfies the kind constraint.
// Missing never matches, including for KindAny.
func (k RuleKind) Matches(v jsonval.Value) bool {
	switch k {
	case KindObject:
		return v.Kind() == jsonval.Object
	case KindArray:
		return v.Kind() == jsonval.Array
	case KindString:
		return v.Kind() == jsonval.String
	case KindNumber:
		return v.Kind() == jsonval.Number
	default:
		return !v.IsMissing()
	}
}

// FieldRule is one entry of a format's rule table: a path to probe, the
// evidence weight a match contributes, the shape the value must have, and
// whether the marker is exclusive to this format. Unique paths may not be
// declared by any other format; the registry validates that.
type FieldRule struct {
	Path   string
	Kind   RuleKind
	Weight float64
	Unique bool
}

// FormatDef couples a format with its rule table, in registry order.
type FormatDef struct {
	Format SupportedFormat
	Rules  []FieldRule
}
