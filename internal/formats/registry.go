package formats

import "fmt"

// Registry is the closed, ordered table of candidate formats and their
// field rules. Read-only after construction; safe for concurrent readers.
// Declaration order is the deterministic tie-break order downstream.
type Registry struct {
	order []SupportedFormat
	rules map[SupportedFormat][]FieldRule
}

// NewRegistry validates the definitions and builds a registry.
// Configuration problems (duplicate formats, empty rule tables,
// non-positive weights, a unique path declared by two formats) are
// programmer errors and fail here, never per-document.
func NewRegistry(defs []FormatDef) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry: no formats defined")
	}
	r := &Registry{rules: make(map[SupportedFormat][]FieldRule, len(defs))}
	pathOwners := make(map[string][]SupportedFormat)
	for _, def := range defs {
		if def.Format == "" {
			return nil, fmt.Errorf("registry: format with empty name")
		}
		if _, dup := r.rules[def.Format]; dup {
			return nil, fmt.Errorf("registry: duplicate format %q", def.Format)
		}
		if len(def.Rules) == 0 {
			return nil, fmt.Errorf("registry: format %q has no rules", def.Format)
		}
		seen := make(map[string]bool, len(def.Rules))
		for _, rule := range def.Rules {
			if rule.Path == "" {
				return nil, fmt.Errorf("registry: format %q has a rule with empty path", def.Format)
			}
			if rule.Weight <= 0 {
				return nil, fmt.Errorf("registry: format %q rule %q has non-positive weight %g", def.Format, rule.Path, rule.Weight)
			}
			if seen[rule.Path] {
				return nil, fmt.Errorf("registry: format %q declares path %q twice", def.Format, rule.Path)
			}
			seen[rule.Path] = true
			pathOwners[rule.Path] = append(pathOwners[rule.Path], def.Format)
		}
		r.order = append(r.order, def.Format)
		r.rules[def.Format] = append([]FieldRule(nil), def.Rules...)
	}
	// A unique marker owned by two formats is a contradiction in the table.
	for f, rules := range r.rules {
		for _, rule := range rules {
			if rule.Unique && len(pathOwners[rule.Path]) > 1 {
				return nil, fmt.Errorf("registry: path %q is flagged unique for %q but declared by %d formats", rule.Path, f, len(pathOwners[rule.Path]))
			}
		}
	}
	return r, nil
}

// Formats returns the formats in declaration order. The slice is a copy.
func (r *Registry) Formats() []SupportedFormat {
	return append([]SupportedFormat(nil), r.order...)
}

// Rules returns the rule table for a format (nil if unregistered).
func (r *Registry) Rules(f SupportedFormat) []FieldRule {
	return r.rules[f]
}

// Has reports whether the format is registered.
func (r *Registry) Has(f SupportedFormat) bool {
	_, ok := r.rules[f]
	return ok
}

// TotalWeight is the sum of rule weights for a format: the normalizing
// denominator for completeness, fixed per format, independent of input.
func (r *Registry) TotalWeight(f SupportedFormat) float64 {
	var sum float64
	for _, rule := range r.rules[f] {
		sum += rule.Weight
	}
	return sum
}

// DefaultRegistry returns the built-in rule table for the five supported
// formats. Weights and uniqueness flags are part of the versioned table,
// not of the detection algorithm; tune them here or override via config.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultDefs())
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return r
}

// DefaultDefs returns the built-in format definitions in detection order.
func DefaultDefs() []FormatDef {
	return []FormatDef{
		{
			Format: Zephyr,
			Rules: []FieldRule{
				{Path: "testCase", Kind: KindObject, Weight: 3, Unique: true},
				{Path: "execution", Kind: KindObject, Weight: 3, Unique: true},
				{Path: "cycle", Kind: KindObject, Weight: 3, Unique: true},
				{Path: "testCase.name", Kind: KindString, Weight: 1.5, Unique: true},
				{Path: "execution.status", Kind: KindString, Weight: 1.5, Unique: true},
				{Path: "cycle.cycleId", Kind: KindString, Weight: 1.5, Unique: true},
				{Path: "project", Kind: KindAny, Weight: 1},
			},
		},
		{
			Format: JiraXray,
			Rules: []FieldRule{
				// "issues" alone is plain JIRA, not necessarily Xray;
				// kept non-unique so bare JIRA exports stay ambiguous.
				{Path: "issues", Kind: KindArray, Weight: 2},
				{Path: "issues[].fields", Kind: KindObject, Weight: 2, Unique: true},
				{Path: "issues[].key", Kind: KindString, Weight: 1},
				{Path: "testExecutions", Kind: KindArray, Weight: 3, Unique: true},
				{Path: "xrayInfo", Kind: KindObject, Weight: 3, Unique: true},
				{Path: "project", Kind: KindAny, Weight: 1},
			},
		},
		{
			Format: TestLink,
			Rules: []FieldRule{
				{Path: "testsuites", Kind: KindObject, Weight: 3, Unique: true},
				{Path: "testsuites.testsuite", Kind: KindArray, Weight: 3, Unique: true},
				{Path: "testsuites.testsuite[].name", Kind: KindString, Weight: 1},
				{Path: "testsuites.testsuite[].testsuiteid", Kind: KindString, Weight: 2, Unique: true},
				{Path: "testsuites.testsuite[].testcase", Kind: KindArray, Weight: 2, Unique: true},
			},
		},
		{
			Format: TestRail,
			Rules: []FieldRule{
				{Path: "suites", Kind: KindArray, Weight: 2, Unique: true},
				{Path: "sections", Kind: KindArray, Weight: 2, Unique: true},
				{Path: "runs", Kind: KindArray, Weight: 2, Unique: true},
				{Path: "cases", Kind: KindArray, Weight: 2},
				{Path: "cases[].custom_steps", Kind: KindString, Weight: 2, Unique: true},
				{Path: "cases[].priority_id", Kind: KindNumber, Weight: 1, Unique: true},
				{Path: "project", Kind: KindAny, Weight: 1},
			},
		},
		{
			Format: Generic,
			Rules: []FieldRule{
				// Fallback table: every marker is shared-looking on purpose
				// so generic data never claims uniqueness evidence.
				{Path: "tests", Kind: KindArray, Weight: 2},
				{Path: "tests[].name", Kind: KindString, Weight: 1},
				{Path: "name", Kind: KindString, Weight: 1},
				{Path: "status", Kind: KindString, Weight: 1},
				{Path: "project", Kind: KindAny, Weight: 1},
			},
		},
	}
}
