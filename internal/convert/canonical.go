// Package convert maps detected source documents onto the canonical
// test-management model. Mapping is best-effort: missing or mistyped
// fields degrade to empty values, mirroring the detector's
// never-crash-on-data policy.
package convert

import (
	"strings"

	"testmorph/internal/formats"
)

// Status is the canonical execution status vocabulary.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusBlocked Status = "blocked"
	StatusSkipped Status = "skipped"
	StatusUnknown Status = "unknown"
)

// Document is the canonical representation of one converted export.
type Document struct {
	SourceFormat formats.SupportedFormat `json:"source_format"`
	Project      string                  `json:"project,omitempty"`
	Suites       []Suite                 `json:"suites"`
}

// Suite groups test cases.
type Suite struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Cases []Case `json:"cases"`
}

// Case is one test case with optional steps and latest execution.
type Case struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Steps     []Step     `json:"steps,omitempty"`
	Execution *Execution `json:"execution,omitempty"`
}

// Step is one ordered action/expectation pair.
type Step struct {
	Index    int    `json:"index"`
	Action   string `json:"action,omitempty"`
	Expected string `json:"expected,omitempty"`
}

// Execution records one test run outcome.
type Execution struct {
	Status     Status `json:"status"`
	ExecutedAt string `json:"executed_at,omitempty"`
	CycleID    string `json:"cycle_id,omitempty"`
}

// NormalizeStatus folds the status vocabularies of the source tools into
// the canonical set. Unrecognized values map to unknown, never an error.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pass", "passed", "ok", "success", "successful", "p":
		return StatusPass
	case "fail", "failed", "error", "failure", "f":
		return StatusFail
	case "blocked", "block", "b":
		return StatusBlocked
	case "skip", "skipped", "untested", "not run", "notrun", "n/a":
		return StatusSkipped
	default:
		return StatusUnknown
	}
}

// statusFromTestRailID maps TestRail's numeric status_id vocabulary.
func statusFromTestRailID(id float64) Status {
	switch int(id) {
	case 1:
		return StatusPass
	case 2:
		return StatusBlocked
	case 3:
		return StatusSkipped
	case 5:
		return StatusFail
	default:
		return StatusUnknown
	}
}
