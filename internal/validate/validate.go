// Package validate checks a distribution build tree against the fixed
// checklist the launcher bundle requires.
package validate

import "encoding/json"

// Status represents the outcome of a single check.
type Status int

const (
	// StatusOK indicates the check passed.
	StatusOK Status = iota
	// StatusWarning indicates a non-critical issue.
	StatusWarning
	// StatusError indicates a critical failure.
	StatusError
	// StatusSkipped indicates the check did not apply.
	StatusSkipped
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARN"
	case StatusError:
		return "ERROR"
	case StatusSkipped:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Icon returns the status icon for display.
func (s Status) Icon() string {
	switch s {
	case StatusOK:
		return "[OK]"
	case StatusWarning:
		return "[!!]"
	case StatusError:
		return "[XX]"
	case StatusSkipped:
		return "[--]"
	default:
		return "[??]"
	}
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Result is the outcome of one checklist item.
type Result struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Rule is a single independent checklist item. Evaluating one rule
// never depends on another's outcome.
type Rule struct {
	Name string
	// Check inspects the target directory and reports zero or more
	// results.
	Check func(dir string) []Result
}

// Report accumulates every result of a validation run.
type Report struct {
	Dir      string   `json:"dir"`
	Results  []Result `json:"results"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
}

// Run evaluates every rule against the target directory. All rules run
// unconditionally; failures accumulate instead of short-circuiting.
func Run(dir string, rules []Rule) Report {
	report := Report{Dir: dir}
	for _, rule := range rules {
		for _, res := range rule.Check(dir) {
			report.Results = append(report.Results, res)
			switch res.Status {
			case StatusError:
				report.Errors++
			case StatusWarning:
				report.Warnings++
			}
		}
	}
	return report
}

// Failed reports whether the run should map to a non-zero exit status.
// Warnings alone do not fail a run.
func (r Report) Failed() bool {
	return r.Errors > 0
}
