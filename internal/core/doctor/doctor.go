// Package doctor runs health checks against a dashbell setup.
package doctor

import "context"

// Status is the outcome of one check item.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is a single line within a check result.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// open reports whether the item still needs attention.
func (i CheckItem) open() bool {
	return i.Status == StatusWarn || i.Status == StatusFail
}

// Result groups the items produced by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check is a single diagnostic.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Counts tallies item outcomes across a run.
type Counts struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"fixable"`
}

// Report is the outcome of a full doctor run.
type Report struct {
	Healthy bool     `json:"healthy"`
	Summary Counts   `json:"summary"`
	Checks  []Result `json:"checks"`
}

// RunAll executes checks in order and returns their results.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Tally counts item outcomes. Fixable counts only items that are still open.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
			if item.Fixable && item.open() {
				c.Fixable++
			}
		}
	}
	return c
}

// NewReport summarizes results. A run is healthy when nothing failed;
// warnings do not count against it.
func NewReport(results []Result) Report {
	counts := Tally(results)
	return Report{
		Healthy: counts.Failed == 0,
		Summary: counts,
		Checks:  results,
	}
}
