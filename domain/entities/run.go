package entities

import "time"

// RunStatus represents the outcome of a scenario run
type RunStatus string

const (
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusSkipped RunStatus = "skipped"
)

// RunResult is one scenario's entry in the JSON results file
type RunResult struct {
	Name       string        `json:"name"`
	Site       string        `json:"site"`
	Status     RunStatus     `json:"status"`
	Attempts   int           `json:"attempts"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Messages   []string      `json:"messages,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// RunReport aggregates the results of one runner invocation
type RunReport struct {
	Engine     string      `json:"engine"`
	Browser    string      `json:"browser"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Passed     int         `json:"passed"`
	Failed     int         `json:"failed"`
	Skipped    int         `json:"skipped"`
	Results    []RunResult `json:"results"`
}

// Add appends a result and updates the counters
func (r *RunReport) Add(res RunResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case RunStatusPassed:
		r.Passed++
	case RunStatusFailed:
		r.Failed++
	case RunStatusSkipped:
		r.Skipped++
	}
}

// OK reports whether no scenario failed
func (r *RunReport) OK() bool {
	return r.Failed == 0
}
