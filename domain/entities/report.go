package entities

import "time"

// CaseStatus represents the outcome of a scenario case
type CaseStatus string

const (
	CaseStatusPassed  CaseStatus = "passed"
	CaseStatusFailed  CaseStatus = "failed"
	CaseStatusSkipped CaseStatus = "skipped"
)

// CaseResult represents the result of a single ordered case
type CaseResult struct {
	Order      int           `json:"order"`
	Name       string        `json:"name"`
	Status     CaseStatus    `json:"status"`
	Failures   []string      `json:"failures,omitempty"`
	Duration   time.Duration `json:"duration"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// RunReport represents one pass over the scenario against one session
type RunReport struct {
	ID         string       `json:"id"`
	Browser    BrowserKind  `json:"browser"`
	Backend    Backend      `json:"backend"`
	URL        string       `json:"url"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Cases      []CaseResult `json:"cases"`
	Error      string       `json:"error,omitempty"`
}

// Passed reports whether the run finished without errors or failed cases
func (r *RunReport) Passed() bool {
	if r.Error != "" {
		return false
	}
	for _, c := range r.Cases {
		if c.Status == CaseStatusFailed {
			return false
		}
	}
	return true
}

// Count returns how many cases ended with the given status
func (r *RunReport) Count(status CaseStatus) int {
	n := 0
	for _, c := range r.Cases {
		if c.Status == status {
			n++
		}
	}
	return n
}
