package types

// Outcome classifies what happened to a single entry
type Outcome int

const (
	// OutcomeCreated means the link or directory was created
	OutcomeCreated Outcome = iota

	// OutcomeAlreadyCorrect means nothing needed to change
	OutcomeAlreadyCorrect

	// OutcomeSkipped means the entry was intentionally not processed
	// (os-constraint mismatch or a failed if test)
	OutcomeSkipped

	// OutcomeSkippedAmbiguousGlob means a single glob match was mapped onto
	// a directory-style destination. It counts as a failure.
	OutcomeSkippedAmbiguousGlob

	// OutcomeFailed covers missing sources, blocked destinations,
	// incorrect links and filesystem errors
	OutcomeFailed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyCorrect:
		return "already-correct"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeSkippedAmbiguousGlob:
		return "ambiguous-glob"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome counts as success for the batch
func (o Outcome) OK() bool {
	switch o {
	case OutcomeCreated, OutcomeAlreadyCorrect, OutcomeSkipped:
		return true
	default:
		return false
	}
}

// EntryResult is the outcome of one entry, or one fan-out item of a glob entry
type EntryResult struct {
	Destination string
	Source      string
	Outcome     Outcome
	Err         error
}

// Report collects the entry results of one directive
type Report struct {
	Directive string
	Entries   []EntryResult
}

// NewReport creates an empty report for the named directive
func NewReport(directive string) *Report {
	return &Report{Directive: directive}
}

// Add appends an entry result
func (r *Report) Add(result EntryResult) {
	r.Entries = append(r.Entries, result)
}

// OK is the logical AND of all entry outcomes. An empty report is OK.
func (r *Report) OK() bool {
	for _, entry := range r.Entries {
		if !entry.Outcome.OK() {
			return false
		}
	}
	return true
}

// Count returns how many entries ended with the given outcome
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, entry := range r.Entries {
		if entry.Outcome == outcome {
			n++
		}
	}
	return n
}
