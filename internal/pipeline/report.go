package pipeline

// Outcome is the result of processing one entry
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ItemResult records what happened to one entry
type ItemResult struct {
	Key     string
	Path    string
	Outcome Outcome
	Size    int64 // Artifact size on disk, 0 when failed
	Err     error
}

// Report aggregates the results of a run
type Report struct {
	Succeeded int
	Skipped   int
	Failed    int
	Items     []ItemResult
}

func (r *Report) record(item ItemResult) {
	switch item.Outcome {
	case OutcomeSucceeded:
		r.Succeeded++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
	r.Items = append(r.Items, item)
}

// Merge adds the counts and items of other to r
func (r *Report) Merge(other Report) {
	r.Succeeded += other.Succeeded
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Items = append(r.Items, other.Items...)
}

// Total returns the number of processed entries
func (r Report) Total() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// OK reports whether no entry failed
func (r Report) OK() bool {
	return r.Failed == 0
}

// FailedKeys returns the keys of failed entries in order
func (r Report) FailedKeys() []string {
	var keys []string
	for _, item := range r.Items {
		if item.Outcome == OutcomeFailed {
			keys = append(keys, item.Key)
		}
	}
	return keys
}
