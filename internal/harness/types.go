package harness

import "github.com/roach88/fastnbt/internal/nbt"

// QueryTrace is the recorded outcome of one scenario query.
type QueryTrace struct {
	Pattern string   `json:"pattern"` // SNBT
	Invert  bool     `json:"invert"`
	Path    string   `json:"path"`
	Unknown string   `json:"unknown,omitempty"`
	Matched []string `json:"matched"`
	Total   int      `json:"total"`
	Seq     int64    `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every query agreed with the full save and met its
	// expectations.
	Pass bool `json:"pass"`

	// Trace holds one entry per query, in scenario order.
	Trace []QueryTrace `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []QueryTrace{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// toTag converts a trace entry to a compound for canonical serialization.
func (q QueryTrace) toTag() nbt.Compound {
	c := nbt.Compound{
		"pattern": nbt.String(q.Pattern),
		"invert":  nbt.Bool(q.Invert),
		"path":    nbt.String(q.Path),
		"matched": nbt.Strings(q.Matched...),
		"total":   nbt.Int(q.Total),
		"seq":     nbt.Long(q.Seq),
	}
	if q.Unknown != "" {
		c["unknown"] = nbt.String(q.Unknown)
	}
	return c
}
