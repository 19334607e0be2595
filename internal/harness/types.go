package harness

// StepResult is the outcome of one command.
type StepResult struct {
	Args     []string         `json:"args"`
	ExitCode int              `json:"exit_code"`
	Records  []map[string]any `json:"records"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Steps holds each command's exit code and records, in order.
	Steps []StepResult `json:"steps"`

	// Output is the raw stdout of all steps concatenated.
	Output []byte `json:"-"`

	// JournalLines is the number of lines the journal recorded.
	JournalLines int `json:"journal_lines"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Records returns the records of every step, in emission order.
func (r *Result) Records() []map[string]any {
	var out []map[string]any
	for _, s := range r.Steps {
		out = append(out, s.Records...)
	}
	return out
}
