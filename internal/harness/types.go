package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// SQL is the rendered query. Empty if the build failed.
	SQL string `json:"sql,omitempty"`

	// Params holds placeholder values when the scenario renders with params.
	Params []any `json:"params,omitempty"`

	// ErrorCode is the code of the build error, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// ErrorMessage is the full text of the build error, if any.
	ErrorMessage string `json:"error_message,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed reports whether building the query failed.
func (r *Result) Failed() bool {
	return r.ErrorCode != "" || r.ErrorMessage != ""
}
