package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/typedsql/internal/ir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // SQL rendered, query valid, scenarios passed
	ExitFailure      = 1 // The query itself is wrong, or a scenario failed
	ExitCommandError = 2 // The command could not run (missing file, bad schema, etc.)
)

// ExitError carries the process exit code out of a command's RunE.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // Summary printed by main
	Err     error  // Cause, if any
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Anything that is not an ExitError counts as a query failure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as JSON envelopes or plain text.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Verbose output; keeps JSON on Writer parseable
	Verbose   bool
	TraceID   string // Attached to JSON responses when set
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// CLIError describes a failure. Query errors fill Column, Table and Stages
// from the *ir.Error; loader errors use an E0xx code and leave them empty.
type CLIError struct {
	Code    string   `json:"code"` // TYPE_MISMATCH, E005, ...
	Message string   `json:"message"`
	Column  string   `json:"column,omitempty"`
	Table   string   `json:"table,omitempty"`
	Stages  []string `json:"stages,omitempty"`
	Details any      `json:"details,omitempty"`
}

// newCLIError converts err to its reported form.
func newCLIError(err error) *CLIError {
	e := &CLIError{Code: errorCode(err), Message: errorMessage(err)}
	var qe *ir.Error
	if errors.As(err, &qe) {
		e.Column = qe.Column
		e.Table = qe.Table
		for _, s := range qe.Stages {
			e.Stages = append(e.Stages, string(s))
		}
	}
	return e
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs a failure given as code and message.
func (f *OutputFormatter) Error(code, message string, details any) error {
	return f.report(&CLIError{Code: code, Message: message, Details: details})
}

// Fail outputs err, keeping the column, table and stages of query errors.
func (f *OutputFormatter) Fail(err error) error {
	return f.report(newCLIError(err))
}

func (f *OutputFormatter) report(e *CLIError) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "error", Error: e})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message)
	if !f.Verbose {
		return nil
	}
	if len(e.Stages) > 0 {
		fmt.Fprintf(f.Writer, "Stages: %v\n", e.Stages)
	}
	if e.Details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", e.Details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.TraceID = f.TraceID
	return json.NewEncoder(f.Writer).Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// It writes to ErrWriter when set so JSON output stays clean.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
