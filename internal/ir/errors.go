package ir

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a failure detected while describing or rendering a query.
//
// Errors are raised eagerly at the offending call and are never recoverable
// mid-build: the caller discards the builder and starts again.
//
// Error includes structured fields so callers (and the CLI's JSON output)
// can report which column, table or stage was involved.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Column names the offending column, when one is involved.
	Column string

	// Table names the table the column was checked against.
	Table string

	// Stages lists the builder stages involved (missing or already set).
	Stages []Stage
}

// Code categorizes query errors.
type Code string

const (
	// ErrCodeTypeMismatch indicates a literal whose type differs from the column's declared type.
	ErrCodeTypeMismatch Code = "TYPE_MISMATCH"

	// ErrCodeColumnNotInScope indicates a predicate column that is not part of the bound table.
	ErrCodeColumnNotInScope Code = "COLUMN_NOT_IN_SCOPE"

	// ErrCodeColumnNotInTable indicates a selected column that is not part of the queried table.
	ErrCodeColumnNotInTable Code = "COLUMN_NOT_IN_TABLE"

	// ErrCodeAlreadySelected indicates select was called a second time.
	ErrCodeAlreadySelected Code = "ALREADY_SELECTED"

	// ErrCodeAlreadyBound indicates from was called a second time.
	ErrCodeAlreadyBound Code = "ALREADY_BOUND"

	// ErrCodeAlreadyFiltered indicates where was called a second time.
	ErrCodeAlreadyFiltered Code = "ALREADY_FILTERED"

	// ErrCodeNoTableBound indicates where was called before from.
	ErrCodeNoTableBound Code = "NO_TABLE_BOUND"

	// ErrCodeIncompleteQuery indicates build was called before columns and table were set.
	ErrCodeIncompleteQuery Code = "INCOMPLETE_QUERY"

	// ErrCodeEmptySelection indicates select was called with no columns.
	ErrCodeEmptySelection Code = "EMPTY_SELECTION"

	// ErrCodeUnsupportedOperator indicates a comparison operator outside {=, <, >}.
	ErrCodeUnsupportedOperator Code = "UNSUPPORTED_OPERATOR"

	// ErrCodeInvalidValue indicates a Go value with no SQL literal form.
	ErrCodeInvalidValue Code = "INVALID_VALUE"

	// ErrCodeUnknownTable indicates a table name missing from the registry.
	ErrCodeUnknownTable Code = "UNKNOWN_TABLE"

	// ErrCodeUnknownColumn indicates a column name missing from its table.
	ErrCodeUnknownColumn Code = "UNKNOWN_COLUMN"
)

// Stage is one step of the query builder's progress.
type Stage string

const (
	StageColumns   Stage = "columns-selected"
	StageTable     Stage = "table-bound"
	StagePredicate Stage = "predicate-set"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Column != "" && e.Table != "":
		return fmt.Sprintf("%s: %s (column=%s, table=%s)", e.Code, e.Message, e.Column, e.Table)
	case e.Column != "":
		return fmt.Sprintf("%s: %s (column=%s)", e.Code, e.Message, e.Column)
	case e.Table != "":
		return fmt.Sprintf("%s: %s (table=%s)", e.Code, e.Message, e.Table)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the Code from err.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) (Code, bool) {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code, true
	}
	return "", false
}

// IsCode returns true if err is an *Error with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsOrderingError returns true for the protocol errors that a compile-time
// builder rules out: stage re-invocation, where before from, and early build.
func IsOrderingError(err error) bool {
	c, ok := CodeOf(err)
	if !ok {
		return false
	}
	switch c {
	case ErrCodeAlreadySelected, ErrCodeAlreadyBound, ErrCodeAlreadyFiltered,
		ErrCodeNoTableBound, ErrCodeIncompleteQuery:
		return true
	}
	return false
}

// NewTypeMismatch creates an Error for a literal of the wrong type.
func NewTypeMismatch(column string, want, got Type) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("column expects type %s but received %s", want, got),
		Column:  column,
	}
}

// NewListTypeMismatch creates an Error for an IN list element of the wrong type.
func NewListTypeMismatch(column string, want, got Type, index int) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("all values in IN list must be of type %s, element %d is %s", want, index, got),
		Column:  column,
	}
}

// NewColumnNotInScope creates an Error for a predicate column outside the bound table.
func NewColumnNotInScope(column, table string) *Error {
	return &Error{
		Code:    ErrCodeColumnNotInScope,
		Message: fmt.Sprintf("column '%s' is not part of the table '%s' in the FROM clause", column, table),
		Column:  column,
		Table:   table,
	}
}

// NewColumnNotInTable creates an Error for a selected column outside the queried table.
func NewColumnNotInTable(column, table string) *Error {
	return &Error{
		Code:    ErrCodeColumnNotInTable,
		Message: fmt.Sprintf("column '%s' selected is not part of table '%s' specified in FROM clause", column, table),
		Column:  column,
		Table:   table,
	}
}

// NewAlreadySelected creates an Error for a second select.
func NewAlreadySelected() *Error {
	return &Error{
		Code:    ErrCodeAlreadySelected,
		Message: "columns already selected",
		Stages:  []Stage{StageColumns},
	}
}

// NewAlreadyBound creates an Error for a second from.
func NewAlreadyBound(table string) *Error {
	return &Error{
		Code:    ErrCodeAlreadyBound,
		Message: "source table already bound",
		Table:   table,
		Stages:  []Stage{StageTable},
	}
}

// NewAlreadyFiltered creates an Error for a second where.
func NewAlreadyFiltered() *Error {
	return &Error{
		Code:    ErrCodeAlreadyFiltered,
		Message: "predicate already attached",
		Stages:  []Stage{StagePredicate},
	}
}

// NewNoTableBound creates an Error for where before from.
func NewNoTableBound() *Error {
	return &Error{
		Code:    ErrCodeNoTableBound,
		Message: "where requires a table bound by from",
		Stages:  []Stage{StageTable},
	}
}

// NewIncompleteQuery creates an Error naming the stages build still needs.
func NewIncompleteQuery(missing ...Stage) *Error {
	names := make([]string, len(missing))
	for i, s := range missing {
		names[i] = string(s)
	}
	return &Error{
		Code:    ErrCodeIncompleteQuery,
		Message: "missing stage(s): " + strings.Join(names, ", "),
		Stages:  missing,
	}
}

// NewEmptySelection creates an Error for select with no columns.
func NewEmptySelection() *Error {
	return &Error{
		Code:    ErrCodeEmptySelection,
		Message: "select requires at least one column",
		Stages:  []Stage{StageColumns},
	}
}

// NewUnsupportedOperator creates an Error for an unknown comparison operator.
func NewUnsupportedOperator(op string) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedOperator,
		Message: fmt.Sprintf("unsupported comparison operator %q", op),
	}
}

// NewInvalidValue creates an Error for a value with no SQL literal form.
func NewInvalidValue(message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidValue,
		Message: message,
	}
}

// NewUnknownTable creates an Error for a table missing from a registry.
func NewUnknownTable(table string) *Error {
	return &Error{
		Code:    ErrCodeUnknownTable,
		Message: "table is not registered",
		Table:   table,
	}
}

// NewUnknownColumn creates an Error for a column missing from its table.
func NewUnknownColumn(column, table string) *Error {
	return &Error{
		Code:    ErrCodeUnknownColumn,
		Message: "column is not defined on table",
		Column:  column,
		Table:   table,
	}
}
