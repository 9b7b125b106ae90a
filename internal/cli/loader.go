package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/typedsql/internal/catalog"
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/querydoc"
	"github.com/roach88/typedsql/internal/schema"
)

// LoadError represents an error that occurred while loading a schema or
// query file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchema returns the registry for a CUE schema directory.
// An empty dir selects the built-in catalog.
func LoadSchema(dir string) (*schema.Registry, error) {
	if dir == "" {
		return catalog.Registry(), nil
	}

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := schema.FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	reg, err := schema.LoadCUE(dir)
	if err != nil {
		return nil, convertSchemaError(err)
	}
	return reg, nil
}

// LoadQuery reads and validates a query document.
func LoadQuery(path string) (*querydoc.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", path)}
	}
	doc, err := querydoc.Load(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidQuery, Message: err.Error()}
	}
	return doc, nil
}

// convertSchemaError converts a schema error to a LoadError with position info.
func convertSchemaError(err error) *LoadError {
	var compileErr *schema.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// errorCode returns the code reported for err: the LoadError code, the
// query error code (TYPE_MISMATCH, ...), or ErrCodeGeneric.
func errorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	if code, ok := ir.CodeOf(err); ok {
		return string(code)
	}
	return ErrCodeGeneric
}

// errorMessage returns err's text without the LoadError code prefix.
func errorMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && !loadErr.Pos.IsValid() {
		return loadErr.Message
	}
	return err.Error()
}

// Error code constants - unified across all CLI commands.
// Query build failures report their own codes (TYPE_MISMATCH, ...).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error

	ErrCodeInvalidQuery = "E201" // Malformed query document
)
