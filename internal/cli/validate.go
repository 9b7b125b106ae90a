package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Table    string            `json:"table,omitempty"`
	Columns  []string          `json:"columns,omitempty"`
	Filtered bool              `json:"filtered"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
}

// ValidationIssue is one problem found in a query document.
type ValidationIssue struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Stages  []string `json:"stages,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <query.yaml>",
		Short: "Check a query document without rendering it",
		Long: `Resolve a YAML query document and report every problem instead of
stopping at the first: ordering errors, unknown names, selected columns
outside the table, predicate scope and type errors, and stages that no step
sets. No SQL is produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	doc, reg, err := loadQueryAndSchema(opts, path)
	if err != nil {
		_ = formatter.Fail(err)
		return WrapExitError(ExitCommandError, "failed to load query", err)
	}
	formatter.VerboseLog("Validating %d step(s) from %s", len(doc.Steps), path)

	sel, problems := doc.Describe(reg)
	issues := make([]ValidationIssue, 0, len(problems))
	for _, problem := range problems {
		issues = append(issues, newIssue(problem))
	}

	result := describe(sel)
	result.Errors = issues
	result.Valid = len(issues) == 0

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputValidateText(cmd, path, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(issues)))
	}
	return nil
}

func newIssue(err error) ValidationIssue {
	issue := ValidationIssue{Code: errorCode(err), Message: err.Error()}
	var qe *ir.Error
	if errors.As(err, &qe) {
		for _, s := range qe.Stages {
			issue.Stages = append(issue.Stages, string(s))
		}
	}
	return issue
}

func describe(sel queryir.Select) ValidationResult {
	var result ValidationResult
	if sel.HasTable() {
		result.Table = sel.From.Name()
	}
	for _, col := range sel.Columns {
		result.Columns = append(result.Columns, col.Name())
	}
	result.Filtered = sel.HasFilter()
	return result
}

func outputValidateText(cmd *cobra.Command, path string, result ValidationResult) {
	w := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintf(w, "✓ %s: %d column(s) from %s", path, len(result.Columns), result.Table)
		if result.Filtered {
			fmt.Fprint(w, " with filter")
		}
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "✗ %s\n", path)
	for _, issue := range result.Errors {
		fmt.Fprintf(w, "  [%s] %s\n", issue.Code, issue.Message)
	}
}
