package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/querydoc"
	"github.com/roach88/typedsql/internal/schema"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Params bool // emit placeholders and a parameter list
}

// RenderResult is the JSON payload of a successful render.
type RenderResult struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <query.yaml>",
		Short: "Render a query document to SQL",
		Long: `Apply a YAML query document to the runtime-checked builder and print
the SQL. Every check runs before any text is produced; a failing query
prints its error code and exits 1.

Exit codes:
  0 - SQL rendered
  1 - Query failed to build (TYPE_MISMATCH, NO_TABLE_BOUND, ...)
  2 - Command error (missing file, bad schema, etc.)

Examples:
  typedsql render query.yaml
  typedsql render query.yaml --params
  typedsql render query.yaml --schema ./schema --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Params, "params", false, "render placeholders and print the parameter list")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	traceID := uuid.Must(uuid.NewV7()).String()
	logger := opts.logger().With("trace_id", traceID)

	formatter := opts.formatter(cmd)
	formatter.TraceID = traceID

	doc, reg, err := loadQueryAndSchema(opts.RootOptions, path)
	if err != nil {
		_ = formatter.Fail(err)
		return WrapExitError(ExitCommandError, "failed to load query", err)
	}

	var result RenderResult
	if opts.Params {
		result.SQL, result.Params, err = doc.RenderParams(reg)
	} else {
		result.SQL, err = doc.Render(reg)
	}
	if err != nil {
		logger.Debug("query build failed", "query", path, "error", err)
		_ = formatter.Fail(err)
		return WrapExitError(ExitFailure, "query build failed", err)
	}
	logger.Debug("query rendered", "query", path, "params", len(result.Params))

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, result.SQL)
	if opts.Params {
		literals, err := formatParams(result.Params)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "params: %s\n", strings.Join(literals, ", "))
	}
	return nil
}

// loadQueryAndSchema loads the document at path and the registry it runs
// against: --schema if set, else the document's own schema, else the
// built-in catalog.
func loadQueryAndSchema(opts *RootOptions, path string) (*querydoc.Document, *schema.Registry, error) {
	doc, err := LoadQuery(path)
	if err != nil {
		return nil, nil, err
	}
	dir := opts.Schema
	if dir == "" {
		dir = doc.Schema
	}
	reg, err := LoadSchema(dir)
	if err != nil {
		return nil, nil, err
	}
	return doc, reg, nil
}

// formatParams renders parameter values as SQL literals.
func formatParams(params []any) ([]string, error) {
	literals := make([]string, len(params))
	for i, p := range params {
		v, err := ir.FromGo(p)
		if err != nil {
			return nil, fmt.Errorf("params[%d]: %w", i, err)
		}
		literals[i] = v.SQL()
	}
	return literals, nil
}
