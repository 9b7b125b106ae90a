package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TableInfo describes one registered table.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [schema-dir]",
		Short: "List tables and their typed columns",
		Long: `List every table in a CUE schema directory with its columns in
declaration order. Without a directory (and without --schema) the built-in
catalog is listed.

Examples:
  typedsql tables
  typedsql tables ./schema --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.Schema
			if len(args) == 1 {
				dir = args[0]
			}
			return runTables(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runTables(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	reg, err := LoadSchema(dir)
	if err != nil {
		_ = formatter.Fail(err)
		return WrapExitError(ExitCommandError, "failed to load schema", err)
	}

	tables := reg.Tables()
	infos := make([]TableInfo, 0, len(tables))
	for _, t := range tables {
		info := TableInfo{Name: t.Name()}
		for _, col := range t.Columns() {
			info.Columns = append(info.Columns, ColumnInfo{Name: col.Name(), Type: string(col.Type())})
		}
		infos = append(infos, info)
	}
	formatter.VerboseLog("Loaded %d table(s)", len(infos))

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		cols := make([]string, len(info.Columns))
		for i, c := range info.Columns {
			cols[i] = c.Name + " " + c.Type
		}
		fmt.Fprintf(w, "%s: %s\n", info.Name, strings.Join(cols, ", "))
	}
	return nil
}
