package querydoc

import (
	"fmt"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/schema"
)

// Describe resolves the document into a query descriptor and returns every
// problem it finds, where Apply stops at the first.
//
// Problems come in three groups, in order:
//  1. Step problems: ordering errors and names that do not resolve,
//     prefixed with the step index
//  2. queryir.Validate over the descriptor: selected columns outside the
//     table, then each failed or out-of-scope predicate leaf
//  3. INCOMPLETE_QUERY for stages no step ever attempted
//
// Resolved columns are kept even when they do not belong to the table, so
// that each is reported.
func (d *Document) Describe(reg *schema.Registry) (queryir.Select, []error) {
	var (
		sel      queryir.Select
		problems []error

		selected, bound, filtered bool
	)
	fail := func(i int, err error) {
		problems = append(problems, fmt.Errorf("steps[%d]: %w", i, err))
	}

	for i, step := range d.Steps {
		switch {
		case step.Select != nil:
			if selected {
				fail(i, ir.NewAlreadySelected())
				continue
			}
			selected = true
			if len(step.Select) == 0 {
				fail(i, ir.NewEmptySelection())
				continue
			}
			for _, ref := range step.Select {
				col, err := resolveColumn(reg, sel.From, ref)
				if err != nil {
					fail(i, err)
					continue
				}
				sel.Columns = append(sel.Columns, col)
			}

		case step.From != "":
			if bound {
				name := step.From
				if sel.From != nil {
					name = sel.From.Name()
				}
				fail(i, ir.NewAlreadyBound(name))
				continue
			}
			bound = true
			table, err := reg.Table(step.From)
			if err != nil {
				fail(i, err)
				continue
			}
			sel.From = table

		default:
			if !bound {
				fail(i, ir.NewNoTableBound())
				continue
			}
			if filtered {
				fail(i, ir.NewAlreadyFiltered())
				continue
			}
			filtered = true
			if sel.From == nil {
				// The table failed to resolve and is already reported.
				continue
			}
			pred := resolveCondition(reg, sel.From, step.Where)
			sel.Filter = pred.build(queryir.NewScope(sel.From))
		}
	}

	problems = append(problems, queryir.Validate(sel).Problems...)

	var missing []ir.Stage
	if !selected {
		missing = append(missing, ir.StageColumns)
	}
	if !bound {
		missing = append(missing, ir.StageTable)
	}
	if len(missing) > 0 {
		problems = append(problems, ir.NewIncompleteQuery(missing...))
	}
	return sel, problems
}
