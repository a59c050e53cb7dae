package service

import (
	"sort"

	"tablemap-service/internal/mapping/model"
)

// Project builds a new table with one column per mapped canonical field,
// renamed to the canonical name and filled from the claimed source column.
// Output columns are sorted by field name. When two fields claimed the same
// source column, each gets its own copy of the values, so projection never
// collides and is deterministic.
func Project(t model.Table, res model.Result) model.Table {
	fields := make([]string, 0, len(res.Mapped))
	for f := range res.Mapped {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	src := make([]int, len(fields))
	for i, f := range fields {
		src[i] = t.ColumnIndex(res.Mapped[f])
	}

	out := model.Table{Columns: fields, Rows: make([][]string, len(t.Rows))}
	for r := range t.Rows {
		row := make([]string, len(fields))
		for i, idx := range src {
			if idx >= 0 {
				row[i] = t.Cell(r, idx)
			}
		}
		out.Rows[r] = row
	}
	return out
}
