// Post-mapping cleanup of a projected (canonical-name) table: date and
// numeric coercion, key dedupe, derived unit price.
package clean

import (
	"strconv"
	"strings"
	"time"

	"tablemap-service/internal/mapping/model"
	"tablemap-service/internal/utils"
)

type Options struct {
	DateColumns     []string // normalized to YYYY-MM-DD; rows failing the first listed column are dropped
	NumericColumns  []string // tolerant parse, garbage and blanks become 0
	DedupeKey       string   // column to dedupe on, first occurrence wins
	DeriveUnitPrice bool     // adds unit_price = sales/quantity when both columns exist
}

// layouts accepted for date cells, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2-Jan-2006",
	"January 2, 2006",
}

// Apply runs the cleanup pipeline and returns a new table; the input is not
// modified. Columns named in opt but absent from the table are ignored.
func Apply(t model.Table, opt Options) model.Table {
	out := copyTable(t)
	out = coerceDates(out, opt.DateColumns)
	out = coerceNumeric(out, opt.NumericColumns)
	if opt.DeriveUnitPrice {
		out = deriveUnitPrice(out)
	}
	if opt.DedupeKey != "" {
		out = dedupe(out, opt.DedupeKey)
	}
	return out
}

func copyTable(t model.Table) model.Table {
	out := model.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		row := make([]string, len(t.Columns))
		copy(row, r)
		out.Rows[i] = row
	}
	return out
}

// coerceDates normalizes the named columns to YYYY-MM-DD. A row whose first
// listed date column does not parse is dropped; failures in the remaining
// date columns only blank the cell.
func coerceDates(t model.Table, cols []string) model.Table {
	idxs := presentColumns(t, cols)
	if len(idxs) == 0 {
		return t
	}
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		drop := false
		for n, idx := range idxs {
			d, ok := parseDate(row[idx])
			if ok {
				row[idx] = d
				continue
			}
			if n == 0 {
				drop = true
				break
			}
			row[idx] = ""
		}
		if !drop {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
	return t
}

func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format("2006-01-02"), true
		}
	}
	return "", false
}

func coerceNumeric(t model.Table, cols []string) model.Table {
	for _, idx := range presentColumns(t, cols) {
		for _, row := range t.Rows {
			v, ok := utils.ParseFloat(row[idx])
			if !ok {
				v = 0
			}
			row[idx] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return t
}

// deriveUnitPrice appends unit_price = sales/quantity. Zero quantity counts
// as 1 so the division stays defined. No-op unless both columns exist.
func deriveUnitPrice(t model.Table) model.Table {
	si := t.ColumnIndex("sales")
	qi := t.ColumnIndex("quantity")
	if si < 0 || qi < 0 {
		return t
	}
	t.Columns = append(t.Columns, "unit_price")
	for i, row := range t.Rows {
		sales, _ := utils.ParseFloat(row[si])
		qty, _ := utils.ParseFloat(row[qi])
		if qty == 0 {
			qty = 1
		}
		t.Rows[i] = append(row, strconv.FormatFloat(sales/qty, 'f', -1, 64))
	}
	return t
}

func dedupe(t model.Table, key string) model.Table {
	idx := t.ColumnIndex(key)
	if idx < 0 {
		return t
	}
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		k := strings.TrimSpace(row[idx])
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, row)
	}
	t.Rows = kept
	return t
}

func presentColumns(t model.Table, cols []string) []int {
	var idxs []int
	for _, c := range cols {
		if i := t.ColumnIndex(c); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
