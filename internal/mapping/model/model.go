package model

// Table is an ordered set of named columns with row-major cells.
// Rows may be shorter than Columns; missing cells read as "".
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), "" when the row is short.
func (t Table) Cell(row, col int) string {
	if col < len(t.Rows[row]) {
		return t.Rows[row][col]
	}
	return ""
}

// Result of one mapping run: canonical field -> observed column, with
// per-field confidence, plus the leftovers on both sides.
type Result struct {
	Mapped          map[string]string  `json:"mapped"`
	Confidence      map[string]float64 `json:"confidence"`
	Unmapped        []string           `json:"unmapped"`
	MissingRequired []string           `json:"missingRequired"`
}
