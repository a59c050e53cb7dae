package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tablemap-service/internal/mapping/model"
)

// ReadAnyTable picks a parser by file extension and returns an ordered table.
// headerRow is the 1-based header line.
func ReadAnyTable(r io.Reader, filename string, headerRow int) (model.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return model.Table{}, fmt.Errorf("unsupported file: %s", filename)
	}
}

// pickHeader returns the header line, substituting "Column N" for blanks.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToTable assembles the data rows below the header into a table,
// padding short rows and skipping fully empty ones.
func rowsToTable(rows [][]string, headers []string, headerRow int) model.Table {
	t := model.Table{Columns: headers}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		row := make([]string, len(headers))
		empty := true
		for c := range headers {
			if c < len(rec) {
				row[c] = rec[c]
				if strings.TrimSpace(rec[c]) != "" {
					empty = false
				}
			}
		}
		if !empty {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
