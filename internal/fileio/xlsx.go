package fileio

import (
	"bytes"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"tablemap-service/internal/mapping/model"
)

func readXLSX(r io.Reader, headerRow int) (model.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return model.Table{}, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return model.Table{}, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.Table{}, err
	}
	h := pickHeader(rows, headerRow)
	return rowsToTable(rows, h, headerRow), nil
}
