// Legacy .xls parser: we fix the table width ourselves and read every cell up to it.
package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
	"github.com/rotisserie/eris"
)

// computeMaxCols scans a bounded number of columns and keeps the widest non-empty one.
func computeMaxCols(sheet *xls.WorkSheet) int {
	const scanMaxCols = 64
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := 0; j < scanMaxCols; j++ {
			if v := normalizeCell(r.Col(j)); v != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func findXLSSheet(wb *xls.WorkBook, name string) *xls.WorkSheet {
	if name == "" {
		return wb.GetSheet(0)
	}
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == name {
			return s
		}
	}
	return nil
}

func readXLS(r io.Reader, sheetName string) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("xls: failed to open workbook")
	}

	sheet := findXLSSheet(wb, sheetName)
	if sheet == nil {
		if sheetName == "" {
			return [][]string{}, nil
		}
		return nil, eris.Wrapf(ErrSheetNotFound, "%q", sheetName)
	}

	// blank rows are kept: the salad breaker uses them as section breaks
	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = normalizeCell(row.Col(j))
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}
