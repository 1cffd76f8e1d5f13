package fileio

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrSheetNotFound   = errors.New("sheet not found")
)

// ReadAnyRows picks a reader by extension and returns the sheet as positional rows,
// header row included. sheet selects a worksheet by name in xlsx/xls files; empty means
// the first sheet. CSV files have a single table and ignore it.
func ReadAnyRows(r io.Reader, filename, sheet string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx":
		rows, err = readXLSX(r, sheet)
	case ".xls":
		rows, err = readXLS(r, sheet)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, eris.Wrapf(ErrUnsupportedFile, "%s", filename)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", filename)
	}
	return rows, nil
}

// normalizeCell trims and folds NBSP / narrow NBSP into plain spaces.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}

func normalizeRows(rows [][]string) [][]string {
	if rows == nil {
		return [][]string{}
	}
	for _, r := range rows {
		for j := range r {
			r[j] = normalizeCell(r[j])
		}
	}
	return rows
}
