package fileio

import (
	"bytes"
	"io"

	"github.com/rotisserie/eris"
	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if sheet != "" {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			return nil, eris.Wrapf(ErrSheetNotFound, "%q", sheet)
		}
		name = sheet
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}
