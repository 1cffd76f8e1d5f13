package fileio

import (
	"fmt"
	"io"
	"strconv"

	excelize "github.com/xuri/excelize/v2"

	"vendor-orders/internal/vendororder/model"
)

// OutputSheet is the name of the generated worksheet.
const OutputSheet = "Vendor Order List"

const stampLayout = "02-Jan-2006 15:04:05"

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) row(r int, vals ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.sheet, cell, &vals)
}

func (s *sheetWriter) set(cell string, v any) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellValue(s.sheet, cell, v)
}

func (s *sheetWriter) style(r, fromCol, toCol, styleID int) {
	if s.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, r)
	to, _ := excelize.CoordinatesToCellName(toCol, r)
	s.err = s.f.SetCellStyle(s.sheet, from, to, styleID)
}

func (s *sheetWriter) title(r, toCol int, text string, styleID int) {
	if s.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(1, r)
	to, _ := excelize.CoordinatesToCellName(toCol, r)
	if s.err = s.f.MergeCell(s.sheet, from, to); s.err != nil {
		return
	}
	s.set(from, text)
	s.style(r, 1, 1, styleID)
}

type outputStyles struct {
	title, stamp, orderHead, msgHead, unmatchedHead, unitOnly, wrap int
}

func newOutputStyles(f *excelize.File) (outputStyles, error) {
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 14}, Alignment: &excelize.Alignment{Horizontal: "center"}},
		{Font: &excelize.Font{Bold: true}, Fill: fill("#D9D9D9")},
		{Font: &excelize.Font{Bold: true}, Fill: fill("#D9EAD3")},
		{Font: &excelize.Font{Bold: true}, Fill: fill("#FCE5CD")},
		{Font: &excelize.Font{Bold: true}, Fill: fill("#F4CCCC")},
		{Fill: fill("#FFF2CC")},
		{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}},
	}
	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return outputStyles{}, err
		}
		ids[i] = id
	}
	return outputStyles{
		title: ids[0], stamp: ids[1], orderHead: ids[2], msgHead: ids[3],
		unmatchedHead: ids[4], unitOnly: ids[5], wrap: ids[6],
	}, nil
}

// WriteWorkbook renders a run as the "Vendor Order List" sheet: the last-run stamp and
// buffer cell, then the order table, the WhatsApp messages and the unmatched items.
func WriteWorkbook(w io.Writer, res model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OutputSheet); err != nil {
		return err
	}
	st, err := newOutputStyles(f)
	if err != nil {
		return err
	}
	s := &sheetWriter{f: f, sheet: OutputSheet}

	s.set("F1", "Last Run")
	s.set("G1", res.GeneratedAt.Format(stampLayout))
	s.set("F2", "Buffer %")
	s.set("G2", res.BufferPercent)
	s.style(1, 6, 7, st.stamp)
	s.style(2, 6, 7, st.stamp)

	r := 3
	s.title(r, 3, "VENDOR ORDER LIST", st.title)
	r++
	bufLabel := fmt.Sprintf("Weight (+%s%%)", strconv.FormatFloat(res.BufferPercent, 'f', -1, 64))
	s.row(r, "Sr No", "Product Name", "Vendor", "Units", "S-Units", "Weight (Base)", bufLabel)
	s.style(r, 1, 7, st.orderHead)
	r++
	for _, l := range res.OrderLines {
		s.row(r, l.Serial, l.DisplayName, l.Vendor, l.Units, l.SUnits, l.BaseWeight, l.BufferedWeight)
		if l.BaseWeight == "" || l.BaseWeight == "—" {
			s.style(r, 1, 7, st.unitOnly)
		}
		r++
	}
	r++

	s.title(r, 3, "WHATSAPP MESSAGES", st.title)
	r++
	s.row(r, "S no", "Vendor Name", "Phone Number", "Language", "Message")
	s.style(r, 1, 5, st.msgHead)
	r++
	for _, m := range res.Messages {
		s.row(r, m.Serial, m.VendorName, m.Phone, string(m.Language), m.Text)
		s.style(r, 5, 5, st.wrap)
		r++
	}
	r++

	s.title(r, 3, "UNMATCHED ITEMS", st.title)
	r++
	s.row(r, "S no", "Item Name", "Quantity", "Source", "Note")
	s.style(r, 1, 5, st.unmatchedHead)
	r++
	if len(res.Unmatched) == 0 {
		s.row(r, 1, "—", "—", "—", "All items matched")
	}
	for _, u := range res.Unmatched {
		s.row(r, u.Serial, u.Name, u.Quantity, u.Source, u.Note)
		r++
	}
	if s.err != nil {
		return s.err
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 8}, {"B", 45}, {"C", 16}, {"D", 10}, {"E", 45}, {"F", 16}, {"G", 18},
	}
	for _, cw := range widths {
		if err := f.SetColWidth(OutputSheet, cw.col, cw.col, cw.width); err != nil {
			return err
		}
	}
	return f.Write(w)
}
