package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV reads all records, auto-detecting encoding and converting to UTF-8.
// Blank lines come back as empty rows; salad sections end on them.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	// Valid UTF-8 (plain ASCII included) is read as is; anything else goes through
	// the legacy code page chardet guesses.
	peek, _ := br.Peek(2048)
	var dec io.Reader = br
	if !looksUTF8(peek) {
		cs := ""
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
		dec = transform.NewReader(br, legacyCharmap(cs).NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows := [][]string{}
	lastLine := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// encoding/csv skips empty lines, so recover them from record positions.
		line, _ := cr.FieldPos(0)
		for ; lastLine+1 < line; lastLine++ {
			rows = append(rows, []string{})
		}
		last := len(rec) - 1
		endLine, _ := cr.FieldPos(last)
		lastLine = endLine + strings.Count(rec[last], "\n")
		rows = append(rows, rec)
	}
	return normalizeRows(rows), nil
}

func legacyCharmap(cs string) *charmap.Charmap {
	switch cs {
	case "windows-1251":
		return charmap.Windows1251
	case "koi8-r":
		return charmap.KOI8R
	case "iso-8859-2":
		return charmap.ISO8859_2
	default:
		// Excel "CSV" exports on Windows
		return charmap.Windows1252
	}
}

// looksUTF8 tolerates a rune cut off at the end of the peek window.
func looksUTF8(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return !utf8.FullRune(b)
		}
		b = b[size:]
	}
	return true
}
