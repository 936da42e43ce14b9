package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV reads CSV auto-detecting encoding and delimiter, converting to UTF-8.
// It supports UTF-8, Windows-1251 and Windows-1252 out of the box.
func readCSV(r io.Reader) ([]sheet, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding and delimiter
	peek, _ := br.Peek(4096)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	// chardet путает короткий UTF-8 с однобайтовыми кодировками:
	// валидный UTF-8 не перекодируем вовсе.
	var dec io.Reader = br
	switch {
	case validUTF8Prefix(peek):
	case cs == "windows-1251" || cs == "cp1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
	case cs == "koi8-r":
		dec = transform.NewReader(br, charmap.KOI8R.NewDecoder())
	default:
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = sniffDelimiter(peek)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\uFEFF")
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return []sheet{{name: "csv", rows: rows}}, nil
}

// validUTF8Prefix проверяет peek до последнего перевода строки (хвост может быть обрезан посреди руны).
func validUTF8Prefix(peek []byte) bool {
	if i := bytes.LastIndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	return utf8.Valid(peek)
}

// sniffDelimiter picks the most frequent of ; , tab in the first line.
// European exports use ';' because ',' is the decimal separator.
func sniffDelimiter(peek []byte) rune {
	line := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		line = peek[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
