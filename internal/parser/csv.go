package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// missingTokens are cell spellings read as no data.
var missingTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

type delimitedParser struct {
	ext   string
	comma rune
}

func (p delimitedParser) CanParse(filename string) bool { return hasExt(filename, p.ext) }

func (p delimitedParser) Parse(name string, content []byte) (*table.Dataset, []string, error) {
	text, fixes, err := decode(content)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = p.comma
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, rec)
	}
	return table.New(name, header, typeRecords(len(header), records)), fixes, nil
}

// decode strips a UTF-8 BOM and falls back to Latin-1 when the bytes are
// not valid UTF-8.
func decode(content []byte) ([]byte, []string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return content, nil, nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return nil, nil, fmt.Errorf("decode latin-1: %w", err)
	}
	return out, []string{pipeline.FixEncoding}, nil
}

type columnKind int

const (
	columnInteger columnKind = iota
	columnReal
	columnText
)

// typeRecords types cells column by column: a column whose present cells
// all parse as integers is Integer, all as numbers is Real, otherwise
// Text. Short rows are padded with Missing; cells past the header width
// are kept as Text.
func typeRecords(width int, records [][]string) [][]table.Value {
	kinds := make([]columnKind, width)
	for _, rec := range records {
		for j := 0; j < width && j < len(rec); j++ {
			cell := rec[j]
			if missingTokens[cell] || kinds[j] == columnText {
				continue
			}
			if _, ok := table.ParseInt(cell); ok {
				continue
			}
			if _, ok := table.ParseReal(cell); ok {
				kinds[j] = columnReal
				continue
			}
			kinds[j] = columnText
		}
	}

	rows := make([][]table.Value, len(records))
	for i, rec := range records {
		n := width
		if len(rec) > n {
			n = len(rec)
		}
		row := make([]table.Value, n)
		for j := range row {
			if j >= len(rec) {
				row[j] = table.Missing()
				continue
			}
			if j >= width {
				row[j] = table.Text(rec[j])
				continue
			}
			row[j] = typeCell(rec[j], kinds[j])
		}
		rows[i] = row
	}
	return rows
}

func typeCell(cell string, kind columnKind) table.Value {
	if missingTokens[cell] {
		return table.Missing()
	}
	switch kind {
	case columnInteger:
		i, _ := table.ParseInt(cell)
		return table.Int(i)
	case columnReal:
		f, _ := table.ParseReal(cell)
		return table.Real(f)
	default:
		return table.Text(cell)
	}
}
