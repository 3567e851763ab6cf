// Package writer serializes normalized datasets for spreadsheet import.
//
// Output is UTF-8 with a BOM, uses "\n" line endings, quotes every
// non-numeric field (header included) and leaves numbers bare.
package writer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/utils"
)

// Fix entries recorded after a successful save.
const (
	FixBOM         = "Saved with UTF-8 BOM encoding"
	FixLineEndings = "Applied Unix line endings (LF)"
)

const outputExt = ".csv"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Encode renders ds as comma-separated bytes.
func Encode(ds *table.Dataset) []byte {
	var buf bytes.Buffer
	buf.Write(bom)
	for i, name := range ds.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeQuoted(&buf, name)
	}
	buf.WriteByte('\n')
	for _, row := range ds.Rows {
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeCell(&buf, v)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeCell(buf *bytes.Buffer, v table.Value) {
	if v.IsNumeric() {
		buf.WriteString(v.String())
		return
	}
	writeQuoted(buf, v.String())
}

func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(s, `"`, `""`))
	buf.WriteByte('"')
}

// WriteFile atomically writes ds to path and returns the fixes it applied.
func WriteFile(path string, ds *table.Dataset) ([]string, error) {
	if err := utils.SafeWriteFile(path, Encode(ds)); err != nil {
		return nil, err
	}
	return []string{FixBOM, FixLineEndings}, nil
}

// Dir writes datasets into a directory, one file per input name. It
// satisfies pipeline.Sink.
type Dir string

// Write saves ds under the directory using name with a .csv extension.
func (d Dir) Write(name string, ds *table.Dataset) ([]string, error) {
	if err := utils.EnsureDir(string(d)); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return WriteFile(filepath.Join(string(d), OutputName(name)), ds)
}

// OutputName maps an input file name to its output name.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, outputExt) {
		return name
	}
	return strings.TrimSuffix(name, ext) + outputExt
}
