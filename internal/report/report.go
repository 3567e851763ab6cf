// Package report renders the human-readable artifacts of a batch run.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/utils"
)

const previewColumns = 5

var (
	heavyRule = strings.Repeat("=", 70)
	lightRule = strings.Repeat("-", 70)
)

// FixReport renders the plain-text summary of a batch run.
func FixReport(res *pipeline.Results, outputDir string) string {
	ok, failed := res.Counts()
	var b strings.Builder
	b.WriteString(heavyRule + "\n")
	b.WriteString("CSV FIX REPORT - SPREADSHEET READY\n")
	b.WriteString(heavyRule + "\n\n")
	if res.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", res.RunID))
	}
	b.WriteString(fmt.Sprintf("Files processed: %d\n", res.Len()))
	b.WriteString(fmt.Sprintf("Succeeded: %d\n", ok))
	b.WriteString(fmt.Sprintf("Failed: %d\n\n", failed))
	b.WriteString(lightRule + "\n")
	b.WriteString("FIX DETAILS\n")
	b.WriteString(lightRule + "\n")

	for _, r := range res.All() {
		b.WriteString(fmt.Sprintf("\n[FILE] %s\n", r.Name))
		if !r.OK() {
			b.WriteString("   Status: [ERROR] Failed\n")
			b.WriteString(fmt.Sprintf("   Error: %s\n", r.Error()))
			continue
		}
		b.WriteString("   Status: [OK] Succeeded\n")
		b.WriteString(fmt.Sprintf("   Rows: %d, Columns: %d\n", r.Rows, r.Columns))
		b.WriteString(fmt.Sprintf("   Column names: %s\n", previewNames(r.ColumnNames)))
		b.WriteString("   Fixes applied:\n")
		for _, fix := range r.Fixes {
			b.WriteString(fmt.Sprintf("     - %s\n", fix))
		}
	}

	b.WriteString("\n" + heavyRule + "\n")
	b.WriteString("NEXT STEPS:\n")
	b.WriteString("  1. Open Google Drive (drive.google.com)\n")
	b.WriteString("  2. Upload every CSV file from the output folder\n")
	b.WriteString("  3. Right-click a file -> 'Open with' -> 'Google Sheets'\n")
	b.WriteString("  4. In Looker, choose 'Google Sheets' as the data source\n")
	b.WriteString(heavyRule + "\n")
	b.WriteString(fmt.Sprintf("\nOutput folder: %s\n", outputDir))
	return b.String()
}

func previewNames(names []string) string {
	if len(names) <= previewColumns {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:previewColumns], ", ") + ", ..."
}

// SchemaReference renders a markdown column listing for every successful
// file, with a suggested storage type per column.
func SchemaReference(res *pipeline.Results) string {
	var b strings.Builder
	b.WriteString("# Schema Reference\n")
	b.WriteString("# Columns of every normalized table, for building the data model.\n\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for _, r := range res.All() {
		if !r.OK() {
			continue
		}
		b.WriteString(fmt.Sprintf("## %s\n", r.Name))
		b.WriteString(fmt.Sprintf("Rows: %d | Columns: %d\n\n", r.Rows, r.Columns))
		rows := make([][]string, len(r.ColumnNames))
		for i, name := range r.ColumnNames {
			cat := ""
			if i < len(r.Categories) {
				cat = string(r.Categories[i])
			}
			rows[i] = []string{safeCell(name), normalize.SuggestType(name), cat}
		}
		for _, line := range markdownTable([]string{"Column Name", "Type (suggested)", "Category"}, rows) {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
	}
	return b.String()
}

// markdownTable pads cells to the display width of the widest entry so
// wide runes line up in a terminal.
func markdownTable(header []string, rows [][]string) []string {
	widths := make([]int, len(header))
	measure := func(row []string) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	line := func(row []string, sep bool) string {
		var sb strings.Builder
		sb.WriteString("|")
		for j, w := range widths {
			sb.WriteString(" ")
			if sep {
				sb.WriteString(strings.Repeat("-", w))
			} else {
				cell := ""
				if j < len(row) {
					cell = row[j]
				}
				sb.WriteString(runewidth.FillRight(cell, w))
			}
			sb.WriteString(" |")
		}
		return sb.String()
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, line(header, false), line(nil, true))
	for _, r := range rows {
		out = append(out, line(r, false))
	}
	return out
}

func safeCell(s string) string {
	if s == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

// WriteArtifacts saves the fix report and schema reference into dir under
// the given file names.
func WriteArtifacts(dir, reportFile, schemaFile string, res *pipeline.Results) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(dir, reportFile), []byte(FixReport(res, dir))); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(dir, schemaFile), []byte(SchemaReference(res))); err != nil {
		return fmt.Errorf("write schema reference: %w", err)
	}
	return nil
}
