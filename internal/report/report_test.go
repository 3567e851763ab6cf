package report_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/report"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

func results(t *testing.T) *pipeline.Results {
	t.Helper()
	wide := table.New("wide.csv",
		[]string{"A", "B", "C", "D", "E", "F"},
		[][]table.Value{{table.Int(1), table.Int(2), table.Int(3), table.Int(4), table.Int(5), table.Int(6)}})
	narrow := table.New("ürün.csv",
		[]string{"Ürün Adı", "Net Sales"},
		[][]table.Value{{table.Text("çay"), table.Real(1.5)}})
	r := &pipeline.Runner{Pipeline: pipeline.New(normalize.IdentifierTable{}, "")}
	return r.Run(context.Background(), []pipeline.Input{
		{Name: "wide.csv", Dataset: wide},
		{Name: "broken.csv", Err: os.ErrNotExist},
		{Name: "ürün.csv", Dataset: narrow},
	})
}

func TestFixReport(t *testing.T) {
	out := report.FixReport(results(t), "ready")
	for _, want := range []string{
		"Files processed: 3",
		"Succeeded: 2",
		"Failed: 1",
		"[FILE] wide.csv",
		"   Column names: a, b, c, d, e, ...",
		"     - " + pipeline.FixNumbers,
		"[FILE] broken.csv\n   Status: [ERROR] Failed\n   Error: file does not exist",
		"NEXT STEPS:",
		"Output folder: ready",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "wide.csv") > strings.Index(out, "broken.csv") {
		t.Fatalf("files must follow input order")
	}
}

func TestSchemaReference(t *testing.T) {
	out := report.SchemaReference(results(t))
	if strings.Contains(out, "broken.csv") {
		t.Fatalf("failed files must be omitted")
	}
	for _, want := range []string{
		"## ürün.csv\nRows: 1 | Columns: 2\n",
		"| Column Name | Type (suggested) | Category  |",
		"| ----------- | ---------------- | --------- |",
		"| ürün_adı    | STRING/FLOAT     | free-text |",
		"| net_sales   | FLOAT (currency) | currency  |",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("schema missing %q:\n%s", want, out)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := report.WriteArtifacts(dir, "_fix_report.txt", "_schema_reference.md", results(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, name := range []string{"_fix_report.txt", "_schema_reference.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
