package pipeline_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

func identifiers() normalize.IdentifierTable {
	return normalize.NewIdentifierTable(map[string]normalize.IdentifierSpec{
		"abc_summary.csv": {Column: "abc_class", Values: []table.Value{table.Text("A"), table.Text("B"), table.Text("C")}},
		"correlation_matrix.csv": {Column: "variable", Values: []table.Value{
			table.Text("list_price"), table.Text("discount_pct"), table.Text("promo_flag"),
		}},
	})
}

func abcSummary() *table.Dataset {
	return table.New("abc_summary.csv",
		[]string{"SKU Count", "Total Revenue", "Margin Pct", "Store Name "},
		[][]table.Value{
			{table.Real(12.9), table.Real(100.456), table.Real(0.12345), table.Text("  North  ")},
			{table.Missing(), table.Missing(), table.Missing(), table.Missing()},
			{table.Int(3), table.Real(20), table.Missing(), table.Text("South")},
			{table.Real(1), table.Real(5.125), table.Real(1), table.Missing()},
		})
}

func rendered(ds *table.Dataset) [][]string {
	out := make([][]string, len(ds.Rows))
	for i, row := range ds.Rows {
		for _, v := range row {
			out[i] = append(out[i], v.String())
		}
	}
	return out
}

func TestProcessAppliesAllSteps(t *testing.T) {
	p := pipeline.New(identifiers(), "")
	res := p.Process(pipeline.Input{Name: "abc_summary.csv", Dataset: abcSummary()})
	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	wantCols := []string{"abc_class", "sku_count", "total_revenue", "margin_pct", "store_name"}
	if !reflect.DeepEqual(res.ColumnNames, wantCols) {
		t.Fatalf("columns = %v, want %v", res.ColumnNames, wantCols)
	}
	if res.Rows != 3 || res.Columns != 5 {
		t.Fatalf("shape = %dx%d, want 3x5", res.Rows, res.Columns)
	}
	wantFixes := pipeline.FixRecord{
		"Removed 1 empty rows",
		pipeline.FixColumnNames,
		"Added identifier column 'abc_class'",
		pipeline.FixTrimmed,
		pipeline.FixNumbers,
		pipeline.FixMissingValues,
	}
	if !reflect.DeepEqual(res.Fixes, wantFixes) {
		t.Fatalf("fixes = %q, want %q", res.Fixes, wantFixes)
	}
	wantCells := [][]string{
		{"A", "12", "100.46", "0.12", "North"},
		{"B", "3", "20.00", "", "South"},
		{"C", "1", "5.13", "1.00", ""},
	}
	if got := rendered(res.Dataset); !reflect.DeepEqual(got, wantCells) {
		t.Fatalf("cells = %q, want %q", got, wantCells)
	}
	wantCats := []normalize.Category{
		normalize.CategoryIdentifier,
		normalize.CategoryCount,
		normalize.CategoryCurrency,
		normalize.CategoryPercentage,
		normalize.CategoryFreeText,
	}
	if !reflect.DeepEqual(res.Categories, wantCats) {
		t.Fatalf("categories = %v, want %v", res.Categories, wantCats)
	}
	for _, row := range res.Dataset.Rows {
		for _, v := range row {
			if v.IsMissing() {
				t.Fatalf("missing marker survived: %v", row)
			}
		}
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	in := abcSummary()
	before := in.Clone()
	pipeline.New(identifiers(), "").Process(pipeline.Input{Name: "abc_summary.csv", Dataset: in})
	if !reflect.DeepEqual(in, before) {
		t.Fatalf("input dataset was modified")
	}
}

func TestProcessCorrelationMatrix(t *testing.T) {
	ds := table.New("correlation_matrix.csv",
		[]string{"List Price", "Units Sold"},
		[][]table.Value{
			{table.Int(1), table.Real(-0.98765)},
			{table.Real(-0.98765), table.Int(1)},
		})
	res := pipeline.New(identifiers(), "").Process(pipeline.Input{Name: "correlation_matrix.csv", Dataset: ds})
	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Fixes[1] != "Added identifier column 'variable' (auto-numbered)" {
		t.Fatalf("expected auto-numbered identifier, got %q", res.Fixes)
	}
	want := [][]string{
		{"1", "1.000", "-0.988"},
		{"2", "-0.988", "1.000"},
	}
	if got := rendered(res.Dataset); !reflect.DeepEqual(got, want) {
		t.Fatalf("cells = %q, want %q", got, want)
	}
	if res.Categories[1] != normalize.CategoryCorrelation || res.Categories[0] != normalize.CategoryIdentifier {
		t.Fatalf("categories = %v", res.Categories)
	}
}

func TestProcessCustomCorrelationMarker(t *testing.T) {
	ds := table.New("pair_corr.csv", []string{"a"}, [][]table.Value{{table.Real(0.12345)}})
	res := pipeline.New(normalize.IdentifierTable{}, "corr").Process(pipeline.Input{Name: "pair_corr.csv", Dataset: ds})
	if got := res.Dataset.Rows[0][0].String(); got != "0.123" {
		t.Fatalf("got %q, want 0.123", got)
	}
}

func TestProcessKeepsReaderFixesFirst(t *testing.T) {
	ds := table.New("plain.csv", []string{"name"}, [][]table.Value{{table.Text("x")}})
	res := pipeline.New(normalize.IdentifierTable{}, "").Process(pipeline.Input{
		Name: "plain.csv", Dataset: ds, Fixes: []string{pipeline.FixEncoding},
	})
	want := pipeline.FixRecord{pipeline.FixEncoding, pipeline.FixTrimmed, pipeline.FixNumbers, pipeline.FixMissingValues}
	if !reflect.DeepEqual(res.Fixes, want) {
		t.Fatalf("fixes = %q, want %q", res.Fixes, want)
	}
}

func TestProcessMalformedRow(t *testing.T) {
	ds := table.New("bad.csv", []string{"a", "b"}, [][]table.Value{
		{table.Int(1), table.Int(2)},
		{table.Int(1), table.Int(2), table.Int(3)},
	})
	res := pipeline.New(normalize.IdentifierTable{}, "").Process(pipeline.Input{Name: "bad.csv", Dataset: ds})
	if res.OK() || !errors.Is(res.Err, pipeline.ErrMalformedRow) {
		t.Fatalf("expected malformed row failure, got %+v", res)
	}
	if res.Dataset != nil {
		t.Fatalf("failure must not carry a dataset")
	}
	if !strings.Contains(res.Error(), "row 2 has 3 fields, want 2") {
		t.Fatalf("error lacks context: %q", res.Error())
	}
}

func TestProcessUnsupportedValue(t *testing.T) {
	ds := table.New("x.csv", []string{"unit_price"}, [][]table.Value{{table.Value{Kind: table.Kind(9)}}})
	res := pipeline.New(normalize.IdentifierTable{}, "").Process(pipeline.Input{Name: "x.csv", Dataset: ds})
	if !errors.Is(res.Err, normalize.ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", res.Err)
	}
	var cellErr *table.CellError
	if !errors.As(res.Err, &cellErr) || cellErr.Row != 1 || cellErr.Column != 0 {
		t.Fatalf("expected cell context, got %v", res.Err)
	}
}

func threeFiles() []pipeline.Input {
	good := func(name string) pipeline.Input {
		return pipeline.Input{Name: name, Dataset: table.New(name, []string{"Net Sales"}, [][]table.Value{{table.Real(1.005)}, {table.Real(2)}})}
	}
	return []pipeline.Input{
		good("a.csv"),
		{Name: "b.csv", Dataset: table.New("b.csv", []string{"x", "y"}, [][]table.Value{{table.Int(1), table.Int(2), table.Int(3)}})},
		good("c.csv"),
	}
}

func TestRunnerIsolatesFailures(t *testing.T) {
	r := &pipeline.Runner{Pipeline: pipeline.New(normalize.IdentifierTable{}, ""), Workers: 2}
	res := r.Run(context.Background(), threeFiles())
	if got := res.Names(); !reflect.DeepEqual(got, []string{"a.csv", "b.csv", "c.csv"}) {
		t.Fatalf("names = %v", got)
	}
	ok, bad := res.Counts()
	if ok != 2 || bad != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", ok, bad)
	}
	b, _ := res.Get("b.csv")
	if b.Status != pipeline.StatusFailure || !errors.Is(b.Err, pipeline.ErrMalformedRow) {
		t.Fatalf("b.csv = %+v", b)
	}
	a, _ := res.Get("a.csv")
	c, _ := res.Get("c.csv")
	if !a.OK() || !c.OK() || a.Rows != 2 || c.Rows != 2 {
		t.Fatalf("a=%+v c=%+v", a, c)
	}
	if res.RunID == "" {
		t.Fatalf("missing run id")
	}
}

func TestRunnerMatchesSequentialProcessing(t *testing.T) {
	p := pipeline.New(identifiers(), "")
	inputs := threeFiles()
	res := (&pipeline.Runner{Pipeline: p, Workers: 3}).Run(context.Background(), inputs)
	for _, in := range inputs {
		want := p.Process(in)
		got, _ := res.Get(in.Name)
		if got.Status != want.Status || !reflect.DeepEqual(got.Fixes, want.Fixes) {
			t.Fatalf("%s: parallel %+v, sequential %+v", in.Name, got, want)
		}
		if want.OK() && !reflect.DeepEqual(rendered(got.Dataset), rendered(want.Dataset)) {
			t.Fatalf("%s: datasets differ", in.Name)
		}
	}
}

func TestRunnerSink(t *testing.T) {
	var writes int32
	sink := pipeline.SinkFunc(func(name string, _ *table.Dataset) ([]string, error) {
		atomic.AddInt32(&writes, 1)
		if name == "c.csv" {
			return nil, errors.New("disk full")
		}
		return []string{"Saved with UTF-8 BOM encoding"}, nil
	})
	r := &pipeline.Runner{Pipeline: pipeline.New(normalize.IdentifierTable{}, ""), Sink: sink}
	res := r.Run(context.Background(), threeFiles())
	if writes != 2 {
		t.Fatalf("sink called %d times, want 2", writes)
	}
	a, _ := res.Get("a.csv")
	if last := a.Fixes[len(a.Fixes)-1]; last != "Saved with UTF-8 BOM encoding" {
		t.Fatalf("writer fix not appended: %q", a.Fixes)
	}
	c, _ := res.Get("c.csv")
	if c.OK() || !strings.Contains(c.Error(), "write output: disk full") {
		t.Fatalf("sink error not recorded: %+v", c)
	}
}

func TestRunnerParseErrorsAndCancel(t *testing.T) {
	r := &pipeline.Runner{Pipeline: pipeline.New(normalize.IdentifierTable{}, "")}
	parseErr := errors.New("read header: EOF")
	res := r.Run(context.Background(), []pipeline.Input{{Name: "empty.csv", Err: parseErr}})
	got, ok := res.Get("empty.csv")
	if !ok || !errors.Is(got.Err, parseErr) {
		t.Fatalf("parse error not propagated: %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = r.Run(ctx, threeFiles())
	for _, fr := range res.All() {
		if !errors.Is(fr.Err, context.Canceled) {
			t.Fatalf("%s: expected context.Canceled, got %v", fr.Name, fr.Err)
		}
	}
}

func TestRunnerEmptyBatch(t *testing.T) {
	res := (&pipeline.Runner{}).Run(context.Background(), nil)
	if res.Len() != 0 {
		t.Fatalf("expected empty results")
	}
}
