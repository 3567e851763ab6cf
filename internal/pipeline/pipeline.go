// Package pipeline runs the normalization steps over a single dataset and
// fans them out over a batch of files.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// ErrMalformedRow is returned when a row does not match the header width.
var ErrMalformedRow = errors.New("malformed row")

// Fix entries recorded by the pipeline.
const (
	FixEncoding      = "Fixed encoding (latin-1 to UTF-8)"
	FixColumnNames   = "Cleaned column names (snake_case)"
	FixTrimmed       = "Trimmed whitespace in text columns"
	FixNumbers       = "Standardized numeric formatting"
	FixMissingValues = "Replaced NaN with empty strings"
)

// Input is one parsed file handed to the pipeline. Fixes holds entries
// already recorded by the reader (such as an encoding fallback). A non-nil
// Err marks a file that could not be parsed.
type Input struct {
	Name    string
	Dataset *table.Dataset
	Fixes   []string
	Err     error
}

// Pipeline normalizes datasets. Its configuration is read-only and safe to
// share between goroutines.
type Pipeline struct {
	Identifiers       normalize.IdentifierTable
	CorrelationMarker string
	Logger            *slog.Logger
}

// New returns a pipeline using the given identifier table.
func New(ids normalize.IdentifierTable, correlationMarker string) *Pipeline {
	return &Pipeline{Identifiers: ids, CorrelationMarker: correlationMarker}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Process normalizes one file. On error no partial dataset is returned.
func (p *Pipeline) Process(in Input) FileResult {
	if in.Err != nil {
		return failed(in.Name, in.Err)
	}
	if in.Dataset == nil {
		return failed(in.Name, errors.New("no dataset"))
	}
	ds, fixes, cats, err := p.run(in)
	if err != nil {
		p.logger().Debug("normalization failed", "file", in.Name, "error", err)
		return failed(in.Name, err)
	}
	return succeeded(in.Name, ds, fixes, cats)
}

func (p *Pipeline) run(in Input) (*table.Dataset, FixRecord, []normalize.Category, error) {
	log := p.logger().With("file", in.Name)
	fixes := FixRecord(append([]string(nil), in.Fixes...))
	ds := in.Dataset

	if err := validateShape(ds); err != nil {
		return nil, nil, nil, err
	}

	// 1. drop rows with no data at all
	before := ds.Len()
	ds = ds.FilterRows(func(row []table.Value) bool { return !allMissing(row) })
	if removed := before - ds.Len(); removed > 0 {
		fixes.Add(fmt.Sprintf("Removed %d empty rows", removed))
	}

	// 2. canonical column names
	if names, changed := normalize.ColumnNames(ds.Columns); changed {
		ds = ds.WithColumns(names)
		fixes.Add(FixColumnNames)
	}

	// 3. identifier column
	identifier := ""
	if spec, ok := p.Identifiers.Lookup(in.Name); ok {
		next, fix, applied := normalize.Inject(ds, spec)
		if applied {
			ds = next
			identifier = spec.Column
			fixes.Add(fix)
		}
	}

	// 4. trim text cells
	ds, err := ds.MapCells(func(_ int, v table.Value) (table.Value, error) {
		if v.Kind == table.KindText {
			return table.Text(strings.TrimSpace(v.Str)), nil
		}
		return v, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	fixes.Add(FixTrimmed)

	// 5. numeric precision by column category
	classifier := normalize.NewClassifier(in.Name, p.CorrelationMarker, identifier)
	cats := make([]normalize.Category, ds.Width())
	for i, name := range ds.Columns {
		cats[i] = classifier.Classify(name)
	}
	log.Debug("classified columns", "correlation", classifier.Correlation, "identifier", identifier)
	ds, err = ds.MapCells(func(col int, v table.Value) (table.Value, error) {
		if v.IsMissing() {
			return v, nil
		}
		return normalize.Format(v, cats[col])
	})
	if err != nil {
		return nil, nil, nil, err
	}
	fixes.Add(FixNumbers)

	// 6. no missing markers survive
	ds, err = ds.MapCells(func(_ int, v table.Value) (table.Value, error) {
		if v.IsMissing() {
			return table.Text(""), nil
		}
		return v, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	fixes.Add(FixMissingValues)

	reported := make([]normalize.Category, ds.Width())
	for i, name := range ds.Columns {
		reported[i] = classifier.ClassifyColumn(name, ds.HasNumeric(i))
	}
	return ds, fixes, reported, nil
}

func validateShape(ds *table.Dataset) error {
	want := ds.Width()
	for i, row := range ds.Rows {
		if len(row) != want {
			return fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformedRow, i+1, len(row), want)
		}
	}
	return nil
}

func allMissing(row []table.Value) bool {
	for _, v := range row {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}
