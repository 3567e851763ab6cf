package pipeline

import (
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// Status tags a FileResult.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// FixRecord lists, in order, the normalization actions applied to a file.
type FixRecord []string

// Add appends a fix entry.
func (f *FixRecord) Add(fix string) { *f = append(*f, fix) }

// FileResult is the outcome of processing one file. Success results carry
// the normalized dataset; failures carry only the error.
type FileResult struct {
	Name   string
	Status Status

	Rows        int
	Columns     int
	ColumnNames []string
	Categories  []normalize.Category
	Fixes       FixRecord
	Dataset     *table.Dataset

	Err error
}

// OK reports whether the file was normalized successfully.
func (r FileResult) OK() bool { return r.Status == StatusSuccess }

// Error returns the failure description, or "" for successes.
func (r FileResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func succeeded(name string, ds *table.Dataset, fixes FixRecord, cats []normalize.Category) FileResult {
	return FileResult{
		Name:        name,
		Status:      StatusSuccess,
		Rows:        ds.Len(),
		Columns:     ds.Width(),
		ColumnNames: append([]string(nil), ds.Columns...),
		Categories:  cats,
		Fixes:       fixes,
		Dataset:     ds,
	}
}

func failed(name string, err error) FileResult {
	return FileResult{Name: name, Status: StatusFailure, Err: err}
}

// Results maps file names to their outcome and remembers input order.
type Results struct {
	RunID  string
	names  []string
	byName map[string]FileResult
}

func newResults(runID string, list []FileResult) *Results {
	r := &Results{RunID: runID, byName: make(map[string]FileResult, len(list))}
	for _, res := range list {
		if _, seen := r.byName[res.Name]; !seen {
			r.names = append(r.names, res.Name)
		}
		r.byName[res.Name] = res
	}
	return r
}

// Get returns the result recorded for name.
func (r *Results) Get(name string) (FileResult, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// Names returns file names in input order.
func (r *Results) Names() []string { return append([]string(nil), r.names...) }

// All returns results in input order.
func (r *Results) All() []FileResult {
	out := make([]FileResult, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}

// Len returns the number of distinct files.
func (r *Results) Len() int { return len(r.names) }

// Counts returns the number of successes and failures.
func (r *Results) Counts() (ok, failedCount int) {
	for _, res := range r.byName {
		if res.OK() {
			ok++
		} else {
			failedCount++
		}
	}
	return ok, failedCount
}
