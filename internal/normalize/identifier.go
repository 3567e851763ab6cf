package normalize

import (
	"fmt"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// IdentifierSpec describes the key column to add to one file. Values is
// used verbatim only when it has exactly one entry per row.
type IdentifierSpec struct {
	Column string
	Values []table.Value
}

// IdentifierTable is a read-only lookup of IdentifierSpec by file name.
type IdentifierTable struct {
	specs map[string]IdentifierSpec
}

// NewIdentifierTable copies specs into an immutable table.
func NewIdentifierTable(specs map[string]IdentifierSpec) IdentifierTable {
	m := make(map[string]IdentifierSpec, len(specs))
	for name, s := range specs {
		m[name] = IdentifierSpec{Column: s.Column, Values: append([]table.Value(nil), s.Values...)}
	}
	return IdentifierTable{specs: m}
}

// Lookup returns the spec registered for filename.
func (t IdentifierTable) Lookup(filename string) (*IdentifierSpec, bool) {
	s, ok := t.specs[filename]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Len returns the number of registered files.
func (t IdentifierTable) Len() int { return len(t.specs) }

// Inject adds the identifier column described by spec at position 0.
// It is a no-op when spec is nil or the column already exists. The
// returned fix distinguishes literal from auto-numbered identifiers.
func Inject(ds *table.Dataset, spec *IdentifierSpec) (*table.Dataset, string, bool) {
	if spec == nil || ds.Has(spec.Column) {
		return ds, "", false
	}
	n := ds.Len()
	if len(spec.Values) > 0 && len(spec.Values) == n {
		values := append([]table.Value(nil), spec.Values...)
		return ds.InsertColumn(spec.Column, values), fmt.Sprintf("Added identifier column '%s'", spec.Column), true
	}
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.Int(int64(i + 1))
	}
	return ds.InsertColumn(spec.Column, values), fmt.Sprintf("Added identifier column '%s' (auto-numbered)", spec.Column), true
}
