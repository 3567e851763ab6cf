// Package table holds the in-memory tabular model shared by readers,
// the normalization pipeline and writers.
package table

// Dataset is an ordered set of named columns and positional rows.
// Column names are flat keys: duplicates and empty names are allowed.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]Value
}

// New builds a dataset from a header and rows without copying them.
func New(name string, columns []string, rows [][]Value) *Dataset {
	return &Dataset{Name: name, Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.Columns) }

// Index returns the position of the first column named name, or -1.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column named name exists.
func (d *Dataset) Has(name string) bool { return d.Index(name) >= 0 }

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([][]Value, len(d.Rows))
	for i, r := range d.Rows {
		row := make([]Value, len(r))
		copy(row, r)
		rows[i] = row
	}
	return &Dataset{Name: d.Name, Columns: cols, Rows: rows}
}

// WithColumns returns a copy of d using the given header. Rows are shared
// copies of the originals.
func (d *Dataset) WithColumns(columns []string) *Dataset {
	out := d.Clone()
	out.Columns = append([]string(nil), columns...)
	return out
}

// InsertColumn returns a copy of d with a new column at position 0.
// values must hold one entry per row.
func (d *Dataset) InsertColumn(name string, values []Value) *Dataset {
	cols := make([]string, 0, len(d.Columns)+1)
	cols = append(cols, name)
	cols = append(cols, d.Columns...)
	rows := make([][]Value, len(d.Rows))
	for i, r := range d.Rows {
		row := make([]Value, 0, len(r)+1)
		row = append(row, values[i])
		row = append(row, r...)
		rows[i] = row
	}
	return &Dataset{Name: d.Name, Columns: cols, Rows: rows}
}

// FilterRows returns a copy of d keeping rows for which keep is true.
func (d *Dataset) FilterRows(keep func(row []Value) bool) *Dataset {
	rows := make([][]Value, 0, len(d.Rows))
	for _, r := range d.Rows {
		if !keep(r) {
			continue
		}
		row := make([]Value, len(r))
		copy(row, r)
		rows = append(rows, row)
	}
	return &Dataset{Name: d.Name, Columns: append([]string(nil), d.Columns...), Rows: rows}
}

// MapCells returns a copy of d with fn applied to every cell. The first
// error aborts the walk.
func (d *Dataset) MapCells(fn func(col int, v Value) (Value, error)) (*Dataset, error) {
	rows := make([][]Value, len(d.Rows))
	for i, r := range d.Rows {
		row := make([]Value, len(r))
		for j, v := range r {
			nv, err := fn(j, v)
			if err != nil {
				return nil, &CellError{Row: i + 1, Column: j, Err: err}
			}
			row[j] = nv
		}
		rows[i] = row
	}
	return &Dataset{Name: d.Name, Columns: append([]string(nil), d.Columns...), Rows: rows}, nil
}

// HasNumeric reports whether column i holds at least one Integer or Real.
func (d *Dataset) HasNumeric(i int) bool {
	for _, r := range d.Rows {
		if i < len(r) && r[i].IsNumeric() {
			return true
		}
	}
	return false
}
