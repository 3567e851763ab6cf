package table

import "fmt"

// CellError locates a failure at a 1-based data row and 0-based column.
type CellError struct {
	Row    int
	Column int
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column+1, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }
