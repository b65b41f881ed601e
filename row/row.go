// Package row defines the record type every rowgraph operator reads and
// writes, along with the column errors operators raise when a row doesn't
// carry what they expect.
package row

import (
	"errors"
	"fmt"

	"github.com/rowgraph/rowgraph/internal/utils"
)

// Row is an open mapping from column name to value. Streams carry no fixed
// schema: two rows on the same stream may have different key sets.
//
// Permitted value kinds are string, int64, float64, time.Time, Point (a
// longitude/latitude pair), and nested Row. Operators that accept other
// Go types will still store them, but built-in mappers, reducers and the
// external-sort comparator only know how to order the kinds above.
type Row map[string]any

// Point is a 2-tuple of floats, used by the engine for longitude/latitude
// pairs (see HaversineDistance in package mapper).
type Point [2]float64

// ErrMissingColumn is the sentinel wrapped by SchemaError. Callers use
// errors.Is(err, row.ErrMissingColumn) to detect a missing-column failure
// without matching on its message.
var ErrMissingColumn = errors.New("row: missing column")

// SchemaError reports that an operator needed a column that a row did not
// have. It satisfies errors.Is against ErrMissingColumn. Row is the
// offending row itself, kept around so Error() can render it for
// debugging; it may be nil when the caller didn't have one handy.
type SchemaError struct {
	Column string
	Op     string
	Row    Row
}

func (e *SchemaError) Error() string {
	if e.Row == nil {
		return fmt.Sprintf("row: operator %q: missing column %q", e.Op, e.Column)
	}
	return fmt.Sprintf("row: operator %q: missing column %q (row: %s)", e.Op, e.Column, utils.JSONToString(e.Row))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrMissingColumn
}

// MissingColumn builds a SchemaError for op failing to find column in r.
func MissingColumn(op, column string, r Row) error {
	return &SchemaError{Column: column, Op: op, Row: r}
}

// Clone returns a shallow copy of r. Operators use this instead of mutating
// an upstream row in place, so that an upstream producer never observes a
// downstream mutation (see package rowstream's single-pass contract).
func (r Row) Clone() Row {
	clone := make(Row, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// Get returns r[column] and a SchemaError tagged with op if column is absent.
func (r Row) Get(op, column string) (any, error) {
	v, ok := r[column]
	if !ok {
		return nil, MissingColumn(op, column, r)
	}
	return v, nil
}

// Values returns the values of columns in order, tagged with op if any of
// them is missing from r. It is the row-tuple projection used by Reduce and
// Join to compute a grouping key.
func (r Row) Values(op string, columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i, c := range columns {
		v, err := r.Get(op, c)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
