// Package parser turns a line of text read from a file source into a
// row.Row. graph.FromFile calls a RowParser once per line.
package parser

import "github.com/rowgraph/rowgraph/row"

// RowParser decodes one line of input into a Row. A non-nil error aborts
// the owning source with a SourceError (spec.md §7).
type RowParser func(line string) (row.Row, error)
