// Package reducer defines the Reducer strategy consumed by the graph's
// Reduce operator, plus a library of built-in reducers.
package reducer

import (
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// Reducer consumes one contiguous key-equal group (spec.md §4.4) and emits
// zero or more output rows. keys names the grouping columns; keyValues
// carries their values for this group, in the same order, so a Reducer can
// copy them into its output rows without re-reading them from group (the
// group Stream may not even contain a row if the key list is empty and the
// input is empty).
type Reducer interface {
	Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream
}

// Func adapts a plain function to the Reducer interface.
type Func func(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream

// Reduce calls fn, satisfying the Reducer interface.
func (fn Func) Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return fn(keys, keyValues, group)
}

// keyRow builds the group-key portion of an output row.
func keyRow(keys []string, keyValues []any) row.Row {
	out := make(row.Row, len(keys))
	for i, k := range keys {
		out[k] = keyValues[i]
	}
	return out
}
