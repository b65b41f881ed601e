// Package joiner defines the Joiner strategy consumed by the graph's
// sort-merge Join operator, plus the Inner/Outer/Left/Right built-ins.
package joiner

import (
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// Joiner decides what to emit for one matched key group: left and right
// hold the rows sharing one join-key tuple (either may be empty, but never
// both — the Join operator never calls a Joiner for a key absent from both
// sides). The operator itself makes no emission decisions; Joiner owns the
// Inner/Outer/Left/Right semantics of spec.md §4.6.
type Joiner interface {
	Join(keys []string, left, right []row.Row) rowstream.Stream
}

// Func adapts a plain function to the Joiner interface.
type Func func(keys []string, left, right []row.Row) rowstream.Stream

// Join calls fn, satisfying the Joiner interface.
func (fn Func) Join(keys []string, left, right []row.Row) rowstream.Stream {
	return fn(keys, left, right)
}

// composeRows implements the _join_two_rows row-composition rule: columns
// only on one side keep their name; columns present on both sides (outside
// the join keys) are renamed with suffixA / suffixB.
func composeRows(keys []string, a, b row.Row, suffixA, suffixB string) row.Row {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}

	overlap := make(map[string]bool)
	for k := range a {
		if keySet[k] {
			continue
		}
		if _, ok := b[k]; ok {
			overlap[k] = true
		}
	}

	out := make(row.Row, len(a)+len(b))
	for k, v := range a {
		if overlap[k] {
			out[k+suffixA] = v
		} else {
			out[k] = v
		}
	}
	for k, v := range b {
		if overlap[k] {
			out[k+suffixB] = v
		} else {
			out[k] = v
		}
	}
	return out
}
