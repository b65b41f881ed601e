package joiner

import (
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

const (
	defaultSuffixA = "_1"
	defaultSuffixB = "_2"
)

// Inner emits the Cartesian product of left and right when both are
// non-empty, and nothing when either side is empty.
type Inner struct {
	SuffixA, SuffixB string
}

func (j Inner) Join(keys []string, left, right []row.Row) rowstream.Stream {
	if len(left) == 0 || len(right) == 0 {
		return rowstream.Of(nil)
	}
	a, b := resolveSuffixes(j.SuffixA, j.SuffixB)
	return cartesian(keys, left, right, a, b)
}

// Outer emits left rows joined with an empty row when right is empty,
// an empty row joined with right rows when left is empty, and the
// Cartesian product when both sides have rows for the key.
type Outer struct {
	SuffixA, SuffixB string
}

func (j Outer) Join(keys []string, left, right []row.Row) rowstream.Stream {
	a, b := orEmpty(left), orEmpty(right)
	suffixA, suffixB := resolveSuffixes(j.SuffixA, j.SuffixB)
	return cartesian(keys, a, b, suffixA, suffixB)
}

// Left emits left rows joined with an empty row when right is empty,
// nothing when left is empty, and the Cartesian product otherwise.
type Left struct {
	SuffixA, SuffixB string
}

func (j Left) Join(keys []string, left, right []row.Row) rowstream.Stream {
	if len(left) == 0 {
		return rowstream.Of(nil)
	}
	b := orEmpty(right)
	suffixA, suffixB := resolveSuffixes(j.SuffixA, j.SuffixB)
	return cartesian(keys, left, b, suffixA, suffixB)
}

// Right emits right rows joined with an empty row when left is empty,
// nothing when right is empty, and the Cartesian product otherwise. It is
// written from first principles, not ported from the reference's
// RightJoiner, whose outer-loop variable naming swaps the suffix semantics
// (see spec.md §9's open question on RightJoiner parameter order).
type Right struct {
	SuffixA, SuffixB string
}

func (j Right) Join(keys []string, left, right []row.Row) rowstream.Stream {
	if len(right) == 0 {
		return rowstream.Of(nil)
	}
	a := orEmpty(left)
	suffixA, suffixB := resolveSuffixes(j.SuffixA, j.SuffixB)
	return cartesian(keys, a, right, suffixA, suffixB)
}

func orEmpty(rows []row.Row) []row.Row {
	if len(rows) == 0 {
		return []row.Row{{}}
	}
	return rows
}

func resolveSuffixes(a, b string) (string, string) {
	if a == "" {
		a = defaultSuffixA
	}
	if b == "" {
		b = defaultSuffixB
	}
	return a, b
}

// cartesian yields composeRows(keys, l, r, suffixA, suffixB) for every
// (l, r) pair in left × right, left varying slowest — "for each left row,
// for each right row" per spec.md §5's ordering guarantee.
func cartesian(keys []string, left, right []row.Row, suffixA, suffixB string) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		for _, l := range left {
			for _, r := range right {
				if !yield(composeRows(keys, l, r, suffixA, suffixB), nil) {
					return
				}
			}
		}
	}
}
