// Package rowstream defines the lazy, single-pass row sequence that flows
// between rowgraph operators, plus the contiguous-group reader Reduce and
// Join build on top of it.
package rowstream

import (
	"iter"

	"github.com/rowgraph/rowgraph/row"
)

// Stream is a finite, single-pass, non-restartable lazy sequence of rows.
// Operators must not assume they can re-range a Stream they've already
// consumed; nothing in this package makes that safe.
//
// A non-nil error ends the sequence: by convention, once a Stream yields a
// non-nil error it yields no further rows, and the consumer should stop
// ranging.
type Stream = iter.Seq2[row.Row, error]

// Of returns a Stream over an in-memory slice of rows, used by tests and by
// callers to build the input Streams that FromIter sources read.
func Of(rows []row.Row) Stream {
	return func(yield func(row.Row, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Fail returns a Stream that immediately yields a single error and stops.
func Fail(err error) Stream {
	return func(yield func(row.Row, error) bool) {
		yield(nil, err)
	}
}

// Collect drains s into a slice, stopping at the first error.
func Collect(s Stream) ([]row.Row, error) {
	var rows []row.Row
	for r, err := range s {
		if err != nil {
			return rows, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Map lazily applies fn to every row of s, flattening each row's expansion
// stream into the result in order. fn must not be called concurrently by
// more than one consumer; callers own sequential consumption of s.
func Map(s Stream, fn func(row.Row) Stream) Stream {
	return func(yield func(row.Row, error) bool) {
		for r, err := range s {
			if err != nil {
				yield(nil, err)
				return
			}
			for out, outErr := range fn(r) {
				if !yield(out, outErr) {
					return
				}
				if outErr != nil {
					return
				}
			}
		}
	}
}
