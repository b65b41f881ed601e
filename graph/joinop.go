package graph

import (
	"context"
	"fmt"

	"github.com/rowgraph/rowgraph/joiner"
	"github.com/rowgraph/rowgraph/providers/observability"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// joinOp performs a sort-merge join of two pre-sorted upstreams (spec.md
// §4.6): it walks both sides in lockstep by key-group, handing each
// matched-or-unmatched pair of groups to a Joiner.
type joinOp struct {
	joiner joiner.Joiner
	keys   []string
}

func (op joinOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	left := upstream[0]
	right := upstream[1]

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrJoinerKind, fmt.Sprintf("%T", op.joiner)))
	}

	return func(yield func(row.Row, error) bool) {
		lr := rowstream.NewGroupReader(left, op.keys, "join")
		rr := rowstream.NewGroupReader(right, op.keys, "join")
		defer lr.Close()
		defer rr.Close()

		emit := func(leftRows, rightRows []row.Row) bool {
			for out, err := range op.joiner.Join(op.keys, leftRows, rightRows) {
				if !yield(out, err) {
					return false
				}
				if err != nil {
					return false
				}
			}
			return true
		}

		lKeys, lGroup, lErr, lOk := lr.Next()
		rKeys, rGroup, rErr, rOk := rr.Next()
		if lErr != nil {
			yield(nil, lErr)
			return
		}
		if rErr != nil {
			yield(nil, rErr)
			return
		}

		for lOk || rOk {
			var cmp int
			switch {
			case lOk && rOk:
				cmp = row.CompareTuples(lKeys, rKeys)
			case lOk:
				cmp = -1
			default:
				cmp = 1
			}

			switch {
			case cmp == 0:
				leftRows, err := rowstream.Collect(lGroup)
				if err != nil {
					yield(nil, err)
					return
				}
				rightRows, err := rowstream.Collect(rGroup)
				if err != nil {
					yield(nil, err)
					return
				}
				if !emit(leftRows, rightRows) {
					return
				}
				lKeys, lGroup, lErr, lOk = lr.Next()
				rKeys, rGroup, rErr, rOk = rr.Next()
			case cmp < 0:
				leftRows, err := rowstream.Collect(lGroup)
				if err != nil {
					yield(nil, err)
					return
				}
				if !emit(leftRows, nil) {
					return
				}
				lKeys, lGroup, lErr, lOk = lr.Next()
			default:
				rightRows, err := rowstream.Collect(rGroup)
				if err != nil {
					yield(nil, err)
					return
				}
				if !emit(nil, rightRows) {
					return
				}
				rKeys, rGroup, rErr, rOk = rr.Next()
			}

			if lErr != nil {
				yield(nil, lErr)
				return
			}
			if rErr != nil {
				yield(nil, rErr)
				return
			}
		}
	}, nil
}
