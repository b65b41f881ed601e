package graph

import (
	"context"
	"strings"

	"github.com/rowgraph/rowgraph/providers/observability"
	"github.com/rowgraph/rowgraph/reducer"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// reduceOp groups its single upstream into maximal contiguous key-equal
// runs (spec.md §4.4) and feeds each to a Reducer.
type reduceOp struct {
	reducer reducer.Reducer
	keys    []string
}

func (op reduceOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.SetAttributes(observability.String(observability.AttrGroupKeys, strings.Join(op.keys, ",")))
	}

	if len(op.keys) == 0 {
		// "If the grouping-key list is empty, the entire input is one
		// single group" (spec.md §4.4) — even an empty input is one
		// (empty) group, not zero groups, so Count([]) on [] still
		// yields {n: 0} (Scenario B).
		return op.reducer.Reduce(nil, nil, upstream[0]), nil
	}
	return reduceGroups(upstream[0], op.keys, op.reducer, span), nil
}

func reduceGroups(input rowstream.Stream, keys []string, r reducer.Reducer, span observability.Span) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		reader := rowstream.NewGroupReader(input, keys, "reduce")
		defer reader.Close()

		groups, rows := 0, 0
		finish := func() {
			if span != nil {
				span.SetAttributes(
					observability.Int(observability.AttrGroupCount, groups),
					observability.Int(observability.AttrRowCount, rows),
				)
			}
		}

		for {
			keyValues, group, err, ok := reader.Next()
			if err != nil {
				finish()
				yield(nil, err)
				return
			}
			if !ok {
				finish()
				return
			}
			groups++
			for out, outErr := range r.Reduce(keys, keyValues, group) {
				rows++
				if !yield(out, outErr) {
					finish()
					return
				}
				if outErr != nil {
					finish()
					return
				}
			}
		}
	}
}
