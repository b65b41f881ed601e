package graph

import (
	"context"

	"github.com/rowgraph/rowgraph/externalsort"
	"github.com/rowgraph/rowgraph/rowstream"
)

// sortOp offloads an order-by of its single upstream to externalsort
// (spec.md §4.5). It is the DAG's only operator that spawns a helper
// process by default.
type sortOp struct {
	keys []string
	opts []externalsort.Option
}

func (op sortOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	return externalsort.Sort(ctx, op.keys, upstream[0], op.opts...), nil
}
