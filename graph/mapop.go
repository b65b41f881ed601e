package graph

import (
	"context"

	"github.com/rowgraph/rowgraph/mapper"
	"github.com/rowgraph/rowgraph/rowstream"
)

// mapOp applies a Mapper to every row of its single upstream, preserving
// order (spec.md §4.3).
type mapOp struct {
	mapper mapper.Mapper
}

func (op mapOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	return rowstream.Map(upstream[0], op.mapper.Map), nil
}
