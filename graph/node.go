// Package graph implements the computational-graph plan and runner: an
// immutable DAG of map/reduce/sort/join operators rooted at source nodes,
// lazily materialized into a rowstream.Stream on Run.
package graph

import (
	"context"

	"github.com/rowgraph/rowgraph/externalsort"
	"github.com/rowgraph/rowgraph/joiner"
	"github.com/rowgraph/rowgraph/mapper"
	"github.com/rowgraph/rowgraph/parser"
	"github.com/rowgraph/rowgraph/reducer"
	"github.com/rowgraph/rowgraph/rowstream"
)

// operator is the uniform contract every node's operation implements: a
// unary or binary stream transducer. Source operators ignore upstream and
// read from inputs instead.
type operator interface {
	materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error)
}

// Node is an immutable plan node. Every builder method below returns a new
// Node whose inputs include the receiver; nodes are therefore safely
// reusable as input to more than one downstream node (see Run for what
// that implies about re-evaluation).
type Node struct {
	name   string
	inputs []*Node
	op     operator
}

// FromIter constructs a source node that, on Run, pulls the Stream passed
// under the key name in Run's inputs map.
func FromIter(name string) *Node {
	return &Node{name: name, op: sourceIterOp{name: name}}
}

// FromFile constructs a source node that, on Run, opens path and applies
// parse to every line.
func FromFile(path string, parse parser.RowParser) *Node {
	return &Node{name: path, op: sourceFileOp{path: path, parse: parse}}
}

// Map wraps m, applying it to every row of n.
func (n *Node) Map(m mapper.Mapper) *Node {
	return &Node{name: "map", inputs: []*Node{n}, op: mapOp{mapper: m}}
}

// Reduce wraps r, grouping n's (pre-sorted) rows by keys and delegating
// each contiguous group to r.
func (n *Node) Reduce(r reducer.Reducer, keys []string) *Node {
	return &Node{name: "reduce", inputs: []*Node{n}, op: reduceOp{reducer: r, keys: keys}}
}

// Sort wraps an external sort of n's rows by keys, ascending unless
// externalsort.WithReverse() is passed.
func (n *Node) Sort(keys []string, opts ...externalsort.Option) *Node {
	return &Node{name: "sort", inputs: []*Node{n}, op: sortOp{keys: keys, opts: opts}}
}

// Join wraps a sort-merge join of n (primary/left) and other (secondary/
// right), both assumed pre-sorted ascending on keys, using j to decide
// what to emit per matched key group.
func (n *Node) Join(j joiner.Joiner, other *Node, keys []string) *Node {
	return &Node{name: "join", inputs: []*Node{n, other}, op: joinOp{joiner: j, keys: keys}}
}
