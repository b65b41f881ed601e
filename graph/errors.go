package graph

import (
	"errors"
	"fmt"
)

// ErrNoOperation is wrapped by BuilderError for each node reachable from
// Run's receiver that has no operation set — a zero-value *Node, which the
// exported builder functions never produce but a caller can still
// construct directly (graph.Node{}). spec.md §4.1: "A non-source node with
// no operation is a programmer error (fail fast)".
var ErrNoOperation = errors.New("graph: node has no operation")

// BuilderError reports one or more construction problems found while
// validating a graph before Run materializes it. Multiple problems (e.g.
// more than one dangling node reachable from a Join's two inputs) are
// accumulated with errors.Join rather than reporting only the first.
type BuilderError struct {
	err error
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("graph: build errors: %v", e.err)
}

func (e *BuilderError) Unwrap() error {
	return e.err
}
