package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/rowgraph/rowgraph/providers/observability"
	"github.com/rowgraph/rowgraph/rowstream"
)

// Run materializes n against the named inputs, returning a fresh lazy
// Stream. Run may be called more than once on the same Node, with the same
// or different inputs, each call producing an independent stream — nodes
// are plans, not cached results.
//
// If n (or any node reachable through it) is referenced as an input to
// more than one downstream node, it is evaluated once per reference: this
// package does not memoize shared subgraphs (spec.md §3/§9, "DAG sharing
// without caching").
//
// When ctx carries an observability.Provider (see
// providers/observability's context helpers), Run and each node's
// materialize step are wrapped in spans; with no observer attached, this
// costs nothing (see nodeSpan).
func (n *Node) Run(ctx context.Context, inputs map[string]rowstream.Stream) (rowstream.Stream, error) {
	if n == nil {
		return nil, &BuilderError{err: ErrNoOperation}
	}
	if err := n.validate(); err != nil {
		return nil, err
	}

	obs := observability.ObserverFromContext(ctx)
	if obs == nil {
		return n.materialize(ctx, inputs)
	}
	ctx, span := obs.StartSpan(ctx, observability.SpanGraphRun, observability.String(observability.AttrNodeName, n.name))
	defer span.End()
	s, err := n.materialize(ctx, inputs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, err.Error())
	} else {
		span.SetStatus(observability.StatusOK, "")
	}
	return s, err
}

func (n *Node) materialize(ctx context.Context, inputs map[string]rowstream.Stream) (rowstream.Stream, error) {
	span := nodeSpan(ctx, n)
	if span != nil {
		defer func() {
			span.AddEvent(observability.EventNodeMaterializeEnd)
			span.End()
		}()
		// Attach this node's span to ctx (the teacher's own
		// patterns/graph/observe.go idiom) so op.materialize can annotate
		// it with operator-specific attributes (group sizes, join kind)
		// without every operator needing its own span.
		ctx = observability.ContextWithSpan(ctx, span)
	}

	upstream := make([]rowstream.Stream, len(n.inputs))
	for i, in := range n.inputs {
		s, err := in.materialize(ctx, inputs)
		if err != nil {
			if span != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, err.Error())
			}
			return nil, err
		}
		upstream[i] = s
	}
	out, err := n.op.materialize(ctx, inputs, upstream)
	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}
	return out, err
}

// nodeSpan starts a SpanNodeMaterialize span for n's own materialize call
// (not its upstream's, which get their own), tagged with the node's name
// and operator kind. Returns nil when ctx carries no observer, so callers
// can treat the zero value as "instrumentation disabled".
func nodeSpan(ctx context.Context, n *Node) observability.Span {
	obs := observability.ObserverFromContext(ctx)
	if obs == nil {
		return nil
	}
	_, span := obs.StartSpan(ctx, observability.SpanNodeMaterialize,
		observability.String(observability.AttrNodeName, n.name),
		observability.String(observability.AttrNodeKind, fmt.Sprintf("%T", n.op)),
	)
	span.AddEvent(observability.EventNodeMaterializeStart)
	return span
}

// validate walks every node reachable from n and accumulates a BuilderError
// for each one with no operation, so Run fails fast before pulling a single
// row rather than panicking deep inside materialize.
func (n *Node) validate() error {
	var errs []error
	seen := make(map[*Node]bool)

	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil || seen[node] {
			return
		}
		seen[node] = true
		if node.op == nil {
			errs = append(errs, errors.Join(ErrNoOperation, errNodeName(node.name)))
		}
		for _, in := range node.inputs {
			walk(in)
		}
	}
	walk(n)

	if len(errs) == 0 {
		return nil
	}
	return &BuilderError{err: errors.Join(errs...)}
}

type errNodeName string

func (e errNodeName) Error() string { return "node name: " + string(e) }
