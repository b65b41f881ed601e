package graph

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rowgraph/rowgraph/parser"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// sourceError wraps a failure from a named input or a file source so
// callers can tell a SourceError (spec.md §7) apart from a SchemaError or
// a BuilderError by unwrapping.
type sourceError struct {
	name string
	err  error
}

func (e *sourceError) Error() string { return fmt.Sprintf("graph: source %q: %v", e.name, e.err) }
func (e *sourceError) Unwrap() error  { return e.err }

// sourceIterOp reads the Stream the caller passed under name in Run's
// inputs map.
type sourceIterOp struct {
	name string
}

func (op sourceIterOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	s, ok := inputs[op.name]
	if !ok {
		return nil, &sourceError{name: op.name, err: fmt.Errorf("no input named %q was passed to Run", op.name)}
	}
	return s, nil
}

// sourceFileOp opens path, reads it line by line, and applies parse to
// each line to produce a Row.
type sourceFileOp struct {
	path  string
	parse parser.RowParser
}

func (op sourceFileOp) materialize(ctx context.Context, inputs map[string]rowstream.Stream, upstream []rowstream.Stream) (rowstream.Stream, error) {
	f, err := os.Open(op.path)
	if err != nil {
		return nil, &sourceError{name: op.path, err: err}
	}

	return func(yield func(row.Row, error) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			r, parseErr := op.parse(scanner.Text())
			if parseErr != nil {
				yield(nil, &sourceError{name: op.path, err: parseErr})
				return
			}
			if !yield(r, nil) {
				return
			}
		}
		if scanErr := scanner.Err(); scanErr != nil {
			yield(nil, &sourceError{name: op.path, err: scanErr})
		}
	}, nil
}
