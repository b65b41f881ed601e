// Package mapper defines the Mapper strategy consumed by the graph's Map
// operator, plus a library of stateless, construct-time configured mappers.
package mapper

import (
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// Mapper transforms one input row into zero or more output rows. A Mapper
// must not mutate the row it receives observably: it either returns the row
// unchanged, or builds a clone (via row.Row.Clone) before modifying it, so
// an upstream producer never sees a downstream mutation.
//
// Split-style mappers yield more than one row; Filter-style mappers yield
// none.
type Mapper interface {
	Map(r row.Row) rowstream.Stream
}

// Func adapts a plain function to the Mapper interface, mirroring the
// adapter-function idiom used throughout this codebase for single-method
// strategy interfaces.
type Func func(r row.Row) rowstream.Stream

// Map calls fn, satisfying the Mapper interface.
func (fn Func) Map(r row.Row) rowstream.Stream {
	return fn(r)
}

// one returns a Stream yielding exactly r.
func one(r row.Row) rowstream.Stream {
	return rowstream.Of([]row.Row{r})
}

// fail returns a Stream yielding exactly err.
func fail(err error) rowstream.Stream {
	return rowstream.Fail(err)
}
