package rowstream

import (
	"iter"

	"github.com/rowgraph/rowgraph/row"
)

// GroupReader turns a key-sorted Stream into a sequence of maximal
// contiguous runs of key-equal rows (spec: a "group"). It is the shared
// machinery behind Reduce (one input) and the sort-merge Join (two inputs,
// read in lockstep).
//
// GroupReader assumes its input is already sorted ascending by keys; it
// does not sort. Feeding it an unsorted stream is the PreconditionViolation
// case: groups will simply split wherever the key value changes, silently
// producing more (smaller) groups than a correctly sorted input would.
//
// Grouping follows the same discipline as Python's itertools.groupby: a
// group Stream returned by Next is only valid until the next call to Next.
// If the caller stops ranging a group early, the remaining rows of that
// group are discarded, not replayed, the next time Next is called.
type GroupReader struct {
	op   string
	keys []string

	next func() (row.Row, error, bool)
	stop func()

	havePending  bool
	finished     bool
	pendingRow   row.Row
	pendingErr   error
	pendingKey   []any
	pendingKeyErr error

	currentKey    []any
	currentKeySet bool
}

// NewGroupReader builds a GroupReader over s, grouping by the named columns.
// op names the calling operator ("reduce" or "join") for SchemaError
// messages raised when a row is missing a key column.
func NewGroupReader(s Stream, keys []string, op string) *GroupReader {
	next, stop := iter.Pull2(s)
	return &GroupReader{op: op, keys: keys, next: next, stop: stop}
}

// Close releases the underlying pull iterator. Callers that stop calling
// Next before it returns ok=false must call Close to let the source stream
// unwind cleanly.
func (g *GroupReader) Close() {
	g.stop()
}

func (g *GroupReader) fill() {
	if g.havePending || g.finished {
		return
	}
	r, err, ok := g.next()
	if !ok {
		g.finished = true
		return
	}
	g.havePending = true
	g.pendingRow = r
	g.pendingErr = err
	if err == nil {
		g.pendingKey, g.pendingKeyErr = r.Values(g.op, g.keys)
	}
}

// Next advances to the next group, returning its key tuple and a Stream
// over its rows. ok is false once the input is exhausted; err is non-nil
// if the underlying stream or a key lookup failed, in which case ok is
// also false.
func (g *GroupReader) Next() (keyValues []any, group Stream, err error, ok bool) {
	for {
		g.fill()
		if g.pendingErr != nil {
			return nil, nil, g.pendingErr, false
		}
		if g.pendingKeyErr != nil {
			return nil, nil, g.pendingKeyErr, false
		}
		if !g.havePending {
			return nil, nil, nil, false
		}
		if g.currentKeySet && row.CompareTuples(g.currentKey, g.pendingKey) == 0 {
			// Previous group's caller didn't drain it; discard the remainder.
			g.havePending = false
			continue
		}
		break
	}

	g.currentKey = g.pendingKey
	g.currentKeySet = true
	return g.currentKey, g.groupStream(), nil, true
}

func (g *GroupReader) groupStream() Stream {
	return func(yield func(row.Row, error) bool) {
		for {
			g.fill()
			if g.pendingErr != nil {
				yield(nil, g.pendingErr)
				return
			}
			if g.pendingKeyErr != nil {
				yield(nil, g.pendingKeyErr)
				return
			}
			if !g.havePending {
				return
			}
			if row.CompareTuples(g.currentKey, g.pendingKey) != 0 {
				return
			}
			r := g.pendingRow
			g.havePending = false
			if !yield(r, nil) {
				return
			}
		}
	}
}
