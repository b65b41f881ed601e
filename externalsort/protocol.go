package externalsort

import (
	"encoding/gob"
	"time"

	"github.com/rowgraph/rowgraph/row"
)

func init() {
	gob.Register(row.Point{})
	gob.Register(row.Row{})
	gob.Register(time.Time{})
}

// header is the first message sent from the driver to the sort helper: the
// keys to sort by and the sort direction. Every subsequent message in both
// directions is a sortMessage.
type header struct {
	Keys    []string
	Reverse bool
}

// sortMessage carries one row across the duplex channel, or, with Done set,
// the end-of-stream sentinel (spec.md §4.5's "explicit end-of-stream
// sentinel").
type sortMessage struct {
	Row  row.Row
	Done bool
}
