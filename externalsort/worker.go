package externalsort

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rowgraph/rowgraph/row"
)

// workerEnvVar is the environment variable cmd/rowgraph (or any other
// binary embedding this package) checks at startup to decide whether it
// should run as a sort helper instead of its normal entry point, mirroring
// the flag-dispatched re-invocation idiom of mapreduce runners: the same
// binary re-execs itself in a different role rather than shelling out to a
// separate sort program.
const workerEnvVar = "ROWGRAPH_SORT_WORKER"

// RunWorkerIfRequested checks workerEnvVar and, if set, runs this process
// as a sort helper reading a header and rows from stdin and writing sorted
// rows to stdout, then exits the process. It must be called at the very
// start of main(), before any other startup work, by any program that
// calls Sort without WithInProcess.
//
// It never returns when the environment variable is set.
func RunWorkerIfRequested() {
	if os.Getenv(workerEnvVar) == "" {
		return
	}
	if err := runWorker(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rowgraph sort worker:", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// runWorker implements the child side of the protocol: read the header,
// collect rows until the Done sentinel, sort in place, then stream the
// sorted rows back followed by the sentinel.
func runWorker(r io.Reader, w io.Writer) error {
	dec := gob.NewDecoder(r)
	enc := gob.NewEncoder(w)

	var h header
	if err := dec.Decode(&h); err != nil {
		return fmt.Errorf("decode header: %w", err)
	}

	var rows []row.Row
	for {
		var msg sortMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("decode row: %w", err)
		}
		if msg.Done {
			break
		}
		rows = append(rows, msg.Row)
	}

	keyOf := func(r row.Row) []any {
		values := make([]any, len(h.Keys))
		for i, k := range h.Keys {
			values[i] = r[k]
		}
		return values
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := row.CompareTuples(keyOf(rows[i]), keyOf(rows[j]))
		if h.Reverse {
			return c > 0
		}
		return c < 0
	})

	for _, r := range rows {
		if err := enc.Encode(sortMessage{Row: r}); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	return enc.Encode(sortMessage{Done: true})
}
