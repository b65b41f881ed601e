// Package externalsort implements the stable, cross-process sort offload
// described in spec.md §4.5: rows are streamed to a helper process (or, with
// WithInProcess, sorted in the calling goroutine) over a gob-encoded duplex
// channel terminated by an explicit sentinel, to keep the driving process's
// working set small while the helper materializes and sorts.
package externalsort

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rowgraph/rowgraph/internal/utils"
	"github.com/rowgraph/rowgraph/providers/observability"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// ErrHelperFailed reports that the sort helper process crashed, its pipe
// broke, or the row-count invariant (I6: sort preserves multiplicity)
// failed. It is the SortHelperFailure error kind of spec.md §7.
var ErrHelperFailed = errors.New("externalsort: sort helper failed")

type config struct {
	reverse   bool
	inProcess bool
}

// Option configures a Sort call.
type Option func(*config)

// WithReverse sorts descending instead of the default ascending order.
func WithReverse() Option {
	return func(c *config) { c.reverse = true }
}

// WithInProcess bypasses the subprocess and sorts in the calling goroutine.
// This package's own tests use it (a test binary must not re-exec itself),
// and spec.md §9 documents it as a legitimate alternative implementation
// of the same contract: "Implementations may replace it with a thread... ".
func WithInProcess() Option {
	return func(c *config) { c.inProcess = true }
}

// Sort returns a Stream yielding the rows of input sorted stably by the
// tuple (row[k] for k in keys). It is a blocking barrier: nothing is
// emitted until the entire input has been consumed and handed to the
// sort helper.
func Sort(ctx context.Context, keys []string, input rowstream.Stream, opts ...Option) rowstream.Stream {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.inProcess {
		return sortInProcess(ctx, keys, cfg.reverse, input)
	}
	return sortViaSubprocess(ctx, keys, cfg.reverse, input)
}

// sortSpan wraps the Tracer half of an observability.Provider pulled from
// ctx (see providers/observability's context helpers): if ctx carries no
// observer, start and finish are no-ops, so instrumentation costs nothing
// when the caller hasn't configured one.
func sortSpan(ctx context.Context, keys []string, inProcess bool) (span observability.Span, finish func(ingested, emitted int, err error)) {
	obs := observability.ObserverFromContext(ctx)
	if obs == nil {
		return nil, func(int, int, error) {}
	}
	timer := utils.NewTimer()
	_, span = obs.StartSpan(ctx, observability.SpanExternalSort,
		observability.String(observability.AttrSortKeys, strings.Join(keys, ",")),
		observability.Bool(observability.AttrSortInProcess, inProcess),
	)
	return span, func(ingested, emitted int, err error) {
		timer.Stop()
		span.SetAttributes(
			observability.Int(observability.AttrSortIngested, ingested),
			observability.Int(observability.AttrSortEmitted, emitted),
			observability.Duration(observability.AttrDuration, timer.GetDuration()),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
		span.End()
	}
}

func sortInProcess(ctx context.Context, keys []string, reverse bool, input rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		_, finish := sortSpan(ctx, keys, true)

		var buf bytes.Buffer
		if err := runWorkerInline(keys, reverse, input, &buf); err != nil {
			err = fmt.Errorf("%w: %v", ErrHelperFailed, err)
			finish(0, 0, err)
			yield(nil, err)
			return
		}
		dec := gob.NewDecoder(&buf)
		emitted := 0
		for {
			var msg sortMessage
			if err := dec.Decode(&msg); err != nil {
				err = fmt.Errorf("%w: %v", ErrHelperFailed, err)
				finish(emitted, emitted, err)
				yield(nil, err)
				return
			}
			if msg.Done {
				finish(emitted, emitted, nil)
				return
			}
			emitted++
			if !yield(msg.Row, nil) {
				finish(emitted, emitted, nil)
				return
			}
		}
	}
}

// runWorkerInline drives the same protocol as the subprocess helper, but
// entirely in memory, by encoding input into a pipe the worker reads and
// writing its response into out.
func runWorkerInline(keys []string, reverse bool, input rowstream.Stream, out *bytes.Buffer) error {
	var in bytes.Buffer
	enc := gob.NewEncoder(&in)
	if err := enc.Encode(header{Keys: keys, Reverse: reverse}); err != nil {
		return err
	}
	for r, err := range input {
		if err != nil {
			return err
		}
		if err := enc.Encode(sortMessage{Row: r}); err != nil {
			return err
		}
	}
	if err := enc.Encode(sortMessage{Done: true}); err != nil {
		return err
	}
	return runWorker(&in, out)
}

func sortViaSubprocess(ctx context.Context, keys []string, reverse bool, input rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		span, finish := sortSpan(ctx, keys, false)

		cmd := exec.CommandContext(ctx, os.Args[0])
		cmd.Env = append(os.Environ(), workerEnvVar+"=1")
		cmd.Stderr = os.Stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrHelperFailed, err)
			finish(0, 0, err)
			yield(nil, err)
			return
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrHelperFailed, err)
			finish(0, 0, err)
			yield(nil, err)
			return
		}
		if err := cmd.Start(); err != nil {
			err = fmt.Errorf("%w: %v", ErrHelperFailed, err)
			finish(0, 0, err)
			yield(nil, err)
			return
		}
		if span != nil {
			span.AddEvent(observability.EventSortHelperSpawned)
		}

		type writeResult struct {
			ingested int
			err      error
		}
		writeDone := make(chan writeResult, 1)
		go func() {
			defer stdin.Close()
			ingested, err := writeRows(stdin, keys, reverse, input)
			writeDone <- writeResult{ingested: ingested, err: err}
		}()

		emitted := 0
		dec := gob.NewDecoder(stdout)
		streamErr := error(nil)
	readLoop:
		for {
			var msg sortMessage
			if err := dec.Decode(&msg); err != nil {
				streamErr = fmt.Errorf("%w: %v", ErrHelperFailed, err)
				break readLoop
			}
			if msg.Done {
				break readLoop
			}
			emitted++
			if !yield(msg.Row, nil) {
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
				wr := <-writeDone
				finish(wr.ingested, emitted, nil)
				return
			}
		}

		wr := <-writeDone
		waitErr := cmd.Wait()

		switch {
		case streamErr != nil:
			finish(wr.ingested, emitted, streamErr)
			yield(nil, streamErr)
		case wr.err != nil:
			err := fmt.Errorf("%w: %v", ErrHelperFailed, wr.err)
			finish(wr.ingested, emitted, err)
			yield(nil, err)
		case waitErr != nil:
			err := fmt.Errorf("%w: %v", ErrHelperFailed, waitErr)
			finish(wr.ingested, emitted, err)
			yield(nil, err)
		case wr.ingested != emitted:
			err := fmt.Errorf("%w: ingested %d rows, helper returned %d", ErrHelperFailed, wr.ingested, emitted)
			finish(wr.ingested, emitted, err)
			yield(nil, err)
		default:
			finish(wr.ingested, emitted, nil)
		}
	}
}

func writeRows(w io.Writer, keys []string, reverse bool, input rowstream.Stream) (int, error) {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(header{Keys: keys, Reverse: reverse}); err != nil {
		return 0, err
	}
	count := 0
	for r, err := range input {
		if err != nil {
			return count, err
		}
		if err := enc.Encode(sortMessage{Row: r}); err != nil {
			return count, err
		}
		count++
	}
	if err := enc.Encode(sortMessage{Done: true}); err != nil {
		return count, err
	}
	return count, nil
}
