package externalsort

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rowgraph/rowgraph/providers/observability"
	obsslog "github.com/rowgraph/rowgraph/providers/observability/slog"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

func TestSortInProcessOrdersByKey(t *testing.T) {
	input := rowstream.Of([]row.Row{
		{"k": int64(3)}, {"k": int64(1)}, {"k": int64(2)},
	})
	rows, err := rowstream.Collect(Sort(context.Background(), []string{"k"}, input, WithInProcess()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || rows[0]["k"] != int64(1) || rows[1]["k"] != int64(2) || rows[2]["k"] != int64(3) {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestSortInProcessStable(t *testing.T) {
	input := rowstream.Of([]row.Row{
		{"k": int64(1), "v": "first"},
		{"k": int64(1), "v": "second"},
	})
	rows, err := rowstream.Collect(Sort(context.Background(), []string{"k"}, input, WithInProcess()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0]["v"] != "first" || rows[1]["v"] != "second" {
		t.Fatalf("expected stable order preserved, got %v", rows)
	}
}

func TestSortInProcessReverse(t *testing.T) {
	input := rowstream.Of([]row.Row{{"k": int64(1)}, {"k": int64(2)}})
	rows, err := rowstream.Collect(Sort(context.Background(), []string{"k"}, input, WithInProcess(), WithReverse()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0]["k"] != int64(2) || rows[1]["k"] != int64(1) {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestSortInProcessPreservesMultiplicity(t *testing.T) {
	var rows []row.Row
	for i := 0; i < 50; i++ {
		rows = append(rows, row.Row{"k": int64(i % 7)})
	}
	out, err := rowstream.Collect(Sort(context.Background(), []string{"k"}, rowstream.Of(rows), WithInProcess()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(out))
	}
}

// TestSortInProcessEncodesTimeColumns exercises the gob wire protocol with
// a time.Time-valued column: without registering time.Time for interface
// encoding (see protocol.go's init), encoding a Row carrying one fails with
// "gob: type not registered for interface: time.Time".
func TestSortInProcessEncodesTimeColumns(t *testing.T) {
	t1 := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	input := rowstream.Of([]row.Row{{"t": t1}, {"t": t2}})

	rows, err := rowstream.Collect(Sort(context.Background(), []string{"t"}, input, WithInProcess()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0]["t"].(time.Time).Equal(t2) || !rows[1]["t"].(time.Time).Equal(t1) {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestSortInProcessPropagatesSourceError(t *testing.T) {
	sentinel := errors.New("boom")
	input := rowstream.Fail(sentinel)
	_, err := rowstream.Collect(Sort(context.Background(), []string{"k"}, input, WithInProcess()))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestSortInProcessEmitsSpanWhenObserverAttached(t *testing.T) {
	var buf bytes.Buffer
	obs := obsslog.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := observability.ContextWithObserver(context.Background(), obs)

	input := rowstream.Of([]row.Row{{"k": int64(2)}, {"k": int64(1)}})
	rows, err := rowstream.Collect(Sort(ctx, []string{"k"}, input, WithInProcess()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	out := buf.String()
	if !strings.Contains(out, observability.SpanExternalSort) {
		t.Errorf("expected the external-sort span name in the log output, got: %s", out)
	}
	if !strings.Contains(out, observability.AttrSortIngested) || !strings.Contains(out, observability.AttrSortEmitted) {
		t.Errorf("expected ingested/emitted attributes in the log output, got: %s", out)
	}
}
