// Command rowgraph runs the built-in word-count job graph (spec.md §10)
// over newline-delimited JSON read from stdin and prints the resulting
// rows as newline-delimited JSON on stdout.
//
// It doubles as the dispatch point for externalsort's subprocess protocol:
// when Sort spawns a helper it re-execs this same binary with
// ROWGRAPH_SORT_WORKER=1 set, so RunWorkerIfRequested must run before
// anything else in main.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/rowgraph/rowgraph/externalsort"
	"github.com/rowgraph/rowgraph/graph"
	"github.com/rowgraph/rowgraph/internal/config"
	"github.com/rowgraph/rowgraph/mapper"
	"github.com/rowgraph/rowgraph/parser"
	"github.com/rowgraph/rowgraph/providers/observability"
	"github.com/rowgraph/rowgraph/reducer"
	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"

	obsslog "github.com/rowgraph/rowgraph/providers/observability/slog"
)

func main() {
	externalsort.RunWorkerIfRequested()

	column := flag.String("column", "text", "input column holding the text to tokenize")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel()}))
	slog.SetDefault(logger)

	ctx := observability.ContextWithObserver(context.Background(), obsslog.New(logger))
	if err := run(ctx, *column); err != nil {
		logger.Error("rowgraph: run failed", "error", err)
		os.Exit(1)
	}
}

// run builds FromIter("lines") -> FilterPunctuation(column) -> LowerCase ->
// Split -> Sort([column]) -> Reduce(Count, [column]), the word-count job
// from spec.md §10 without its final sort by count, feeds it stdin, and
// writes each output row to stdout as one JSON object per line.
func run(ctx context.Context, column string) error {
	input, err := readRows(os.Stdin, parser.JSONLine)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	job := graph.FromIter("lines").
		Map(mapper.FilterPunctuation{Column: column}).
		Map(mapper.LowerCase{Column: column}).
		Map(mapper.Split{Column: column, Separator: ""}).
		Sort([]string{column}, config.SortOptions()...).
		Reduce(reducer.Count{Column: "count"}, []string{column})

	out, err := job.Run(ctx, map[string]rowstream.Stream{"lines": rowstream.Of(input)})
	if err != nil {
		return fmt.Errorf("building job: %w", err)
	}

	return writeRows(os.Stdout, out)
}

func readRows(f *os.File, parse parser.RowParser) ([]row.Row, error) {
	var rows []row.Row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		r, err := parse(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, scanner.Err()
}

func writeRows(f *os.File, s rowstream.Stream) error {
	w := bufio.NewWriter(f)
	defer w.Flush()

	enc := json.NewEncoder(w)
	for r, err := range s {
		if err != nil {
			return err
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
