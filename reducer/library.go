package reducer

import (
	"sort"

	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// First emits the first row of the group verbatim, discarding the rest.
var First Reducer = Func(func(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		for r, err := range group {
			yield(r, err)
			return
		}
	}
})

// Count emits one row containing the group-key columns plus Column =
// cardinality of the group.
type Count struct {
	Column string
}

func (c Count) Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		out := keyRow(keys, keyValues)
		var count int64
		for _, err := range group {
			if err != nil {
				yield(nil, err)
				return
			}
			count++
		}
		out[c.Column] = count
		yield(out, nil)
	}
}

// Sum emits one row containing the group-key columns plus Column = the sum
// of Column across the group.
type Sum struct {
	Column string
}

func (s Sum) Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		out := keyRow(keys, keyValues)
		var sum float64
		isInt := true
		for r, err := range group {
			if err != nil {
				yield(nil, err)
				return
			}
			v, getErr := r.Get("Sum", s.Column)
			if getErr != nil {
				yield(nil, getErr)
				return
			}
			f, i, ok := numeric(v)
			if !ok {
				yield(nil, row.MissingColumn("Sum", s.Column, r))
				return
			}
			if !i {
				isInt = false
			}
			sum += f
		}
		if isInt {
			out[s.Column] = int64(sum)
		} else {
			out[s.Column] = sum
		}
		yield(out, nil)
	}
}

// TopN emits up to N rows of the group with the largest values of Column;
// order among ties is undefined.
type TopN struct {
	Column string
	N      int
}

func (t TopN) Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		var rows []row.Row
		for r, err := range group {
			if err != nil {
				yield(nil, err)
				return
			}
			rows = append(rows, r)
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return row.CompareValues(rows[i][t.Column], rows[j][t.Column]) > 0
		})

		limit := t.N
		if limit > len(rows) {
			limit = len(rows)
		}
		for _, r := range rows[:limit] {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// TermFrequency computes, within the group, the per-word frequency
// (occurrences of word / group size) and emits one row per distinct word
// carrying the group-key columns, WordsColumn, and ResultColumn.
type TermFrequency struct {
	WordsColumn  string
	ResultColumn string
}

func (tf TermFrequency) Reduce(keys []string, keyValues []any, group rowstream.Stream) rowstream.Stream {
	return func(yield func(row.Row, error) bool) {
		type entry struct {
			row   row.Row
			count int64
		}
		counts := make(map[any]*entry)
		var order []any
		var total int64

		for r, err := range group {
			if err != nil {
				yield(nil, err)
				return
			}
			total++
			word, getErr := r.Get("TermFrequency", tf.WordsColumn)
			if getErr != nil {
				yield(nil, getErr)
				return
			}
			if e, ok := counts[word]; ok {
				e.count++
				continue
			}
			out := keyRow(keys, keyValues)
			out[tf.WordsColumn] = word
			counts[word] = &entry{row: out, count: 1}
			order = append(order, word)
		}

		for _, word := range order {
			e := counts[word]
			e.row[tf.ResultColumn] = float64(e.count) / float64(total)
			if !yield(e.row, nil) {
				return
			}
		}
	}
}

func numeric(v any) (f float64, isInt bool, ok bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true, true
	case int:
		return float64(n), true, true
	case float64:
		return n, false, true
	case float32:
		return float64(n), false, true
	default:
		return 0, false, false
	}
}
