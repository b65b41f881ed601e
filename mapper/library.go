package mapper

import (
	"regexp"
	"strings"
	"time"

	"github.com/rowgraph/rowgraph/row"
	"github.com/rowgraph/rowgraph/rowstream"
)

// Dummy yields the row unchanged. It is the identity mapper used by P1
// ("a Map(Dummy) over any stream yields an equal stream in order").
var Dummy Mapper = Func(func(r row.Row) rowstream.Stream { return one(r) })

// datetimeLayout is the reference format string from spec.md §6:
// YYYYMMDDThhmmss.ffffff, with fractional seconds.
const datetimeLayout = "20060102T150405.000000"

var nonLetterSpace = regexp.MustCompile(`[^a-zA-Z ]`)
var wordBoundary = regexp.MustCompile(`\W+`)

// FilterPunctuation replaces every character outside [A-Za-z ] in Column
// with the empty string.
type FilterPunctuation struct {
	Column string
}

func (m FilterPunctuation) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("FilterPunctuation", m.Column)
	if err != nil {
		return fail(err)
	}
	s, ok := v.(string)
	if !ok {
		return fail(row.MissingColumn("FilterPunctuation", m.Column, r))
	}
	out := r.Clone()
	out[m.Column] = nonLetterSpace.ReplaceAllString(s, "")
	return one(out)
}

// LowerCase replaces Column's value with its lower-cased form.
type LowerCase struct {
	Column string
}

func (m LowerCase) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("LowerCase", m.Column)
	if err != nil {
		return fail(err)
	}
	s, ok := v.(string)
	if !ok {
		return fail(row.MissingColumn("LowerCase", m.Column, r))
	}
	out := r.Clone()
	out[m.Column] = strings.ToLower(s)
	return one(out)
}

// RenameColumn sets New = row[Old] and removes Old.
type RenameColumn struct {
	Old string
	New string
}

func (m RenameColumn) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("RenameColumn", m.Old)
	if err != nil {
		return fail(err)
	}
	out := r.Clone()
	delete(out, m.Old)
	out[m.New] = v
	return one(out)
}

// Split splits Column on Separator (or, when Separator is empty, on a
// regular-expression word boundary) and emits one row per token with
// Column replaced by the token.
type Split struct {
	Column    string
	Separator string
}

func (m Split) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("Split", m.Column)
	if err != nil {
		return fail(err)
	}
	s, ok := v.(string)
	if !ok {
		return fail(row.MissingColumn("Split", m.Column, r))
	}

	var words []string
	if m.Separator == "" {
		words = wordBoundary.Split(s, -1)
	} else {
		words = strings.Split(s, m.Separator)
	}

	rows := make([]row.Row, len(words))
	for i, word := range words {
		out := r.Clone()
		out[m.Column] = word
		rows[i] = out
	}
	return rowstream.Of(rows)
}

// Project keeps only Columns, in the given order; a column absent from the
// input row becomes nil rather than erroring (I4).
type Project struct {
	Columns []string
}

func (m Project) Map(r row.Row) rowstream.Stream {
	out := make(row.Row, len(m.Columns))
	for _, c := range m.Columns {
		if v, ok := r[c]; ok {
			out[c] = v
		} else {
			out[c] = nil
		}
	}
	return one(out)
}

// Filter emits the row iff Condition(row) is true.
type Filter struct {
	Condition func(row.Row) bool
}

func (m Filter) Map(r row.Row) rowstream.Stream {
	if m.Condition(r) {
		return one(r)
	}
	return rowstream.Of(nil)
}

// Product sets Result to the product of Columns (0 if Columns is empty).
type Product struct {
	Columns []string
	Result  string
}

func (m Product) Map(r row.Row) rowstream.Stream {
	out := r.Clone()
	if len(m.Columns) == 0 {
		out[m.Result] = int64(0)
		return one(out)
	}

	product := 1.0
	for _, c := range m.Columns {
		v, err := r.Get("Product", c)
		if err != nil {
			return fail(err)
		}
		f, ok := asFloat(v)
		if !ok {
			return fail(row.MissingColumn("Product", c, r))
		}
		product *= f
	}
	out[m.Result] = product
	return one(out)
}

// ArithmeticProcedureForMultipleColumns sets Result = Operation(row[Columns[0]], ...).
type ArithmeticProcedureForMultipleColumns struct {
	Operation func(values ...any) any
	Columns   []string
	Result    string
}

func (m ArithmeticProcedureForMultipleColumns) Map(r row.Row) rowstream.Stream {
	values := make([]any, len(m.Columns))
	for i, c := range m.Columns {
		v, err := r.Get("ArithmeticProcedureForMultipleColumns", c)
		if err != nil {
			return fail(err)
		}
		values[i] = v
	}
	out := r.Clone()
	out[m.Result] = m.Operation(values...)
	return one(out)
}

// MakeDatetime parses TimeColumn (layout YYYYMMDDThhmmss.ffffff) into
// DatetimeColumn as a time.Time.
type MakeDatetime struct {
	TimeColumn     string
	DatetimeColumn string
}

func (m MakeDatetime) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("MakeDatetime", m.TimeColumn)
	if err != nil {
		return fail(err)
	}
	s, ok := v.(string)
	if !ok {
		return fail(row.MissingColumn("MakeDatetime", m.TimeColumn, r))
	}
	t, parseErr := time.Parse(datetimeLayout, s)
	if parseErr != nil {
		return fail(parseErr)
	}
	out := r.Clone()
	out[m.DatetimeColumn] = t
	return one(out)
}

// ProcessDuration sets Duration to (row[Leave] - row[Enter]) expressed in
// fractional hours.
type ProcessDuration struct {
	Enter    string
	Leave    string
	Duration string
}

func (m ProcessDuration) Map(r row.Row) rowstream.Stream {
	enter, err := r.Get("ProcessDuration", m.Enter)
	if err != nil {
		return fail(err)
	}
	leave, err := r.Get("ProcessDuration", m.Leave)
	if err != nil {
		return fail(err)
	}
	enterT, ok := enter.(time.Time)
	if !ok {
		return fail(row.MissingColumn("ProcessDuration", m.Enter, r))
	}
	leaveT, ok := leave.(time.Time)
	if !ok {
		return fail(row.MissingColumn("ProcessDuration", m.Leave, r))
	}
	out := r.Clone()
	out[m.Duration] = leaveT.Sub(enterT).Hours()
	return one(out)
}

// MakeWeekdayHour sets Weekday to the 3-letter English weekday abbreviation
// and Hour to the 0-23 hour of row[Datetime].
type MakeWeekdayHour struct {
	Datetime string
	Weekday  string
	Hour     string
}

func (m MakeWeekdayHour) Map(r row.Row) rowstream.Stream {
	v, err := r.Get("MakeWeekdayHour", m.Datetime)
	if err != nil {
		return fail(err)
	}
	t, ok := v.(time.Time)
	if !ok {
		return fail(row.MissingColumn("MakeWeekdayHour", m.Datetime, r))
	}
	out := r.Clone()
	out[m.Weekday] = t.Weekday().String()[:3]
	out[m.Hour] = int64(t.Hour())
	return one(out)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
