// Package rules applies a submitted rules payload to a dataset.
package rules

import (
	"math"
	"sort"
	"strings"
	"time"

	"go-column-rules/internal/columns"
	"go-column-rules/internal/model"
	"go-column-rules/pkg/utils"
)

// kindNone marks a rule with no bounds at all.
const kindNone model.ColumnKind = ""

// Rule is the compiled form of one column's values.
type Rule struct {
	Column string

	kind    model.ColumnKind
	lo, hi  float64
	from    time.Time
	to      time.Time
	exclude map[string]struct{}
}

// Compile turns a column's values into a rule. Two numbers give an inclusive
// numeric range, two dates an inclusive date range, anything else an
// exclusion list. An empty bound leaves that side of a range open; two empty
// bounds keep every row.
func Compile(column string, values []string) Rule {
	r := Rule{Column: column}
	if len(values) == 2 {
		a, b := strings.TrimSpace(values[0]), strings.TrimSpace(values[1])
		if a == "" && b == "" {
			r.kind = kindNone
			return r
		}
		if lo, hi, ok := numericBounds(a, b); ok {
			r.kind, r.lo, r.hi = model.KindNumeric, lo, hi
			return r
		}
		if from, to, ok := dateBounds(a, b); ok {
			r.kind, r.from, r.to = model.KindDatetime, from, to
			return r
		}
	}
	r.kind = model.KindCategorical
	r.exclude = make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			r.exclude[v] = struct{}{}
		}
	}
	return r
}

func numericBounds(a, b string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if a != "" {
		if lo, ok = utils.ParseFloat(a); !ok {
			return 0, 0, false
		}
	}
	if b != "" {
		if hi, ok = utils.ParseFloat(b); !ok {
			return 0, 0, false
		}
	}
	return lo, hi, true
}

func dateBounds(a, b string) (from, to time.Time, ok bool) {
	to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if a != "" {
		if from, ok = utils.ParseDate(a); !ok {
			return from, to, false
		}
	}
	if b != "" {
		if to, ok = utils.ParseDate(b); !ok {
			return from, to, false
		}
	}
	return from, to, true
}

// Keep reports whether a cell passes the rule. Blank cells always pass range
// rules.
func (r Rule) Keep(cell string) bool {
	switch r.kind {
	case kindNone:
		return true
	case model.KindNumeric:
		if utils.IsBlank(cell) {
			return true
		}
		v, ok := utils.ParseFloat(cell)
		return ok && v >= r.lo && v <= r.hi
	case model.KindDatetime:
		if utils.IsBlank(cell) {
			return true
		}
		d, ok := utils.ParseDate(cell)
		return ok && !d.Before(r.from) && !d.After(r.to)
	default:
		_, excluded := r.exclude[cell]
		return !excluded
	}
}

// Kind returns how the rule was interpreted.
func (r Rule) Kind() model.ColumnKind { return r.kind }

// Apply filters t by every rule in payload and returns the kept table with a
// report. Payload columns are matched against sanitised header names; columns
// not found are listed in the report and ignored.
func Apply(t *model.Table, payload model.GroupedPayload) (*model.Table, model.CleanReport) {
	report := model.CleanReport{
		RowsIn:          len(t.Rows),
		DroppedByColumn: make(map[string]int),
	}

	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		index[columns.SanitizeName(h)] = i
	}

	type bound struct {
		rule Rule
		col  int
	}
	var bounds []bound
	for _, column := range sortedColumns(payload) {
		i, ok := index[column]
		if !ok {
			report.SkippedColumns = append(report.SkippedColumns, column)
			continue
		}
		bounds = append(bounds, bound{rule: Compile(column, payload[column]), col: i})
	}

	out := &model.Table{Headers: t.Headers}
	for _, row := range t.Rows {
		kept := true
		for _, b := range bounds {
			if !b.rule.Keep(row[b.col]) {
				report.DroppedByColumn[b.rule.Column]++
				kept = false
				break
			}
		}
		if kept {
			out.Rows = append(out.Rows, row)
		}
	}
	report.RowsOut = len(out.Rows)
	return out, report
}

func sortedColumns(p model.GroupedPayload) []string {
	cols := make([]string, 0, len(p))
	for c := range p {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
