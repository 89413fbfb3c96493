// Package columns infers the kind of each dataset column and derives the
// rules form layout from it.
package columns

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"go-column-rules/internal/grouper"
	"go-column-rules/internal/model"
	"go-column-rules/pkg/utils"
)

var policy = bluemonday.StrictPolicy()

// Classify assigns every column of t to exactly one kind. A column is numeric
// when all non-blank cells are numbers, datetime when all non-blank cells are
// dates, and categorical otherwise. Columns with no values are categorical.
func Classify(t *model.Table) model.ColumnSet {
	var set model.ColumnSet
	for i, header := range t.Headers {
		name := SanitizeName(header)
		if name == "" {
			continue
		}
		switch KindOf(t.Rows, i) {
		case model.KindNumeric:
			set.Numeric = append(set.Numeric, name)
		case model.KindDatetime:
			set.Datetime = append(set.Datetime, name)
		default:
			set.Categorical = append(set.Categorical, name)
		}
	}
	return set
}

// KindOf infers the kind of column col from its non-blank cells.
func KindOf(rows [][]string, col int) model.ColumnKind {
	numeric, datetime, seen := true, true, 0
	for _, row := range rows {
		cell := row[col]
		if utils.IsBlank(cell) {
			continue
		}
		seen++
		switch utils.ParseValue(cell).(type) {
		case int, float64:
			datetime = false
			continue
		}
		numeric = false
		if _, ok := utils.ParseDate(cell); !ok {
			datetime = false
		}
		if !numeric && !datetime {
			break
		}
	}
	switch {
	case seen == 0:
		return model.KindCategorical
	case numeric:
		return model.KindNumeric
	case datetime:
		return model.KindDatetime
	default:
		return model.KindCategorical
	}
}

// SanitizeName strips markup from a header and replaces underscores and
// whitespace with dashes so the name survives the <column>_<suffix> split.
func SanitizeName(header string) string {
	name := strings.TrimSpace(html.UnescapeString(policy.Sanitize(header)))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', '\t':
			return '-'
		}
		return r
	}, name)
}

// Fields lists the form inputs for a column set: floor and ceil for numeric
// columns, category for categorical ones, start and end for dates.
func Fields(set model.ColumnSet) []model.FieldSpec {
	var out []model.FieldSpec
	add := func(col string, kind model.ColumnKind, suffixes ...string) {
		for _, s := range suffixes {
			out = append(out, model.FieldSpec{
				Name:   grouper.FieldName(col, s),
				Column: col,
				Kind:   kind,
				Suffix: s,
			})
		}
	}
	for _, c := range set.Numeric {
		add(c, model.KindNumeric, model.SuffixFloor, model.SuffixCeil)
	}
	for _, c := range set.Categorical {
		add(c, model.KindCategorical, model.SuffixCategory)
	}
	for _, c := range set.Datetime {
		add(c, model.KindDatetime, model.SuffixStart, model.SuffixEnd)
	}
	return out
}
