// Package grouper turns the flat field set of a submitted rules form into
// per-column value lists.
package grouper

import (
	"strings"

	"go-column-rules/internal/model"
)

var suffixes = []string{
	"_" + model.SuffixFloor,
	"_" + model.SuffixCeil,
	"_" + model.SuffixCategory,
	"_" + model.SuffixStart,
	"_" + model.SuffixEnd,
}

// Group collects the values of every field with a recognised suffix under its
// column name. Values are appended in input order; fields with any other
// suffix are dropped.
func Group(fields []model.FormField) model.GroupedPayload {
	payload := make(model.GroupedPayload)
	for _, f := range fields {
		if !Recognized(f.Key) {
			continue
		}
		col := ColumnName(f.Key)
		payload[col] = append(payload[col], f.Value)
	}
	return payload
}

// ColumnName returns the part of key before the first underscore.
func ColumnName(key string) string {
	if i := strings.IndexByte(key, '_'); i >= 0 {
		return key[:i]
	}
	return key
}

// Recognized reports whether key ends with one of the rule suffixes.
func Recognized(key string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(key, s) {
			return true
		}
	}
	return false
}

// FieldName builds the form key for a column and suffix.
func FieldName(column, suffix string) string {
	return column + "_" + suffix
}
