package grouper_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"go-column-rules/internal/grouper"
	"go-column-rules/internal/model"
)

func fields(pairs ...string) []model.FormField {
	out := make([]model.FormField, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.FormField{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestGroupScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   []model.FormField
		want model.GroupedPayload
	}{
		{
			name: "numeric bounds",
			in:   fields("age_floor", "10", "age_ceil", "20"),
			want: model.GroupedPayload{"age": {"10", "20"}},
		},
		{
			name: "repeated category",
			in:   fields("region_category", "north", "region_category", "south"),
			want: model.GroupedPayload{"region": {"north", "south"}},
		},
		{
			name: "date range drops unknown suffix",
			in:   fields("date_start", "2020-01-01", "date_end", "2020-12-31", "date_unit", "days"),
			want: model.GroupedPayload{"date": {"2020-01-01", "2020-12-31"}},
		},
		{
			name: "order follows input not suffix",
			in:   fields("age_ceil", "20", "age_floor", "10"),
			want: model.GroupedPayload{"age": {"20", "10"}},
		},
		{
			name: "several columns",
			in:   fields("age_floor", "1", "city_category", "Rome", "age_ceil", "9"),
			want: model.GroupedPayload{"age": {"1", "9"}, "city": {"Rome"}},
		},
		{
			name: "column name stops at first underscore",
			in:   fields("unit_price_floor", "3"),
			want: model.GroupedPayload{"unit": {"3"}},
		},
		{
			name: "values are not validated",
			in:   fields("age_floor", "not-a-number", "age_ceil", ""),
			want: model.GroupedPayload{"age": {"not-a-number", ""}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := grouper.Group(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupIgnoresUnrecognisedSuffix(t *testing.T) {
	got := grouper.Group(fields("age_foo", "1", "name", "x", "notes_floorish", "y"))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestGroupIsDeterministic(t *testing.T) {
	in := fields("b_start", "1", "a_floor", "2", "b_end", "3", "a_ceil", "4", "c_category", "5")

	first := grouper.Group(in)
	second := grouper.Group(in)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated grouping differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"1", "3"}, first["b"])
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "age", grouper.ColumnName("age_floor"))
	assert.Equal(t, "plain", grouper.ColumnName("plain"))
	assert.Equal(t, "", grouper.ColumnName("_floor"))
}

func TestRecognized(t *testing.T) {
	for _, key := range []string{"a_floor", "a_ceil", "a_category", "a_start", "a_end"} {
		assert.True(t, grouper.Recognized(key), key)
	}
	assert.False(t, grouper.Recognized("a_unit"))
	assert.False(t, grouper.Recognized("floor"))
	assert.Equal(t, "age_floor", grouper.FieldName("age", model.SuffixFloor))
}
