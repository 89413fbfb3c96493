package model

// FormField is a single key/value pair as enumerated from a submitted form.
// Keys follow the <column>_<suffix> naming convention.
type FormField struct {
	Key   string `json:"key" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Recognised field suffixes.
const (
	SuffixFloor    = "floor"
	SuffixCeil     = "ceil"
	SuffixCategory = "category"
	SuffixStart    = "start"
	SuffixEnd      = "end"
)

// GroupedPayload maps a column name to the values collected for it, in the
// order the fields were encountered.
type GroupedPayload map[string][]string

// Columns returns the number of columns carried by the payload.
func (p GroupedPayload) Columns() int {
	return len(p)
}
