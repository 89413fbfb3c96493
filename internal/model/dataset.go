package model

// Table is a dataset loaded into memory: a header row and string cells.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Column returns the index of the named header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnKind is the inferred type of a dataset column.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindDatetime    ColumnKind = "datetime"
)

// ColumnSet lists dataset columns by kind, each in header order.
type ColumnSet struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
	Datetime    []string `json:"datetime"`
}

// Total returns how many columns were classified.
func (c ColumnSet) Total() int {
	return len(c.Numeric) + len(c.Categorical) + len(c.Datetime)
}

// FieldSpec describes one form input generated for a column.
type FieldSpec struct {
	Name   string     `json:"name"`
	Column string     `json:"column"`
	Kind   ColumnKind `json:"kind"`
	Suffix string     `json:"suffix"`
}

// CleanReport summarises a rule-based cleaning run.
type CleanReport struct {
	SubmissionID    string         `json:"submission_id,omitempty"`
	RowsIn          int            `json:"rows_in"`
	RowsOut         int            `json:"rows_out"`
	DroppedByColumn map[string]int `json:"dropped_by_column"`
	SkippedColumns  []string       `json:"skipped_columns,omitempty"`
	Path            string         `json:"path,omitempty"`
}

// ColumnProfile holds the per-column figures of a dataset profile. Min and
// Max are set for numeric columns only.
type ColumnProfile struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	NonNull int        `json:"non_null_count"`
	Missing int        `json:"missing_count"`
	Unique  int        `json:"unique_values"`
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
}

// DatasetProfile summarises an uploaded dataset.
type DatasetProfile struct {
	TotalRows     int             `json:"total_rows"`
	TotalColumns  int             `json:"total_columns"`
	ColumnNames   []string        `json:"column_names"`
	DuplicateRows int             `json:"duplicate_count"`
	MissingByName map[string]int  `json:"missing_values"`
	Columns       []ColumnProfile `json:"column_details"`
}

// UploadResult is returned by the upload endpoint.
type UploadResult struct {
	Message string          `json:"message"`
	Columns ColumnSet       `json:"columns"`
	Profile *DatasetProfile `json:"profile,omitempty"`
}
