// Package dataset fetches remote datasets and loads CSV or XLSX files into
// in-memory tables.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"go-column-rules/internal/model"
	"go-column-rules/pkg/utils"
)

// ErrUnsupportedFormat is returned for workbook formats excelize cannot read.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// zipMagic opens every XLSX file.
var zipMagic = []byte("PK\x03\x04")

// Load reads the dataset at path. XLSX files are recognised by extension or
// content; everything else is read as CSV.
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses r as the dataset named name. The name only hints at the format:
// content starting with a ZIP header is read as a workbook whatever the name
// says.
func Read(r io.Reader, name string) (*model.Table, error) {
	if utils.GetFileType(name) == "xls" {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "legacy workbook %s", name)
	}

	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zipMagic))
	if bytes.Equal(head, zipMagic) || utils.GetFileType(name) == "excel" {
		return readXLSX(br)
	}
	return ReadCSV(br)
}

// IsWorkbook reports whether the file at path starts with a ZIP header.
func IsWorkbook(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, errors.Wrap(err, "read dataset header")
	}
	return bytes.Equal(head[:n], zipMagic), nil
}

// ReadCSV reads a header row followed by records. Short rows are padded so
// every row has one cell per header.
func ReadCSV(r io.Reader) (*model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read CSV header")
	}

	table := &model.Table{Headers: cleanHeaders(headers)}
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read CSV row %d", len(table.Rows)+1)
		}
		table.Rows = append(table.Rows, fit(record, len(table.Headers)))
	}
	return table, nil
}

func readXLSX(r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}

	table := &model.Table{Headers: cleanHeaders(rows[0])}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, fit(row, len(table.Headers)))
	}
	return table, nil
}

// WriteCSV writes t to path, replacing any existing file.
func WriteCSV(path string, t *model.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create CSV")
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Headers); err != nil {
		file.Close()
		return errors.Wrap(err, "write CSV header")
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		file.Close()
		return errors.Wrap(err, "write CSV rows")
	}
	return errors.Wrap(file.Close(), "close CSV")
}

// cleanHeaders trims whitespace and removes all quotes from header names.
func cleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}
	return out
}

func fit(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
