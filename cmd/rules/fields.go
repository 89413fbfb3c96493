package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go-column-rules/internal/model"
)

// parseArgs turns key=value arguments into form fields, keeping their order.
func parseArgs(args []string) ([]model.FormField, error) {
	fields := make([]model.FormField, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid field %q, expected key=value", arg)
		}
		fields = append(fields, model.FormField{Key: key, Value: value})
	}
	return fields, nil
}

// readFieldsFile reads a YAML list of name/value entries.
func readFieldsFile(path string) ([]model.FormField, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fields file")
	}
	var fields []model.FormField
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrapf(err, "parse fields file %s", path)
	}
	return fields, nil
}

// collectFields merges the file entries, if any, with the argument entries.
// File entries come first.
func collectFields(file string, args []string) ([]model.FormField, error) {
	var fields []model.FormField
	if file != "" {
		fromFile, err := readFieldsFile(file)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fromFile...)
	}
	fromArgs, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return append(fields, fromArgs...), nil
}
