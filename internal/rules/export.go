package rules

import (
	"path/filepath"

	"go-column-rules/internal/dataset"
	"go-column-rules/internal/model"
	"go-column-rules/pkg/utils"
)

// CleanFileName is the name the cleaned copy of a dataset is written under.
func CleanFileName(datasetPath string) string {
	return "clean_" + filepath.Base(datasetPath)
}

// ExportCSV writes t as CSV into the run directory managed by om and returns
// the file path.
func ExportCSV(om *utils.OutputManager, runID, fileName string, t *model.Table) (string, error) {
	path, err := om.GetOutputFilePath(runID, fileName)
	if err != nil {
		return "", err
	}
	if err := dataset.WriteCSV(path, t); err != nil {
		return "", err
	}
	return path, nil
}
