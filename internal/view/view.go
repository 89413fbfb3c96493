// Package view holds the page handlers of the rules flow, written against a
// View capability set instead of a concrete UI.
package view

import (
	"context"

	"go-column-rules/internal/model"
)

// Region and input identifiers used by the handlers.
const (
	RegionFileName          = "fileName"
	RegionContinue          = "continue"
	RegionGenerate          = "generate"
	RegionAddButton         = "addButton"
	RegionBrowseButton      = "browseButton"
	RegionURLInputContainer = "urlInputContainer"
	RegionDatasetInfo       = "datasetInfo"
	RegionButtons           = "buts"
	RegionText              = "flexy"
	RegionLoadingScreen     = "loadingScreen"

	InputDatasetURL = "datasetUrl"
)

// Navigation targets.
const (
	PathNext    = "/next"
	PathColumns = "/columns"
)

// View is what the handlers need from a UI.
type View interface {
	// FormFields returns the rules form's fields in declaration order.
	FormFields(ctx context.Context) ([]model.FormField, error)
	// SelectedFiles returns the paths chosen in the dataset file input.
	SelectedFiles() []string
	// Value reads a text input.
	Value(id string) string
	Show(region string)
	Hide(region string)
	SetText(region, text string)
	Alert(msg string)
	Navigate(path string)
}
