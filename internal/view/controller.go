package view

import (
	"context"
	"path/filepath"
	"strings"

	"go-column-rules/config"
	"go-column-rules/internal/grouper"
	"go-column-rules/internal/model"
	"go-column-rules/internal/submit"
	"go-column-rules/pkg/logger"
)

// Submitter posts a grouped payload.
type Submitter interface {
	Submit(ctx context.Context, payload model.GroupedPayload) (interface{}, error)
}

// Uploader sends a dataset file to the server.
type Uploader interface {
	Upload(ctx context.Context, path string) (*submit.UploadResponse, error)
}

// Fetcher downloads a dataset URL to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Controller binds the page handlers to a View. Handlers report failures
// through the log and the View and never return them, so the page stays
// usable after any error. Submissions are not serialised: two calls to
// SubmitRules may be in flight at once.
type Controller struct {
	view      View
	submitter Submitter
	uploader  Uploader
	fetcher   Fetcher
	log       logger.LoggerI
}

// NewController wires a controller. uploader and fetcher may be nil when the
// corresponding handlers are not used.
func NewController(v View, s Submitter, u Uploader, f Fetcher, log logger.LoggerI) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{view: v, submitter: s, uploader: u, fetcher: f, log: log}
}

// FileChanged reflects the file input state on the page.
func (c *Controller) FileChanged() {
	files := c.view.SelectedFiles()
	if len(files) > 0 {
		c.view.SetText(RegionFileName, "Selected file: "+filepath.Base(files[0]))
		c.view.Show(RegionContinue)
		c.view.Show(RegionGenerate)
		c.view.Hide(RegionAddButton)
		c.view.Hide(RegionBrowseButton)
		return
	}
	c.view.SetText(RegionFileName, "No file selected")
	c.view.Hide(RegionContinue)
	c.view.Hide(RegionGenerate)
}

// AddDataset reveals the dataset URL input.
func (c *Controller) AddDataset() {
	c.view.Show(RegionURLInputContainer)
	c.view.Hide(RegionAddButton)
}

// FetchDataset downloads the dataset at the URL typed by the user and returns
// the saved path, or "" when nothing was saved.
func (c *Controller) FetchDataset(ctx context.Context) string {
	url := strings.TrimSpace(c.view.Value(InputDatasetURL))
	if url == "" {
		c.view.Alert("Please enter a valid dataset URL.")
		return ""
	}

	c.view.SetText(RegionDatasetInfo, "Retrieving dataset from: "+url)

	path, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.view.SetText(RegionDatasetInfo, "Failed to retrieve dataset.")
		c.log.Error("error fetching dataset", logger.String("url", url), logger.Error(err))
		return ""
	}

	c.view.SetText(RegionDatasetInfo, "Dataset downloaded as: "+config.DatasetFileName)
	c.log.Info("dataset downloaded successfully", logger.String("path", path))
	return path
}

// UploadSubmit switches the page to its loading state and uploads the chosen
// dataset. It returns false when the submission was prevented.
func (c *Controller) UploadSubmit(ctx context.Context) bool {
	files := c.view.SelectedFiles()
	if len(files) == 0 {
		c.view.Alert("Please select a file before uploading.")
		return false
	}

	c.view.Hide(RegionButtons)
	c.view.Hide(RegionText)
	c.view.Show(RegionLoadingScreen)

	resp, err := c.uploader.Upload(ctx, files[0])
	if err != nil {
		c.log.Error("error uploading dataset", logger.String("file", files[0]), logger.Error(err))
		return true
	}
	c.log.Info("dataset uploaded",
		logger.String("file", files[0]),
		logger.Int("columns", resp.Columns.Total()),
	)
	return true
}

// SubmitRules groups the rules form and posts it once. Every failure is
// logged and swallowed; nothing is retried.
func (c *Controller) SubmitRules(ctx context.Context) {
	fields, err := c.view.FormFields(ctx)
	if err != nil {
		c.log.Error("error reading form", logger.Error(err))
		return
	}

	payload := grouper.Group(fields)
	c.log.Info("submitting data", logger.Any("payload", payload))

	result, err := c.submitter.Submit(ctx, payload)
	if err != nil {
		c.log.Error("error saving file", logger.Error(err))
		return
	}
	c.log.Info("file saved successfully", logger.Any("result", result))
}

// Continue moves to the next step.
func (c *Controller) Continue() {
	c.view.Navigate(PathNext)
}

// Generate opens the column rules page.
func (c *Controller) Generate() {
	c.view.Navigate(PathColumns)
}
