package view

import (
	"context"
	"sync"

	"go-column-rules/internal/model"
)

// Recorder is an in-memory View. It serves fixed inputs and records every
// state change so callers can inspect what the page would show.
type Recorder struct {
	mu sync.Mutex

	Fields []model.FormField
	Files  []string
	Inputs map[string]string

	visible   map[string]bool
	texts     map[string]string
	alerts    []string
	navigated []string
}

// NewRecorder returns a Recorder serving the given fields and files.
func NewRecorder(fields []model.FormField, files []string) *Recorder {
	return &Recorder{
		Fields:  fields,
		Files:   files,
		Inputs:  make(map[string]string),
		visible: make(map[string]bool),
		texts:   make(map[string]string),
	}
}

func (r *Recorder) FormFields(ctx context.Context) ([]model.FormField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.FormField, len(r.Fields))
	copy(out, r.Fields)
	return out, nil
}

func (r *Recorder) SelectedFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Files...)
}

func (r *Recorder) Value(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Inputs[id]
}

func (r *Recorder) Show(region string) { r.setVisible(region, true) }
func (r *Recorder) Hide(region string) { r.setVisible(region, false) }

func (r *Recorder) setVisible(region string, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible[region] = v
}

func (r *Recorder) SetText(region, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[region] = text
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigated = append(r.navigated, path)
}

// Visible reports the last visibility set for region and whether it was set.
func (r *Recorder) Visible(region string) (visible, set bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	visible, set = r.visible[region]
	return visible, set
}

// Text returns the last text set on region.
func (r *Recorder) Text(region string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.texts[region]
}

// Alerts returns the alerts raised so far.
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

// Navigations returns the paths navigated to so far.
func (r *Recorder) Navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navigated...)
}
