package view_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-column-rules/internal/dataset"
	"go-column-rules/internal/model"
	"go-column-rules/internal/submit"
	"go-column-rules/internal/view"
	"go-column-rules/pkg/logger"
)

func observed() (logger.LoggerI, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewWithZap(zap.New(core)), logs
}

type stubSubmitter struct {
	got   []model.GroupedPayload
	err   error
	calls int
}

func (s *stubSubmitter) Submit(_ context.Context, p model.GroupedPayload) (interface{}, error) {
	s.calls++
	s.got = append(s.got, p)
	return map[string]interface{}{"message": "ok"}, s.err
}

type stubUploader struct {
	paths []string
	err   error
}

func (u *stubUploader) Upload(_ context.Context, path string) (*submit.UploadResponse, error) {
	u.paths = append(u.paths, path)
	if u.err != nil {
		return nil, u.err
	}
	return &submit.UploadResponse{Message: "ok"}, nil
}

func TestSubmitRulesGroupsAndPostsOnce(t *testing.T) {
	rec := view.NewRecorder([]model.FormField{
		{Key: "date_start", Value: "2020-01-01"},
		{Key: "date_end", Value: "2020-12-31"},
		{Key: "date_unit", Value: "days"},
	}, nil)
	sub := &stubSubmitter{}
	log, logs := observed()

	view.NewController(rec, sub, nil, nil, log).SubmitRules(context.Background())

	require.Equal(t, 1, sub.calls)
	if diff := cmp.Diff(model.GroupedPayload{"date": {"2020-01-01", "2020-12-31"}}, sub.got[0]); diff != "" {
		t.Fatalf("submitted payload (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, logs.FilterMessage("submitting data").Len())
	assert.Equal(t, 1, logs.FilterMessage("file saved successfully").Len())
}

func TestSubmitRulesServerErrorIsLoggedNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := view.NewRecorder([]model.FormField{{Key: "age_floor", Value: "10"}}, nil)
	log, logs := observed()
	ctrl := view.NewController(rec, submit.NewClient(srv.URL), nil, nil, log)

	assert.NotPanics(t, func() { ctrl.SubmitRules(context.Background()) })

	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	failures := logs.FilterMessage("error saving file").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Contains(t, failures[0].ContextMap()["error"], "status: 500")

	// the form stays usable
	ctrl.SubmitRules(context.Background())
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestSubmitRulesFormReadFailure(t *testing.T) {
	rec := view.NewRecorder(nil, nil)
	sub := &stubSubmitter{}
	log, logs := observed()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	view.NewController(rec, sub, nil, nil, log).SubmitRules(ctx)

	assert.Equal(t, 0, sub.calls)
	assert.Equal(t, 1, logs.FilterMessage("error reading form").Len())
}

func TestFileChanged(t *testing.T) {
	rec := view.NewRecorder(nil, []string{"/tmp/data/sales.csv"})
	ctrl := view.NewController(rec, nil, nil, nil, nil)

	ctrl.FileChanged()

	assert.Equal(t, "Selected file: sales.csv", rec.Text(view.RegionFileName))
	for _, region := range []string{view.RegionContinue, view.RegionGenerate} {
		visible, set := rec.Visible(region)
		assert.True(t, set && visible, region)
	}
	for _, region := range []string{view.RegionAddButton, view.RegionBrowseButton} {
		visible, set := rec.Visible(region)
		assert.True(t, set && !visible, region)
	}

	rec.Files = nil
	ctrl.FileChanged()

	assert.Equal(t, "No file selected", rec.Text(view.RegionFileName))
	visible, _ := rec.Visible(view.RegionContinue)
	assert.False(t, visible)
}

func TestAddDataset(t *testing.T) {
	rec := view.NewRecorder(nil, nil)
	view.NewController(rec, nil, nil, nil, nil).AddDataset()

	visible, _ := rec.Visible(view.RegionURLInputContainer)
	assert.True(t, visible)
	visible, set := rec.Visible(view.RegionAddButton)
	assert.True(t, set)
	assert.False(t, visible)
}

func TestFetchDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	rec := view.NewRecorder(nil, nil)
	rec.Inputs[view.InputDatasetURL] = "  " + srv.URL + "  "
	ctrl := view.NewController(rec, nil, nil, dataset.NewFetcher(dir, nil, nil), nil)

	path := ctrl.FetchDataset(context.Background())

	assert.Equal(t, filepath.Join(dir, "user_data.csv"), path)
	assert.Equal(t, "Dataset downloaded as: user_data.csv", rec.Text(view.RegionDatasetInfo))
}

func TestFetchDatasetFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := view.NewRecorder(nil, nil)
	rec.Inputs[view.InputDatasetURL] = srv.URL
	log, logs := observed()
	ctrl := view.NewController(rec, nil, nil, dataset.NewFetcher(t.TempDir(), nil, log), log)

	assert.Empty(t, ctrl.FetchDataset(context.Background()))
	assert.Equal(t, "Failed to retrieve dataset.", rec.Text(view.RegionDatasetInfo))
	assert.Equal(t, 1, logs.FilterMessage("fetching dataset").Len())
	assert.Equal(t, 1, logs.FilterMessage("error fetching dataset").Len())
}

func TestFetchDatasetRequiresURL(t *testing.T) {
	rec := view.NewRecorder(nil, nil)
	ctrl := view.NewController(rec, nil, nil, nil, nil)

	assert.Empty(t, ctrl.FetchDataset(context.Background()))
	assert.Equal(t, []string{"Please enter a valid dataset URL."}, rec.Alerts())
	assert.Empty(t, rec.Text(view.RegionDatasetInfo))
}

func TestUploadSubmit(t *testing.T) {
	rec := view.NewRecorder(nil, nil)
	up := &stubUploader{}
	ctrl := view.NewController(rec, nil, up, nil, nil)

	assert.False(t, ctrl.UploadSubmit(context.Background()))
	assert.Equal(t, []string{"Please select a file before uploading."}, rec.Alerts())
	assert.Empty(t, up.paths)

	rec.Files = []string{"data.csv"}
	assert.True(t, ctrl.UploadSubmit(context.Background()))
	assert.Equal(t, []string{"data.csv"}, up.paths)

	loading, _ := rec.Visible(view.RegionLoadingScreen)
	buttons, _ := rec.Visible(view.RegionButtons)
	text, _ := rec.Visible(view.RegionText)
	assert.True(t, loading)
	assert.False(t, buttons)
	assert.False(t, text)
}

func TestUploadSubmitFailureIsLogged(t *testing.T) {
	rec := view.NewRecorder(nil, []string{"data.csv"})
	log, logs := observed()
	ctrl := view.NewController(rec, nil, &stubUploader{err: errors.New("refused")}, nil, log)

	assert.True(t, ctrl.UploadSubmit(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("error uploading dataset").Len())
}

func TestNavigation(t *testing.T) {
	rec := view.NewRecorder(nil, nil)
	ctrl := view.NewController(rec, nil, nil, nil, nil)

	ctrl.Continue()
	ctrl.Generate()

	assert.Equal(t, []string{"/next", "/columns"}, rec.Navigations())
}
