package submit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-column-rules/internal/model"
	"go-column-rules/internal/submit"
)

func TestSubmitPostsJSON(t *testing.T) {
	var got model.GroupedPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, submit.SavePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	payload := model.GroupedPayload{"age": {"10", "20"}}
	result, err := submit.NewClient(srv.URL + "/").Submit(context.Background(), payload)
	require.NoError(t, err)

	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("server received (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]interface{}{"message": "ok"}, result)
}

func TestSubmitNonSuccessStatusIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := submit.NewClient(srv.URL).Submit(context.Background(), model.GroupedPayload{"a": {"1"}})
	require.Error(t, err)

	var statusErr *submit.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "HTTP error! status: 500", statusErr.Error())
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestSubmitMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := submit.NewClient(srv.URL).Submit(context.Background(), model.GroupedPayload{})

	var decodeErr *submit.DecodeError
	require.True(t, errors.As(err, &decodeErr))
}

func TestSubmitAcceptsAnyJSONValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2]`))
	}))
	defer srv.Close()

	result, err := submit.NewClient(srv.URL).Submit(context.Background(), model.GroupedPayload{})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{float64(1), float64(2)}, result)
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := submit.NewClient(url).Submit(context.Background(), model.GroupedPayload{"a": {"1"}})
	require.Error(t, err)

	var statusErr *submit.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestUploadSendsMultipartFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,x\n"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, submit.UploadPath, r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		raw, _ := io.ReadAll(file)
		assert.Equal(t, "data.csv", header.Filename)
		assert.Equal(t, "a,b\n1,x\n", string(raw))
		_ = json.NewEncoder(w).Encode(submit.UploadResponse{
			Message: "stored",
			Columns: model.ColumnSet{Numeric: []string{"a"}, Categorical: []string{"b"}},
		})
	}))
	defer srv.Close()

	resp, err := submit.NewClient(srv.URL).Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "stored", resp.Message)
	assert.Equal(t, []string{"a"}, resp.Columns.Numeric)
}

func TestColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, submit.ColumnsPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"columns":{"numeric":["age"]},"fields":[{"name":"age_floor","column":"age","kind":"numeric","suffix":"floor"}]}`))
	}))
	defer srv.Close()

	resp, err := submit.NewClient(srv.URL).Columns(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "age_floor", resp.Fields[0].Name)
}
