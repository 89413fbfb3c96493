package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-column-rules/pkg/logger"
)

func TestMatchWildcardRoute(t *testing.T) {
	cases := []struct {
		path, pattern string
		want          bool
	}{
		{"/api/v1/submissions/abc", "/api/v1/submissions/*", true},
		{"/api/v1/submissions/abc/apply", "/api/v1/submissions/*/apply", true},
		{"/api/v1/submissions/abc/other", "/api/v1/submissions/*/apply", false},
		{"/swagger/index.html", "/swagger/*", true},
		{"/swagger/a/b.js", "/swagger/*", true},
		{"/other/x", "/swagger/*", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchWildcardRoute(tc.path, tc.pattern), "%s vs %s", tc.path, tc.pattern)
	}
}

func TestRouterDispatch(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := New(logger.NewWithZap(zap.New(core)))

	r.POST("/api/v1/items/*/apply", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("apply")) })
	r.GET("/api/v1/items/*", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("get")) })
	r.GET("/columns", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("cols")) })

	do := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}

	assert.Equal(t, "cols", do(http.MethodGet, "/columns").Body.String())
	assert.Equal(t, "get", do(http.MethodGet, "/api/v1/items/42").Body.String())
	assert.Equal(t, "apply", do(http.MethodPost, "/api/v1/items/42/apply").Body.String())
	assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodPost, "/columns").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/nowhere").Code)

	assert.Equal(t, 5, logs.FilterMessage("request").Len())
}
