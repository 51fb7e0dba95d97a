// Copyright 2025 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
	"github.com/alibaba/opensandbox/indexd/pkg/web/controller"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/srv/docs", 0o755))
	require.NoError(t, afero.WriteFile(mem, "/srv/readme.txt", []byte("hi"), 0o644))

	cfg := &config.Config{Root: "/srv"}
	config.ApplyDefaults(cfg)
	require.NoError(t, cfg.Prepare())

	controller.SetSite(&controller.Site{
		Root:    "/srv",
		Dirs:    dirfs.FromAfero(mem),
		Files:   mem,
		Config:  cfg,
		Metrics: metrics.NewListing(),
		Started: time.Now(),
	})
	t.Cleanup(func() { controller.SetSite(nil) })

	return NewRouter()
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestRouterServesListingAndFiles(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="docs/">docs</a>`)
	assert.Contains(t, w.Body.String(), `<a href="readme.txt">readme.txt</a>`)

	w = do(h, http.MethodGet, "/readme.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())

	w = do(h, http.MethodGet, "/docs")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/docs/", w.Header().Get("Location"))

	w = do(h, http.MethodHead, "/docs/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())

	w = do(h, http.MethodDelete, "/docs/")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterServiceEndpoints(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodGet, "/-/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = do(h, http.MethodGet, "/-/api/entries?path=/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"readme.txt"`)

	w = do(h, http.MethodGet, "/-/metrics")
	if metrics.IsEnabled() {
		assert.Equal(t, http.StatusOK, w.Code)
	} else {
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodGet, "/-/ping")
	assert.Len(t, w.Header().Get(model.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/-/ping", nil)
	req.Header.Set(model.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(model.RequestIDHeader))
}
