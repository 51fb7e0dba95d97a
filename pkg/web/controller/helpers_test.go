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

package controller

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
)

func newTestContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	ctx.Request = req
	return ctx, w
}

var testModTime = time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)

// newTestSite serves an in-memory tree rooted at /srv:
//
//	/srv/docs/guide/
//	/srv/docs/index.md   (20000 bytes)
//	/srv/private/key
//	/srv/readme.txt      ("hello world\n")
//	/srv/.env
func newTestSite(t *testing.T, cfg *config.Config) *Site {
	t.Helper()

	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/srv/docs/guide", 0o755))
	require.NoError(t, mem.MkdirAll("/srv/private", 0o755))
	require.NoError(t, afero.WriteFile(mem, "/srv/readme.txt", []byte("hello world\n"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/srv/.env", []byte("SECRET=1"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/srv/docs/index.md", make([]byte, 20000), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/srv/private/key", []byte("k"), 0o600))
	for _, p := range []string{"/srv/docs", "/srv/docs/guide", "/srv/private", "/srv/readme.txt", "/srv/docs/index.md"} {
		require.NoError(t, mem.Chtimes(p, testModTime, testModTime))
	}

	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.Root = "/srv"
	config.ApplyDefaults(cfg)
	require.NoError(t, config.Validate(cfg))
	require.NoError(t, cfg.Prepare())

	s := &Site{
		Root:    "/srv",
		Dirs:    dirfs.FromAfero(mem),
		Files:   mem,
		Config:  cfg,
		Metrics: metrics.NewListing(),
		Started: time.Now(),
	}
	prev := site
	SetSite(s)
	t.Cleanup(func() { SetSite(prev) })
	return s
}

func boolPtr(b bool) *bool {
	return &b
}
