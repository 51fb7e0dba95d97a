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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

func listEntries(target string) *httptest.ResponseRecorder {
	ctx, w := newTestContext(http.MethodGet, target, nil)
	NewEntriesController(ctx).ListEntries()
	return w
}

func TestListEntries(t *testing.T) {
	newTestSite(t, nil)

	w := listEntries("/-/api/entries?path=/docs")

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, "/docs/", got.Path)
	require.Len(t, got.Entries, 2)

	guide := got.Entries[0]
	assert.Equal(t, "guide", guide.Name)
	assert.Equal(t, "guide/", guide.Href)
	assert.True(t, guide.IsDir)
	assert.Equal(t, "-", guide.SizeText)
	assert.Equal(t, int64(0), guide.Size)

	index := got.Entries[1]
	assert.Equal(t, "index.md", index.Name)
	assert.Equal(t, int64(20000), index.Size)
	assert.Equal(t, "20000", index.SizeText)
	assert.Equal(t, "01-Mar-2024 08:30", index.Date)
	assert.True(t, testModTime.Equal(index.ModifiedAt))
	assert.Equal(t, 8, index.DisplayLength)
}

func TestListEntriesDefaultsToRoot(t *testing.T) {
	newTestSite(t, nil)

	w := listEntries("/-/api/entries")

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "/", got.Path)

	var names []string
	for _, e := range got.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"docs", "private", "readme.txt"}, names)
}

func TestListEntriesFailures(t *testing.T) {
	cfg := &config.Config{
		Locations: []config.LocationConfig{
			{Prefix: "/private/", ListingConfig: config.ListingConfig{Enable: boolPtr(false)}},
		},
	}
	newTestSite(t, cfg)

	tests := []struct {
		name   string
		target string
		status int
		code   model.ErrorCode
	}{
		{name: "relative path", target: "/-/api/entries?path=docs", status: http.StatusBadRequest, code: model.ErrorCodeInvalidRequest},
		{name: "missing", target: "/-/api/entries?path=/missing/", status: http.StatusNotFound, code: model.ErrorCodeFileNotFound},
		{name: "disabled", target: "/-/api/entries?path=/private/", status: http.StatusForbidden, code: model.ErrorCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := listEntries(tt.target)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}
