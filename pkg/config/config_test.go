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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/opensandbox/indexd/pkg/listing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
root: /srv/www
metrics:
  enabled: true
listing:
  lang: fr
  localtime: true
  exact_size: false
  exclude:
    - "*.bak"
locations:
  - prefix: /private/
    enable: false
  - prefix: /pub/
    charset: ISO-8859-1
    exact_size: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www", cfg.Root)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "fr", cfg.Listing.Lang)
	assert.Equal(t, listing.DefaultStylesheetHref, cfg.Listing.StylesheetHref)
	assert.Equal(t, DefaultCharset, cfg.Listing.Charset)
	require.Len(t, cfg.Locations, 2)

	root := cfg.Resolve("/")
	assert.True(t, root.Enable)
	assert.Equal(t, listing.Options{
		Lang:           "fr",
		StylesheetHref: listing.DefaultStylesheetHref,
		LocalTime:      true,
		ExactSize:      false,
	}, root.Options)
	assert.True(t, root.Exclude.Match("old.bak"))
	assert.True(t, root.UTF8())

	assert.False(t, cfg.Resolve("/private/").Enable)
	assert.False(t, cfg.Resolve("/private/deep/").Enable)

	pub := cfg.Resolve("/pub/x/")
	assert.True(t, pub.Enable)
	assert.True(t, pub.Options.ExactSize)
	assert.True(t, pub.Options.LocalTime)
	assert.Equal(t, "fr", pub.Options.Lang)
	assert.Equal(t, "iso-8859-1", pub.Charset)
	assert.False(t, pub.UTF8())
	assert.Equal(t, "text/html; charset=iso-8859-1", pub.ContentType())
	assert.True(t, pub.Exclude.Match("x.bak"))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultRoot, cfg.Root)
	assert.False(t, cfg.Metrics.Enabled)

	s := cfg.Resolve("/any/")
	assert.True(t, s.Enable)
	assert.Equal(t, listing.DefaultOptions(), s.Options)
	assert.Equal(t, "text/html; charset=utf-8", s.ContentType())
	assert.Nil(t, s.Exclude)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
root: /from/file
listing:
  lang: fr
`)
	t.Setenv("INDEXD_ROOT", "/from/env")
	t.Setenv("INDEXD_LISTING_LANG", "ja")
	t.Setenv("INDEXD_LISTING_EXACT_SIZE", "false")
	t.Setenv("INDEXD_LISTING_EXCLUDE", "*.o,*.a")
	t.Setenv("INDEXD_METRICS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Root)
	assert.True(t, cfg.Metrics.Enabled)

	s := cfg.Resolve("/")
	assert.Equal(t, "ja", s.Options.Lang)
	assert.False(t, s.Options.ExactSize)
	assert.True(t, s.Exclude.Match("main.o"))
	assert.True(t, s.Exclude.Match("lib.a"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad lang", content: "listing:\n  lang: \"not a tag!\"\n"},
		{name: "quote in stylesheet", content: "listing:\n  stylesheet_href: 'x\"onload=\"y'\n"},
		{name: "bad exclude", content: "listing:\n  exclude: ['[oops']\n"},
		{name: "relative prefix", content: "locations:\n  - prefix: docs/\n"},
		{name: "duplicate prefix", content: "locations:\n  - prefix: /a/\n  - prefix: /a/\n"},
		{name: "charset with parameter", content: "listing:\n  charset: 'utf-8; q=1'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
