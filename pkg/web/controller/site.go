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
	"time"

	"github.com/spf13/afero"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
)

// Site is the served tree and everything needed to answer for it.
type Site struct {
	// Root is the filesystem directory mapped to "/".
	Root string
	// Dirs lists directories.
	Dirs dirfs.FS
	// Files serves regular files.
	Files afero.Fs

	Config  *config.Config
	Metrics *metrics.Listing
	Started time.Time
}

var site *Site

// InitSite serves cfg.Root from the local filesystem.
func InitSite(cfg *config.Config) {
	SetSite(&Site{
		Root:    cfg.Root,
		Dirs:    dirfs.Local(),
		Files:   afero.NewReadOnlyFs(afero.NewOsFs()),
		Config:  cfg,
		Metrics: metrics.NewListing(),
		Started: time.Now(),
	})
}

// SetSite replaces the served site.
func SetSite(s *Site) {
	site = s
}
