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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/alibaba/opensandbox/indexd/pkg/listing"
	"github.com/alibaba/opensandbox/indexd/pkg/util/glob"
)

// Settings are the effective listing settings for one request path.
type Settings struct {
	Enable  bool
	Options listing.Options
	Charset string
	Exclude *glob.Filter
}

// UTF8 reports whether display lengths count code points.
func (s Settings) UTF8() bool {
	return s.Charset == "utf-8" || s.Charset == "utf8"
}

// ContentType is the Content-Type of a rendered listing.
func (s Settings) ContentType() string {
	if s.Charset == "" {
		return "text/html"
	}
	return "text/html; charset=" + s.Charset
}

type resolvedLocation struct {
	prefix   string
	settings Settings
}

// Prepare merges every location onto the server-level settings and compiles
// the exclude filters. It must run after ApplyDefaults and Validate.
func (c *Config) Prepare() error {
	server, err := settingsOf(&c.Listing)
	if err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	locations := make([]resolvedLocation, 0, len(c.Locations))
	for i := range c.Locations {
		loc := &c.Locations[i]
		merged := mergeListing(&loc.ListingConfig, &c.Listing)
		settings, err := settingsOf(&merged)
		if err != nil {
			return fmt.Errorf("locations[%d]: %w", i, err)
		}
		locations = append(locations, resolvedLocation{prefix: loc.Prefix, settings: settings})
	}

	// longest prefix first
	slices.SortStableFunc(locations, func(a, b resolvedLocation) int {
		return cmp.Compare(len(b.prefix), len(a.prefix))
	})

	c.server = server
	c.locations = locations
	c.prepared = true
	return nil
}

// Resolve returns the settings in effect for urlPath.
func (c *Config) Resolve(urlPath string) Settings {
	if !c.prepared {
		ApplyDefaults(c)
		if err := c.Prepare(); err != nil {
			panic(err)
		}
	}
	for _, loc := range c.locations {
		if strings.HasPrefix(urlPath, loc.prefix) {
			return loc.settings
		}
	}
	return c.server
}

// mergeListing fills the unset fields of child from parent.
func mergeListing(child, parent *ListingConfig) ListingConfig {
	merged := *child
	if merged.Enable == nil {
		merged.Enable = parent.Enable
	}
	if merged.LocalTime == nil {
		merged.LocalTime = parent.LocalTime
	}
	if merged.ExactSize == nil {
		merged.ExactSize = parent.ExactSize
	}
	if merged.Lang == "" {
		merged.Lang = parent.Lang
	}
	if merged.StylesheetHref == "" {
		merged.StylesheetHref = parent.StylesheetHref
	}
	if merged.Charset == "" {
		merged.Charset = parent.Charset
	}
	merged.Charset = strings.ToLower(merged.Charset)
	if merged.Exclude == nil {
		merged.Exclude = parent.Exclude
	}
	return merged
}

func settingsOf(cfg *ListingConfig) (Settings, error) {
	exclude, err := glob.NewFilter(cfg.Exclude)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Enable: deref(cfg.Enable),
		Options: listing.Options{
			Lang:           cfg.Lang,
			StylesheetHref: cfg.StylesheetHref,
			LocalTime:      deref(cfg.LocalTime),
			ExactSize:      deref(cfg.ExactSize),
		},
		Charset: cfg.Charset,
		Exclude: exclude,
	}, nil
}

func deref(b *bool) bool {
	return b != nil && *b
}
