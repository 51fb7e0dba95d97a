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
	"strings"

	"github.com/alibaba/opensandbox/indexd/pkg/listing"
)

const (
	DefaultRoot    = "."
	DefaultCharset = "utf-8"
)

// ApplyDefaults fills unset server-level fields. Locations are left alone:
// their unset fields inherit from the server level in Prepare.
func ApplyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	applyListingDefaults(&cfg.Listing)
}

func applyListingDefaults(cfg *ListingConfig) {
	if cfg.Enable == nil {
		cfg.Enable = boolPtr(true)
	}
	if cfg.LocalTime == nil {
		cfg.LocalTime = boolPtr(false)
	}
	if cfg.ExactSize == nil {
		cfg.ExactSize = boolPtr(true)
	}
	if cfg.Lang == "" {
		cfg.Lang = listing.DefaultLang
	}
	if cfg.StylesheetHref == "" {
		cfg.StylesheetHref = listing.DefaultStylesheetHref
	}
	if cfg.Charset == "" {
		cfg.Charset = DefaultCharset
	}
	cfg.Charset = strings.ToLower(cfg.Charset)
}

func boolPtr(b bool) *bool {
	return &b
}
