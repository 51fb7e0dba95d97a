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

package glob

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter matches entry names against a set of doublestar patterns.
// A nil *Filter matches nothing.
type Filter struct {
	patterns []string
}

// NewFilter validates patterns and returns a filter over them. It returns
// nil when patterns is empty.
func NewFilter(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	return &Filter{patterns: append([]string(nil), patterns...)}, nil
}

// Match reports whether name matches any pattern.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.patterns {
		// patterns were validated in NewFilter
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the filter's patterns.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.patterns...)
}
