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

package listing

import (
	"slices"
	"strings"
)

// Entry is one child of a listed directory.
//
// URLEscape, HTMLEscape and DisplayLen are derived from Name once, when the
// entry is created, and are read by both the size estimate and the render.
// Never change Name after construction.
type Entry struct {
	Name  string
	IsDir bool
	// ModTime is the modification time in Unix seconds.
	ModTime int64
	// Size is ignored for directories.
	Size int64

	URLEscape  int
	HTMLEscape int
	DisplayLen int
}

// NewEntry builds an entry and caches its escaping lengths. isUTF8 tells
// whether the response charset is UTF-8.
func NewEntry(name string, isDir bool, modTime, size int64, isUTF8 bool) Entry {
	return Entry{
		Name:       name,
		IsDir:      isDir,
		ModTime:    modTime,
		Size:       size,
		URLEscape:  URLEscapeLen(name),
		HTMLEscape: HTMLEscapeLen(name),
		DisplayLen: DisplayLen(name, isUTF8),
	}
}

// hrefLen is the width of the escaped link target, trailing slash included.
func (e *Entry) hrefLen() int {
	n := len(e.Name) + e.URLEscape
	if e.IsDir {
		n++
	}
	return n
}

// textLen is the width of the escaped display text.
func (e *Entry) textLen() int {
	return len(e.Name) + e.HTMLEscape
}

// Href returns the relative link target of the entry.
func (e *Entry) Href() string {
	b := make([]byte, e.hrefLen())
	n := WriteURLEscaped(b, e.Name)
	if e.IsDir {
		b[n] = '/'
	}
	return string(b)
}

// CompareEntries orders directories before files and names by their bytes.
func CompareEntries(a, b Entry) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

// Sort orders entries in place with CompareEntries.
func Sort(entries []Entry) {
	if len(entries) > 1 {
		slices.SortFunc(entries, CompareEntries)
	}
}
