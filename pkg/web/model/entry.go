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

package model

import (
	"time"

	"github.com/alibaba/opensandbox/indexd/pkg/listing"
)

// Entry is one child of a listed directory.
type Entry struct {
	Name          string    `json:"name"`
	Href          string    `json:"href"`
	IsDir         bool      `json:"is_dir"`
	Size          int64     `json:"size"`
	ModifiedAt    time.Time `json:"modified_at"`
	Date          string    `json:"date"`
	SizeText      string    `json:"size_text"`
	DisplayLength int       `json:"display_length"`
}

// Listing is the JSON form of a directory listing.
type Listing struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// NewEntry converts a collected entry, formatting date and size as a
// listing rendered with opts would.
func NewEntry(e *listing.Entry, opts listing.Options) Entry {
	size := e.Size
	if e.IsDir {
		size = 0
	}
	return Entry{
		Name:          e.Name,
		Href:          e.Href(),
		IsDir:         e.IsDir,
		Size:          size,
		ModifiedAt:    time.Unix(e.ModTime, 0).UTC(),
		Date:          listing.DisplayTime(e.ModTime, opts),
		SizeText:      listing.FormatSize(e.IsDir, e.Size, opts.ExactSize),
		DisplayLength: e.DisplayLen,
	}
}

// NewListing converts entries collected for path.
func NewListing(path string, entries []listing.Entry, opts listing.Options) *Listing {
	out := &Listing{Path: path, Entries: make([]Entry, 0, len(entries))}
	for i := range entries {
		out.Entries = append(out.Entries, NewEntry(&entries[i], opts))
	}
	return out
}
