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

// Package listing renders a directory as a responsive HTML index.
//
// A listing is produced in four steps: Collect reads the entries, Sort puts
// directories first, Estimate computes the exact document length and Render
// fills a buffer of that length in one pass. Estimate and Render share the
// escaping and formatting helpers, so the rendered length always equals the
// estimate.
package listing

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/log"
)

// zoneOffset reports the server's current UTC offset in seconds.
var zoneOffset = func() int {
	_, offset := time.Now().Zone()
	return offset
}

// DisplayTime formats modTime the way a listing rendered with opts shows it.
func DisplayTime(modTime int64, opts Options) string {
	if opts.LocalTime {
		modTime += int64(zoneOffset())
	}
	return FormatDate(modTime)
}

// Request identifies the directory to list.
type Request struct {
	// Dir is the filesystem path of the directory.
	Dir string
	// Path is the request path shown in the document.
	Path string
	CollectOptions
}

// Document is a fully rendered listing.
type Document struct {
	Body    []byte
	Entries int
}

// Load collects and sorts the entries of req.Dir.
func Load(fsys dirfs.FS, req Request) ([]Entry, error) {
	entries, err := Collect(fsys, req.Dir, req.CollectOptions)
	if err != nil {
		return nil, err
	}
	Sort(entries)
	return entries, nil
}

// Generate runs the whole pipeline and returns the rendered document.
func Generate(fsys dirfs.FS, req Request, opts Options) (*Document, error) {
	entries, err := Load(fsys, req)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Path:      req.Path,
		Entries:   entries,
		Options:   opts,
		UTCOffset: zoneOffset(),
	}

	body, err := Build(page)
	if err != nil {
		log.Error("render listing of %q failed: %v", req.Dir, err)
		return nil, &Error{Kind: KindInternal, Op: "render", Path: req.Dir, Err: fmt.Errorf("%d entries: %w", len(entries), err)}
	}

	if log.Enabled(log.LevelDebug) {
		log.Debug("rendered listing of %q: %d entries, %s", req.Dir, len(entries), humanize.Bytes(uint64(len(body))))
	}
	return &Document{Body: body, Entries: len(entries)}, nil
}
