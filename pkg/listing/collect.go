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
	"errors"
	"io"
	"path/filepath"

	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/log"
	"github.com/alibaba/opensandbox/indexd/pkg/util/glob"
)

const initialEntries = 40

// CollectOptions tune entry collection.
type CollectOptions struct {
	// UTF8 enables display-length counting by code point.
	UTF8 bool
	// Exclude hides names matching any of its patterns. May be nil.
	Exclude *glob.Filter
}

// Collect reads the children of dir. Names starting with '.' and names
// matched by opts.Exclude are skipped, as are children that cannot be stat'ed
// for lack of permission. The directory handle is released before Collect
// returns, whatever the outcome.
func Collect(fsys dirfs.FS, dir string, opts CollectOptions) (entries []Entry, err error) {
	d, err := fsys.OpenDir(dir)
	if err != nil {
		log.Error("open dir %q failed: %v", dir, err)
		return nil, openError(dir, err)
	}
	defer closeDir(d, dir)

	entries = make([]Entry, 0, initialEntries)
	for {
		name, err := d.ReadName()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Error("read dir %q failed: %v", dir, err)
			return nil, &Error{Kind: KindInternal, Op: "readdir", Path: dir, Err: err}
		}

		if name == "" || name[0] == '.' {
			continue
		}
		if opts.Exclude.Match(name) {
			continue
		}

		info, ok, err := statEntry(d, dir, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		entries = append(entries, NewEntry(name, info.IsDir, info.ModTime, info.Size, opts.UTF8))
	}

	return entries, nil
}

// statEntry resolves a child, retrying without following links when the
// target is gone or loops. ok is false when the child is unreadable and must
// be skipped.
func statEntry(d dirfs.Dir, dir, name string) (info dirfs.FileInfo, ok bool, err error) {
	info, err = d.Stat(name)
	if err == nil {
		return info, true, nil
	}

	path := filepath.Join(dir, name)
	if !dirfs.IsLinkFailure(err) {
		log.Error("stat %q failed: %v", path, err)
		if dirfs.IsPermission(err) {
			return info, false, nil
		}
		return info, false, &Error{Kind: KindInternal, Op: "stat", Path: path, Err: err}
	}

	info, err = d.Lstat(name)
	if err != nil {
		log.Error("lstat %q failed: %v", path, err)
		return info, false, &Error{Kind: KindInternal, Op: "lstat", Path: path, Err: err}
	}
	return info, true, nil
}

func closeDir(d dirfs.Dir, dir string) {
	if err := d.Close(); err != nil {
		log.Warn("close dir %q failed: %v", dir, err)
	}
}

// Probe opens and releases dir, reporting the same errors Collect would for
// the directory itself. It backs header-only requests.
func Probe(fsys dirfs.FS, dir string) error {
	d, err := fsys.OpenDir(dir)
	if err != nil {
		return openError(dir, err)
	}
	closeDir(d, dir)
	return nil
}
