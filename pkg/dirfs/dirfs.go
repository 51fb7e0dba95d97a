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

// Package dirfs provides the directory enumeration primitives used to build
// listings: open a directory, read child names one at a time, stat a child
// (following or not following symlinks) and release the handle.
//
// Backends:
//   - Local() on Linux, macOS and the BSDs uses openat-relative fstatat.
//   - Local() elsewhere falls back to the os package.
//   - FromAfero adapts any afero.Fs, mostly for tests and embedding.
package dirfs

import (
	"errors"
	"io/fs"
	"syscall"
)

// FileInfo is the subset of stat data a listing needs.
type FileInfo struct {
	IsDir bool
	Size  int64
	// ModTime is the modification time in Unix seconds.
	ModTime int64
}

// FS opens directories for enumeration.
type FS interface {
	OpenDir(path string) (Dir, error)
}

// Dir is an open directory handle. It must be closed exactly once.
type Dir interface {
	// ReadName returns the next child name, or io.EOF once the directory is
	// exhausted. "." and ".." may or may not be reported.
	ReadName() (string, error)
	// Stat resolves the named child, following symlinks.
	Stat(name string) (FileInfo, error)
	// Lstat resolves the named child without following symlinks.
	Lstat(name string) (FileInfo, error)
	Close() error
}

// IsNotFound reports errors that mean the directory cannot be listed because
// it does not exist as a directory: missing path, a non-directory component,
// or a name that is too long.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

// IsPermission reports access-denied errors.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsLinkFailure reports stat failures worth retrying without following links:
// the target vanished or there are too many levels of symbolic links.
func IsLinkFailure(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ELOOP)
}
