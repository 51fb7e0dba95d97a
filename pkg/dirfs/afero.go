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

package dirfs

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

type aferoFS struct {
	fs afero.Fs
}

// FromAfero adapts an afero.Fs. Lstat uses afero.Lstater when the backend
// implements it and falls back to Stat otherwise.
func FromAfero(fsys afero.Fs) FS {
	return aferoFS{fs: fsys}
}

func (a aferoFS) OpenDir(path string) (Dir, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.IsDir() {
		_ = f.Close()
		return nil, &fs.PathError{Op: "open", Path: path, Err: syscall.ENOTDIR}
	}

	return &aferoDir{fs: a.fs, path: path, f: f}, nil
}

type aferoDir struct {
	fs    afero.Fs
	path  string
	f     afero.File
	names []string
	read  bool
}

func (d *aferoDir) ReadName() (string, error) {
	if !d.read {
		names, err := d.f.Readdirnames(-1)
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("readdir: %w", err)
		}
		d.names = names
		d.read = true
	}

	if len(d.names) == 0 {
		return "", io.EOF
	}
	name := d.names[0]
	d.names = d.names[1:]
	return name, nil
}

func (d *aferoDir) Stat(name string) (FileInfo, error) {
	info, err := d.fs.Stat(filepath.Join(d.path, name))
	if err != nil {
		return FileInfo{}, err
	}
	return fromFileInfo(info), nil
}

func (d *aferoDir) Lstat(name string) (FileInfo, error) {
	p := filepath.Join(d.path, name)
	if l, ok := d.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(p)
		if err != nil {
			return FileInfo{}, err
		}
		return fromFileInfo(info), nil
	}
	return d.Stat(name)
}

func (d *aferoDir) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("close dir: %w", err)
	}
	return nil
}

func fromFileInfo(info fs.FileInfo) FileInfo {
	return FileInfo{
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime().Unix(),
	}
}
