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

//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package dirfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

const readNamesBatch = 256

type localFS struct{}

// Local returns the host filesystem backend.
func Local() FS {
	return localFS{}
}

func (localFS) OpenDir(path string) (Dir, error) {
	f, err := os.Open(path)
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

	return &osDir{path: path, f: f}, nil
}

type osDir struct {
	path  string
	f     *os.File
	names []string
	done  bool
}

func (d *osDir) ReadName() (string, error) {
	for len(d.names) == 0 {
		if d.done {
			return "", io.EOF
		}

		names, err := d.f.Readdirnames(readNamesBatch)
		if err == io.EOF {
			d.done = true
		} else if err != nil {
			return "", fmt.Errorf("readdir: %w", err)
		}
		d.names = names
	}

	name := d.names[0]
	d.names = d.names[1:]
	return name, nil
}

func (d *osDir) Stat(name string) (FileInfo, error) {
	info, err := os.Stat(filepath.Join(d.path, name))
	if err != nil {
		return FileInfo{}, err
	}
	return fromFileInfo(info), nil
}

func (d *osDir) Lstat(name string) (FileInfo, error) {
	info, err := os.Lstat(filepath.Join(d.path, name))
	if err != nil {
		return FileInfo{}, err
	}
	return fromFileInfo(info), nil
}

func (d *osDir) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("close dir: %w", err)
	}
	return nil
}
