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

//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package dirfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

const readNamesBatch = 256

type localFS struct{}

// Local returns the host filesystem backend.
func Local() FS {
	return localFS{}
}

// OpenDir opens path with O_DIRECTORY so a regular file fails with ENOTDIR
// instead of surfacing later as a readdir error. Symlinked directories are
// followed.
func (localFS) OpenDir(path string) (Dir, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: path, Err: err}
		}

		return &localDir{fd: fd, f: os.NewFile(uintptr(fd), path)}, nil
	}
}

// localDir keeps the raw fd for fstatat and the *os.File wrapper for
// Readdirnames. The *os.File owns the descriptor.
type localDir struct {
	fd    int
	f     *os.File
	names []string
	done  bool
}

func (d *localDir) ReadName() (string, error) {
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

func (d *localDir) Stat(name string) (FileInfo, error) {
	return d.statAt(name, 0, "stat")
}

func (d *localDir) Lstat(name string) (FileInfo, error) {
	return d.statAt(name, unix.AT_SYMLINK_NOFOLLOW, "lstat")
}

func (d *localDir) statAt(name string, flags int, op string) (FileInfo, error) {
	var st unix.Stat_t
	for {
		err := unix.Fstatat(d.fd, name, &st, flags)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return FileInfo{}, &fs.PathError{Op: op, Path: name, Err: err}
		}
		break
	}

	return FileInfo{
		IsDir:   uint32(st.Mode)&unix.S_IFMT == unix.S_IFDIR,
		Size:    st.Size,
		ModTime: int64(st.Mtim.Sec), //nolint:unconvert // 32-bit platforms use int32
	}, nil
}

func (d *localDir) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("close dir: %w", err)
	}
	return nil
}
