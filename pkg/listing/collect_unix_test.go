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

//go:build linux || darwin

package listing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
)

func TestCollectLocalSymlinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("12345"), 0o644))
	require.NoError(t, os.Symlink("file.txt", filepath.Join(root, "to-file")))
	require.NoError(t, os.Symlink("dir", filepath.Join(root, "to-dir")))
	require.NoError(t, os.Symlink("nowhere", filepath.Join(root, "dangling")))
	require.NoError(t, os.Symlink("loop-b", filepath.Join(root, "loop-a")))
	require.NoError(t, os.Symlink("loop-a", filepath.Join(root, "loop-b")))

	entries, err := Load(dirfs.Local(), Request{Dir: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"dir", "to-dir", "dangling", "file.txt", "loop-a", "loop-b", "to-file"}, names(entries))

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["to-dir"].IsDir)
	assert.Equal(t, int64(5), byName["to-file"].Size)
	// broken links are described by the link itself
	assert.False(t, byName["dangling"].IsDir)
	assert.Equal(t, int64(len("nowhere")), byName["dangling"].Size)
	assert.Equal(t, int64(len("loop-b")), byName["loop-a"].Size)
}

func TestCollectLocalUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "inner"), nil, 0o644))

	// readable but not searchable: names list, stats fail
	require.NoError(t, os.Chmod(locked, 0o644))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	entries, err := Collect(dirfs.Local(), locked, CollectOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.Chmod(locked, 0o311))
	_, err = Collect(dirfs.Local(), locked, CollectOptions{})
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestGenerateLocal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hi\n"), 0o644))
	mtime := time.Date(2023, time.June, 15, 9, 45, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "readme.txt"), mtime, mtime))

	doc, err := Generate(dirfs.Local(), Request{Dir: root, Path: "/"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Entries)
	body := string(doc.Body)
	assert.Contains(t, body, `<tr><td><a href="docs/">docs</a></td><td>`)
	assert.Contains(t, body, `<tr><td><a href="readme.txt">readme.txt</a></td><td>15-Jun-2023 09:45</td><td>3</td></tr>`)
	assert.Contains(t, body, `<li class="list-group-item"><a href="readme.txt">readme.txt</a></li>`)
}
