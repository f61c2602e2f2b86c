// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Directory renames are the semantics under test, so these tests run on a
// real filesystem rather than an in-memory one.
func newTestCache(t *testing.T, extraRoots ...string) *Cache {
	t.Helper()

	roots := append([]string{filepath.Join(t.TempDir(), "primary")}, extraRoots...)
	c, err := New(Config{
		Fs:    afero.NewOsFs(),
		Roots: roots,
	})
	require.NoError(t, err)
	return c
}

func stageEntry(t *testing.T, c *Cache, content string) string {
	t.Helper()

	staging, err := c.StagingDir()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(c.fs, filepath.Join(staging, "bundle.yaml"), []byte(content), 0o644))
	return staging
}

func TestCommitThenLocate(t *testing.T) {
	c := newTestCache(t)

	staging := stageEntry(t, c, "id: maya-tools")
	committed, err := c.Commit(staging, "maya-tools", "v1.2.3")
	require.NoError(t, err)

	located, found, err := c.Locate("maya-tools", "v1.2.3")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, committed, located)

	content, err := afero.ReadFile(c.fs, filepath.Join(located, "bundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "id: maya-tools", string(content))

	// The staging directory is gone either way.
	_, err = c.fs.Stat(staging)
	assert.True(t, os.IsNotExist(err))
}

func TestCommitIsIdempotent(t *testing.T) {
	c := newTestCache(t)

	first := stageEntry(t, c, "first")
	committed, err := c.Commit(first, "maya-tools", "v1.2.3")
	require.NoError(t, err)

	// A second writer racing on the same key loses quietly and the original
	// entry survives untouched.
	second := stageEntry(t, c, "second")
	again, err := c.Commit(second, "maya-tools", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, committed, again)

	content, err := afero.ReadFile(c.fs, filepath.Join(committed, "bundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))

	_, err = c.fs.Stat(second)
	assert.True(t, os.IsNotExist(err))
}

func TestCommitLosesRaceAfterExistsCheck(t *testing.T) {
	c := newTestCache(t)

	staging := stageEntry(t, c, "ours")

	// Simulate another process landing the entry between our exists check
	// and our rename: the target is already there when rename runs.
	target := filepath.Join(c.Primary(), "maya-tools", "v1.2.3")
	require.NoError(t, c.fs.MkdirAll(target, 0o755))
	require.NoError(t, afero.WriteFile(c.fs, filepath.Join(target, "bundle.yaml"), []byte("theirs"), 0o644))

	committed, err := c.Commit(staging, "maya-tools", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, target, committed)

	content, err := afero.ReadFile(c.fs, filepath.Join(target, "bundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "theirs", string(content))
}

func TestLocatePrefersEarlierRoots(t *testing.T) {
	secondary := t.TempDir()
	c := newTestCache(t, secondary)

	// Entry only present in the secondary root.
	sharedEntry := filepath.Join(secondary, "maya-tools", "v1.0.0")
	require.NoError(t, os.MkdirAll(sharedEntry, 0o755))

	located, found, err := c.Locate("maya-tools", "v1.0.0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sharedEntry, located)

	// Once the primary has it too, the primary wins.
	staging := stageEntry(t, c, "local copy")
	committed, err := c.Commit(staging, "maya-tools", "v1.0.0")
	require.NoError(t, err)

	located, found, err = c.Locate("maya-tools", "v1.0.0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, committed, located)
}

func TestLocateSkipsUnreachableRoots(t *testing.T) {
	c := newTestCache(t, filepath.Join(t.TempDir(), "not-mounted"))

	staging := stageEntry(t, c, "content")
	committed, err := c.Commit(staging, "maya-tools", "v2.0.0")
	require.NoError(t, err)

	located, found, err := c.Locate("maya-tools", "v2.0.0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, committed, located)
}

func TestList(t *testing.T) {
	secondary := t.TempDir()
	c := newTestCache(t, secondary)

	staging := stageEntry(t, c, "a")
	_, err := c.Commit(staging, "maya-tools", "v1.0.0")
	require.NoError(t, err)
	staging = stageEntry(t, c, "b")
	_, err = c.Commit(staging, "maya-tools", "v1.1.0")
	require.NoError(t, err)

	// The shared root contributes one version the primary also has and one
	// it does not.
	require.NoError(t, os.MkdirAll(filepath.Join(secondary, "maya-tools", "v1.1.0"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(secondary, "maya-tools", "v2.0.0"), 0o755))

	names, err := c.List("maya-tools")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1.0.0", "v1.1.0", "v2.0.0"}, names)

	names, err = c.List("unknown-bundle")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStagingDirsAreUnique(t *testing.T) {
	c := newTestCache(t)

	a, err := c.StagingDir()
	require.NoError(t, err)
	b, err := c.StagingDir()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, filepath.Join(c.Primary(), "tmp"), filepath.Dir(a))
}

func TestKeyValidation(t *testing.T) {
	c := newTestCache(t)

	tests := []struct {
		name     string
		segments []string
	}{
		{name: "empty key", segments: nil},
		{name: "reserved staging name", segments: []string{"tmp", "v1"}},
		{name: "empty segment", segments: []string{"maya-tools", ""}},
		{name: "path escape", segments: []string{"..", "v1"}},
		{name: "separator in segment", segments: []string{"maya/tools", "v1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Locate(tt.segments...)
			assert.ErrorIs(t, err, errInvalidKey)
		})
	}
}

func TestPruneStaging(t *testing.T) {
	c := newTestCache(t)

	stale, err := c.StagingDir()
	require.NoError(t, err)
	fresh, err := c.StagingDir()
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, c.fs.Chtimes(stale, old, old))

	require.NoError(t, c.PruneStaging(24*time.Hour))

	_, err = c.fs.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = c.fs.Stat(fresh)
	assert.NoError(t, err)
}

func TestSizes(t *testing.T) {
	c := newTestCache(t)

	staging := stageEntry(t, c, "0123456789")
	_, err := c.Commit(staging, "maya-tools", "v1.2.3")
	require.NoError(t, err)

	usage, err := c.Sizes()
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, c.Primary(), usage[0].Root)
	assert.Equal(t, int64(10), usage[0].Bytes)
}
