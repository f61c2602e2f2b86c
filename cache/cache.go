// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/loomworks/bpm/filesystem"
)

// stagingDirName is the directory under the primary root where entries are
// assembled before they are renamed into place. It lives inside the root so
// the final rename never crosses a filesystem boundary.
const stagingDirName = "tmp"

var errInvalidKey = errors.New("invalid cache key")

type Config struct {
	Fs afero.Fs
	// Roots are searched in order. The first root is the primary: it is the
	// only root ever written to, and it is created if absent. Later roots
	// are typically site-shared read-only mounts and are skipped when
	// unreachable.
	Roots []string
}

// Cache is a multi-root store of immutable bundle payloads. Entries are
// keyed by path segments and only ever appear fully formed: writers stage
// into a scratch directory and rename into place, and a lost rename race
// means some other process committed identical bytes first.
type Cache struct {
	fs    afero.Fs
	roots []string
}

func New(config Config) (*Cache, error) {
	if len(config.Roots) == 0 {
		return nil, errors.New("at least one cache root is required")
	}

	roots := make([]string, 0, len(config.Roots))
	for _, root := range config.Roots {
		roots = append(roots, filepath.Clean(root))
	}

	if err := config.Fs.MkdirAll(filepath.Join(roots[0], stagingDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to initialize cache root %s: %w", roots[0], err)
	}

	return &Cache{
		fs:    config.Fs,
		roots: roots,
	}, nil
}

// Primary returns the writable root.
func (c *Cache) Primary() string {
	return c.roots[0]
}

func (c *Cache) Roots() []string {
	return c.roots
}

// Locate searches every root in order for the entry keyed by segments and
// returns the first hit. Unreachable roots are skipped.
func (c *Cache) Locate(segments ...string) (string, bool, error) {
	for _, root := range c.roots {
		path, err := entryPath(root, segments)
		if err != nil {
			return "", false, err
		}
		if ok, err := afero.DirExists(c.fs, path); err == nil && ok {
			return path, true, nil
		}
	}
	return "", false, nil
}

// List returns the child directory names under the keyed directory, merged
// across every reachable root. Callers use it to answer "which versions of
// this bundle are already on disk" without touching the network.
func (c *Cache) List(segments ...string) ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, root := range c.roots {
		path, err := entryPath(root, segments)
		if err != nil {
			return nil, err
		}
		infos, err := afero.ReadDir(c.fs, path)
		if err != nil {
			continue
		}
		for _, info := range infos {
			if !info.IsDir() || seen[info.Name()] {
				continue
			}
			seen[info.Name()] = true
			names = append(names, info.Name())
		}
	}
	return names, nil
}

// StagingDir creates a fresh scratch directory under the primary root for a
// writer to assemble an entry in.
func (c *Cache) StagingDir() (string, error) {
	dir := filepath.Join(c.Primary(), stagingDirName, uuid.NewString())
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// Commit renames the staged directory into its final location under the
// primary root and returns that location. If the entry already exists, or
// appears mid-commit because another process won the rename, the staged copy
// is discarded and the existing entry is returned: entries for the same key
// are identical by construction, so losing the race is still success.
func (c *Cache) Commit(staging string, segments ...string) (string, error) {
	target, err := entryPath(c.Primary(), segments)
	if err != nil {
		return "", err
	}

	if ok, err := afero.DirExists(c.fs, target); err == nil && ok {
		return target, c.Discard(staging)
	}

	if err := c.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := c.fs.Rename(staging, target); err != nil {
		if ok, existsErr := afero.DirExists(c.fs, target); existsErr == nil && ok {
			return target, c.Discard(staging)
		}
		return "", fmt.Errorf("failed to commit cache entry %s: %w", target, err)
	}
	return target, nil
}

// Discard removes a staged directory that will not be committed.
func (c *Cache) Discard(staging string) error {
	return c.fs.RemoveAll(staging)
}

// PruneStaging removes scratch directories older than maxAge. Staging
// directories are private to the process that created them, so anything old
// enough to prune belongs to a process that died mid-write.
func (c *Cache) PruneStaging(maxAge time.Duration) error {
	staging := filepath.Join(c.Primary(), stagingDirName)
	infos, err := afero.ReadDir(c.fs, staging)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	for _, info := range infos {
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := c.fs.RemoveAll(filepath.Join(staging, info.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Usage reports the bytes a single root holds on disk.
type Usage struct {
	Root  string
	Bytes int64
}

// Sizes measures every reachable root, in root order.
func (c *Cache) Sizes() ([]Usage, error) {
	var usage []Usage
	for _, root := range c.roots {
		if ok, err := afero.DirExists(c.fs, root); err != nil || !ok {
			continue
		}
		size, err := filesystem.DirSize(c.fs, root)
		if err != nil {
			return nil, fmt.Errorf("failed to measure cache root %s: %w", root, err)
		}
		usage = append(usage, Usage{Root: root, Bytes: size})
	}
	return usage, nil
}

func entryPath(root string, segments []string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no segments", errInvalidKey)
	}
	if segments[0] == stagingDirName {
		return "", fmt.Errorf("%w: %s is reserved", errInvalidKey, stagingDirName)
	}
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
			return "", fmt.Errorf("%w: bad segment %q", errInvalidKey, segment)
		}
	}
	return filepath.Join(append([]string{root}, segments...)...), nil
}
