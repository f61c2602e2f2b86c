// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

var _ Descriptor = &pathDescriptor{}

type pathSpec struct {
	Type        string `mapstructure:"type"`
	Kind        string `mapstructure:"kind"`
	Name        string `mapstructure:"name"`
	Path        string `mapstructure:"path"`
	LinuxPath   string `mapstructure:"linux_path"`
	MacPath     string `mapstructure:"mac_path"`
	WindowsPath string `mapstructure:"windows_path"`
}

// pathDescriptor is a payload directory used exactly where it sits,
// typically a developer's working copy. It never enters the cache and its
// contents are assumed to change at any time.
type pathDescriptor struct {
	base
	factory *Factory
	path    string
}

func (f *Factory) newPath(spec Spec) (Descriptor, error) {
	parsed := pathSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}

	path := parsed.Path
	switch runtime.GOOS {
	case "linux":
		if parsed.LinuxPath != "" {
			path = parsed.LinuxPath
		}
	case "darwin":
		if parsed.MacPath != "" {
			path = parsed.MacPath
		}
	case "windows":
		if parsed.WindowsPath != "" {
			path = parsed.WindowsPath
		}
	}
	if path == "" {
		return nil, fmt.Errorf("%w: path (no path field for %s)", ErrMissingRequiredField, runtime.GOOS)
	}
	path = filepath.Clean(path)

	name := parsed.Name
	if name == "" {
		name = filepath.Base(path)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &pathDescriptor{
		base: base{
			typ:  Path,
			kind: kind,
			name: name,
			spec: spec.Clone(),
		},
		factory: f,
		path:    path,
	}, nil
}

func (d *pathDescriptor) Mutable() bool {
	return true
}

func (d *pathDescriptor) Local() bool {
	return true
}

func (d *pathDescriptor) LocalPath() (string, bool, error) {
	ok, err := afero.DirExists(d.factory.fs, d.path)
	if err != nil {
		return "", false, err
	}
	return d.path, ok, nil
}

func (d *pathDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("path payload %s does not exist on this machine", d.path)
	}
	return path, nil
}

// FindLatest returns the descriptor itself: a directory on disk is its own
// one and only version.
func (d *pathDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint != "" {
		return nil, fmt.Errorf("%w: %s descriptors have no versions to constrain", ErrInvalidSpec, Path)
	}
	return d, nil
}

func (d *pathDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	return d, nil
}

func (d *pathDescriptor) Reachable(ctx context.Context) bool {
	return false
}
