// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/loomworks/bpm/util"
)

var _ Descriptor = &bakedDescriptor{}

type bakedSpec struct {
	Type    string `mapstructure:"type"`
	Kind    string `mapstructure:"kind"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// bakedDescriptor is a payload frozen into the baked area by a bake run.
// Baked versions are generated stamps, not release tokens, and a baked
// snapshot is a closed world: it resolves to itself and to nothing else.
type bakedDescriptor struct {
	base
	factory *Factory
}

func (f *Factory) newBaked(spec Spec) (Descriptor, error) {
	parsed := bakedSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if parsed.Version == "" {
		return nil, fmt.Errorf("%w: version", ErrMissingRequiredField)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &bakedDescriptor{
		base: base{
			typ:     Baked,
			kind:    kind,
			name:    parsed.Name,
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory: f,
	}, nil
}

func (d *bakedDescriptor) Mutable() bool {
	return false
}

func (d *bakedDescriptor) Local() bool {
	return true
}

func (d *bakedDescriptor) path() string {
	return filepath.Join(d.factory.bakedRoot, util.SanitizeSegment(d.name), util.SanitizeSegment(d.version))
}

func (d *bakedDescriptor) LocalPath() (string, bool, error) {
	path := d.path()
	ok, err := afero.DirExists(d.factory.fs, path)
	if err != nil {
		return "", false, err
	}
	return path, ok, nil
}

func (d *bakedDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("baked payload %s %s is missing from %s; re-run the bake", d.name, d.version, d.factory.bakedRoot)
	}
	return path, nil
}

func (d *bakedDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint != "" {
		return nil, fmt.Errorf("%w: %s descriptors are frozen snapshots and cannot be constrained", ErrInvalidSpec, Baked)
	}
	return d, nil
}

func (d *bakedDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	return d, nil
}

func (d *bakedDescriptor) Reachable(ctx context.Context) bool {
	return false
}
