// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/loomworks/bpm/util"
)

var _ Descriptor = &manualDescriptor{}

type manualSpec struct {
	Type    string `mapstructure:"type"`
	Kind    string `mapstructure:"kind"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// manualDescriptor is a payload an operator copies into the cache by hand,
// for air-gapped sites and for vendor drops that live on no backend.
type manualDescriptor struct {
	base
	factory *Factory
}

func (f *Factory) newManual(spec Spec) (Descriptor, error) {
	parsed := manualSpec{}
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

	return &manualDescriptor{
		base: base{
			typ:     Manual,
			kind:    kind,
			name:    parsed.Name,
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory: f,
	}, nil
}

func (d *manualDescriptor) Mutable() bool {
	return false
}

func (d *manualDescriptor) Local() bool {
	return true
}

func (d *manualDescriptor) segments() []string {
	return []string{"manual", util.SanitizeSegment(d.name), util.SanitizeSegment(d.version)}
}

func (d *manualDescriptor) LocalPath() (string, bool, error) {
	return d.factory.cache.Locate(d.segments()...)
}

func (d *manualDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}
	return "", fmt.Errorf(
		"manual payload %s %s is not in any cache root; copy it to %s on this machine or a shared root",
		d.name, d.version,
		filepath.Join(d.factory.cache.Primary(), filepath.Join(d.segments()...)),
	)
}

// FindLatest for a manual payload can only consult the cache: there is no
// backend holding other versions.
func (d *manualDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	return d.FindLatestLocal(constraint)
}

func (d *manualDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	cached, err := d.factory.cache.List("manual", util.SanitizeSegment(d.name))
	if err != nil {
		return nil, err
	}
	return d.factory.pin(d.spec, cached, constraint, fmt.Sprintf("the manual payloads for %s", d.name))
}

// Reachable is always false: manual payloads have no backend to probe.
func (d *manualDescriptor) Reachable(ctx context.Context) bool {
	return false
}
