// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"

	"github.com/loomworks/bpm/util"
)

var _ Descriptor = &forgeDescriptor{}

type forgeSpec struct {
	Type         string `mapstructure:"type"`
	Kind         string `mapstructure:"kind"`
	Organization string `mapstructure:"organization"`
	Repository   string `mapstructure:"repository"`
	Version      string `mapstructure:"version"`
}

// forgeDescriptor is a bundle released on a GitHub-compatible forge, one
// release per version with the payload attached as an asset.
type forgeDescriptor struct {
	base
	factory      *Factory
	organization string
	repository   string
}

func (f *Factory) newForge(spec Spec) (Descriptor, error) {
	parsed := forgeSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Organization == "" {
		return nil, fmt.Errorf("%w: organization", ErrMissingRequiredField)
	}
	if parsed.Repository == "" {
		return nil, fmt.Errorf("%w: repository", ErrMissingRequiredField)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &forgeDescriptor{
		base: base{
			typ:     Forge,
			kind:    kind,
			name:    parsed.Repository,
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory:      f,
		organization: parsed.Organization,
		repository:   parsed.Repository,
	}, nil
}

func (d *forgeDescriptor) Mutable() bool {
	return false
}

func (d *forgeDescriptor) Local() bool {
	return false
}

func (d *forgeDescriptor) segments() []string {
	return []string{
		"forge",
		util.SanitizeSegment(d.organization),
		util.SanitizeSegment(d.repository),
		util.SanitizeSegment(d.version),
	}
}

func (d *forgeDescriptor) LocalPath() (string, bool, error) {
	if !isPinned(d.version) {
		return "", false, nil
	}
	return d.factory.cache.Locate(d.segments()...)
}

func (d *forgeDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}
	if !isPinned(d.version) {
		return "", notPinned(d)
	}

	release, err := d.factory.forge.GetRelease(ctx, d.organization, d.repository, d.version)
	if err != nil {
		return "", asUnavailable(err)
	}
	asset, err := release.PayloadAsset()
	if err != nil {
		return "", err
	}

	// Forge releases carry no digests alongside their assets.
	return d.factory.commitArchive(d.segments(), "", func(archivePath string) error {
		return d.factory.forge.DownloadAsset(ctx, asset, archivePath)
	})
}

func (d *forgeDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	tags, err := d.factory.forge.ListReleaseTags(ctx, d.organization, d.repository)
	if err != nil {
		return nil, asUnavailable(err)
	}
	return d.factory.pin(d.spec, tags, constraint, fmt.Sprintf("the releases of %s/%s", d.organization, d.repository))
}

func (d *forgeDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	cached, err := d.factory.cache.List("forge", util.SanitizeSegment(d.organization), util.SanitizeSegment(d.repository))
	if err != nil {
		return nil, err
	}
	return d.factory.pin(d.spec, cached, constraint, fmt.Sprintf("the cache for %s/%s", d.organization, d.repository))
}

func (d *forgeDescriptor) Reachable(ctx context.Context) bool {
	return d.factory.forge.Ping(ctx)
}
