// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/loomworks/bpm/fetch"
	"github.com/loomworks/bpm/util"
	"github.com/loomworks/bpm/version"
)

var _ Descriptor = &registryDescriptor{}

type registrySpec struct {
	Type    string `mapstructure:"type"`
	Kind    string `mapstructure:"kind"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// registryDescriptor is a bundle published in the studio's HTTP registry.
// The registry serves a per-bundle index naming every released version, its
// payload url and its digest.
type registryDescriptor struct {
	base
	factory *Factory
}

func (f *Factory) newRegistry(spec Spec) (Descriptor, error) {
	parsed := registrySpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &registryDescriptor{
		base: base{
			typ:     Registry,
			kind:    kind,
			name:    parsed.Name,
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory: f,
	}, nil
}

func (d *registryDescriptor) Mutable() bool {
	return false
}

func (d *registryDescriptor) Local() bool {
	return false
}

func (d *registryDescriptor) segments() []string {
	return []string{"registry", util.SanitizeSegment(d.name), util.SanitizeSegment(d.version)}
}

func (d *registryDescriptor) LocalPath() (string, bool, error) {
	if !isPinned(d.version) {
		return "", false, nil
	}
	return d.factory.cache.Locate(d.segments()...)
}

func (d *registryDescriptor) EnsureLocal(ctx context.Context) (string, error) {
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

	index, err := d.index(ctx)
	if err != nil {
		return "", err
	}
	release, ok := index.release(d.version)
	if !ok {
		return "", fmt.Errorf("%w: the registry has no %s %s", version.ErrVersionNotFound, d.name, d.version)
	}

	return d.factory.commitArchive(d.segments(), release.SHA256, func(archivePath string) error {
		return d.factory.fetch.Download(ctx, release.URL, archivePath, nil)
	})
}

func (d *registryDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	index, err := d.index(ctx)
	if err != nil {
		return nil, err
	}
	return d.factory.pin(d.spec, index.tokens(), constraint, fmt.Sprintf("the registry for %s", d.name))
}

func (d *registryDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	cached, err := d.factory.cache.List("registry", util.SanitizeSegment(d.name))
	if err != nil {
		return nil, err
	}
	return d.factory.pin(d.spec, cached, constraint, fmt.Sprintf("the cache for %s", d.name))
}

func (d *registryDescriptor) Reachable(ctx context.Context) bool {
	return d.factory.fetch.Probe(ctx, d.indexURL(), nil)
}

type registryIndex struct {
	Versions []registryRelease `json:"versions"`
}

type registryRelease struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	SHA256  string `json:"sha256"`
}

func (i registryIndex) tokens() []string {
	tokens := make([]string, 0, len(i.Versions))
	for _, release := range i.Versions {
		tokens = append(tokens, release.Version)
	}
	return tokens
}

func (i registryIndex) release(token string) (registryRelease, bool) {
	for _, release := range i.Versions {
		if release.Version == token {
			return release, true
		}
	}
	return registryRelease{}, false
}

func (d *registryDescriptor) indexURL() string {
	return fmt.Sprintf("%s/bundles/%s/index.json", d.factory.registryURL, url.PathEscape(d.name))
}

func (d *registryDescriptor) index(ctx context.Context) (registryIndex, error) {
	index := registryIndex{}
	if err := d.factory.fetch.GetJSON(ctx, d.indexURL(), nil, &index); err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return registryIndex{}, fmt.Errorf("bundle %s is not in the registry: %w", d.name, err)
		}
		return registryIndex{}, asUnavailable(err)
	}
	return index, nil
}
