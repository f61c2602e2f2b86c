// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"

	"github.com/loomworks/bpm/util"
)

var _ Descriptor = &trackerDescriptor{}

type trackerSpec struct {
	Type    string `mapstructure:"type"`
	Kind    string `mapstructure:"kind"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// trackerDescriptor is a bundle whose payloads live on the pipeline tracker
// as attachments on BundleVersion records.
type trackerDescriptor struct {
	base
	factory *Factory
}

func (f *Factory) newTracker(spec Spec) (Descriptor, error) {
	parsed := trackerSpec{}
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

	return &trackerDescriptor{
		base: base{
			typ:     Tracker,
			kind:    kind,
			name:    parsed.Name,
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory: f,
	}, nil
}

func (d *trackerDescriptor) Mutable() bool {
	return false
}

func (d *trackerDescriptor) Local() bool {
	return false
}

func (d *trackerDescriptor) segments() []string {
	return []string{"tracker", util.SanitizeSegment(d.name), util.SanitizeSegment(d.version)}
}

func (d *trackerDescriptor) LocalPath() (string, bool, error) {
	if !isPinned(d.version) {
		return "", false, nil
	}
	return d.factory.cache.Locate(d.segments()...)
}

func (d *trackerDescriptor) EnsureLocal(ctx context.Context) (string, error) {
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

	release, err := d.factory.tracker.GetBundleVersion(ctx, d.name, d.version)
	if err != nil {
		return "", asUnavailable(err)
	}

	// The tracker does not publish digests for attachments.
	return d.factory.commitArchive(d.segments(), "", func(archivePath string) error {
		return d.factory.tracker.DownloadAttachment(ctx, release.Payload, archivePath)
	})
}

func (d *trackerDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	releases, err := d.factory.tracker.FindBundleVersions(ctx, d.name)
	if err != nil {
		return nil, asUnavailable(err)
	}

	tokens := make([]string, 0, len(releases))
	for _, release := range releases {
		tokens = append(tokens, release.Code)
	}
	return d.factory.pin(d.spec, tokens, constraint, fmt.Sprintf("the tracker for %s", d.name))
}

func (d *trackerDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	cached, err := d.factory.cache.List("tracker", util.SanitizeSegment(d.name))
	if err != nil {
		return nil, err
	}
	return d.factory.pin(d.spec, cached, constraint, fmt.Sprintf("the cache for %s", d.name))
}

func (d *trackerDescriptor) Reachable(ctx context.Context) bool {
	return d.factory.tracker.Ping(ctx)
}
