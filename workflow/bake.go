// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/filesystem"
	"github.com/loomworks/bpm/types"
	"github.com/loomworks/bpm/util"
)

var _ Workflow = &Bake{}

type BakeConfig struct {
	Resolved descriptor.Descriptor
	// Name of the snapshot. Defaults to the resolved descriptor's name.
	Name string

	Builder descriptor.Builder
	Fs      afero.Fs
	// Clock stamps the snapshot version. Defaults to time.Now.
	Clock func() time.Time
}

func NewBake(config BakeConfig) *Bake {
	name := config.Name
	if name == "" {
		name = config.Resolved.Name()
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Bake{
		resolved: config.Resolved,
		name:     name,
		builder:  config.Builder,
		fs:       config.Fs,
		clock:    clock,
	}
}

// Bake freezes a resolved configuration and the frameworks it requires into
// a timestamped snapshot under the baked area. The snapshot is a closed
// world: deployments built from it never touch a backend again.
type Bake struct {
	resolved descriptor.Descriptor
	name     string
	builder  descriptor.Builder
	fs       afero.Fs
	clock    func() time.Time

	baked descriptor.Descriptor
}

// Baked returns the snapshot descriptor a successful Execute produced.
func (b *Bake) Baked() descriptor.Descriptor {
	return b.baked
}

func (b *Bake) Execute(ctx context.Context) error {
	payload, err := b.resolved.EnsureLocal(ctx)
	if err != nil {
		return err
	}

	spec := descriptor.Spec{
		"type":    string(descriptor.Baked),
		"name":    b.name,
		"version": b.clock().UTC().Format("20060102.150405"),
	}
	if kind := b.resolved.Kind(); kind != "" {
		spec["kind"] = string(kind)
	}
	baked, err := b.builder.NewFromSpec(spec)
	if err != nil {
		return err
	}

	dest, exists, err := baked.LocalPath()
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("baked snapshot %s already exists", dest)
	}

	fmt.Printf("Baking %s@%s into %s...\n", b.resolved.Name(), b.resolved.Version(), dest)
	if err := filesystem.CopyDir(b.fs, payload, dest); err != nil {
		return err
	}

	manifest, err := types.LoadManifest(b.fs, payload)
	if errors.Is(err, fs.ErrNotExist) {
		manifest = types.Manifest{}
	} else if err != nil {
		return err
	}

	for _, framework := range manifest.Frameworks {
		d, err := frameworkDescriptor(b.builder, framework)
		if err != nil {
			return err
		}
		pinned, path, err := materialize(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to bake framework %s: %w", framework.Name, err)
		}

		bundleDir := filepath.Join(dest, "bundles", util.SanitizeSegment(pinned.Name()))
		fmt.Printf("Baking framework %s@%s...\n", pinned.Name(), pinned.Version())
		if err := filesystem.CopyDir(b.fs, path, bundleDir); err != nil {
			return err
		}
	}

	b.baked = baked
	fmt.Printf("Successfully baked %s\n", baked.URI())
	return nil
}
