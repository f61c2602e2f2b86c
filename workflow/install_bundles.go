// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"fmt"

	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/types"
)

var _ Workflow = &InstallBundles{}

type InstallBundlesConfig struct {
	Manifest types.Manifest
	Builder  descriptor.Builder
}

func NewInstallBundles(config InstallBundlesConfig) *InstallBundles {
	return &InstallBundles{
		manifest: config.Manifest,
		builder:  config.Builder,
	}
}

// InstallBundles pulls every framework a manifest requires into the cache.
// Resolution is shallow: frameworks of frameworks are not followed.
type InstallBundles struct {
	manifest types.Manifest
	builder  descriptor.Builder
}

func (i InstallBundles) Execute(ctx context.Context) error {
	if len(i.manifest.Frameworks) == 0 {
		return nil
	}

	fmt.Printf("Installing %d required frameworks for %s...\n", len(i.manifest.Frameworks), i.manifest.ID)
	for _, framework := range i.manifest.Frameworks {
		d, err := frameworkDescriptor(i.builder, framework)
		if err != nil {
			return err
		}

		pinned, path, err := materialize(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to install framework %s: %w", framework.Name, err)
		}
		fmt.Printf("Installed %s@%s in %s\n", pinned.Name(), pinned.Version(), path)
	}
	return nil
}

func frameworkDescriptor(builder descriptor.Builder, framework types.Framework) (descriptor.Descriptor, error) {
	switch {
	case framework.Descriptor != "":
		return builder.NewFromURI(framework.Descriptor)
	case len(framework.Spec) > 0:
		return builder.NewFromDict(framework.Spec)
	default:
		return nil, fmt.Errorf("framework %q names neither a descriptor nor a spec", framework.Name)
	}
}
