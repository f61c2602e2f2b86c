// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/loomworks/bpm/deployment"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/filesystem"
	"github.com/loomworks/bpm/types"
)

var _ Workflow = &UpdateConfiguration{}

type UpdateConfigurationConfig struct {
	Checkout *deployment.Checkout
	Resolved descriptor.Descriptor
	PluginID string

	Builder  descriptor.Builder
	Executor Executor
	Fs       afero.Fs
}

func NewUpdateConfiguration(config UpdateConfigurationConfig) *UpdateConfiguration {
	return &UpdateConfiguration{
		checkout: config.Checkout,
		resolved: config.Resolved,
		pluginID: config.PluginID,
		builder:  config.Builder,
		executor: config.Executor,
		fs:       config.Fs,
	}
}

// UpdateConfiguration deploys a resolved configuration into a checkout. The
// transaction marker goes down before anything changes and the deployment
// record is written last, so a crash at any point leaves the checkout
// observably Invalid instead of silently half-updated.
type UpdateConfiguration struct {
	checkout *deployment.Checkout
	resolved descriptor.Descriptor
	pluginID string

	builder  descriptor.Builder
	executor Executor
	fs       afero.Fs
}

type corePointer struct {
	Descriptor string `yaml:"descriptor"`
	Path       string `yaml:"path"`
}

func (u *UpdateConfiguration) Execute(ctx context.Context) error {
	fmt.Printf("Updating %s to %s...\n", u.checkout.Root(), u.resolved.URI())
	if err := u.checkout.BeginUpdate(); err != nil {
		return err
	}

	payload, err := u.resolved.EnsureLocal(ctx)
	if err != nil {
		return err
	}

	manifest, err := types.LoadManifest(u.fs, payload)
	if errors.Is(err, fs.ErrNotExist) {
		// Plain payloads without a manifest deploy as-is.
		manifest = types.Manifest{}
	} else if err != nil {
		return err
	}

	fmt.Printf("Installing configuration files into %s...\n", u.checkout.Root())
	configDir := filepath.Join(u.checkout.Root(), "config")
	if err := u.fs.RemoveAll(configDir); err != nil {
		return err
	}
	if err := filesystem.CopyDir(u.fs, payload, configDir); err != nil {
		return err
	}

	if manifest.Core != "" {
		if err := u.swapCore(ctx, manifest.Core); err != nil {
			return err
		}
	}

	install := NewInstallBundles(InstallBundlesConfig{
		Manifest: manifest,
		Builder:  u.builder,
	})
	if err := u.executor.Execute(ctx, install); err != nil {
		return err
	}

	if err := u.checkout.CompleteUpdate(deployment.Record{
		Descriptor: u.resolved.URI(),
		PluginID:   u.pluginID,
	}); err != nil {
		return err
	}

	fmt.Printf("Successfully updated %s to %s@%s\n", u.checkout.Root(), u.resolved.Name(), u.resolved.Version())
	return nil
}

func (u *UpdateConfiguration) corePointerPath() string {
	return filepath.Join(u.checkout.Root(), "install", "core", "core.yaml")
}

// swapCore activates the core implementation the configuration names. The
// pointer file records which core is active; when it already names this
// descriptor there is nothing to do.
func (u *UpdateConfiguration) swapCore(ctx context.Context, uri string) error {
	core, err := u.builder.NewFromURI(uri)
	if err != nil {
		return err
	}
	pinned, path, err := materialize(ctx, core)
	if err != nil {
		return fmt.Errorf("failed to install core %s: %w", uri, err)
	}

	current := corePointer{}
	if raw, err := afero.ReadFile(u.fs, u.corePointerPath()); err == nil {
		// A garbled pointer reads as zero and gets rewritten below.
		_ = yaml.Unmarshal(raw, &current)
	}
	if current.Descriptor == pinned.URI() && current.Path == path {
		fmt.Printf("Core %s is already active.\n", pinned.URI())
		return nil
	}

	fmt.Printf("Switching core to %s@%s...\n", pinned.Name(), pinned.Version())
	out, err := yaml.Marshal(corePointer{
		Descriptor: pinned.URI(),
		Path:       path,
	})
	if err != nil {
		return err
	}
	if err := u.fs.MkdirAll(filepath.Dir(u.corePointerPath()), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(u.fs, u.corePointerPath(), out, 0o644)
}
