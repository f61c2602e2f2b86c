// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bpm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/juju/fslock"
	"github.com/spf13/afero"

	"github.com/loomworks/bpm/cache"
	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/deployment"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/engine"
	"github.com/loomworks/bpm/fetch"
	"github.com/loomworks/bpm/forge"
	"github.com/loomworks/bpm/git"
	"github.com/loomworks/bpm/resolver"
	"github.com/loomworks/bpm/tracker"
	"github.com/loomworks/bpm/workflow"
)

const (
	bakedDir = "baked"
	lockFile = "bpm.lock"

	// stagingMaxAge is how long an abandoned staging directory may linger
	// before startup maintenance sweeps it. Long enough that no live
	// download ever crosses it.
	stagingMaxAge = 24 * time.Hour
)

type Config struct {
	// Directory is the bpm home. The default cache root, the baked area
	// and the operation lock live under it.
	Directory string

	// CacheRoots overrides the cache search path. The first root is the
	// writable primary; later roots are read-through fallbacks, typically
	// site-shared mounts. Empty means <Directory>/bundle_cache.
	CacheRoots []string
	// BakedRoot overrides where baked snapshots live. Empty means
	// <Directory>/baked.
	BakedRoot string

	RegistryURL     string
	TrackerEndpoint string
	ForgeEndpoint   string
	Credentials     config.Credentials

	Fs afero.Fs
}

type BPM struct {
	fs        afero.Fs
	cache     *cache.Cache
	builder   descriptor.Builder
	resolver  *resolver.Resolver
	tracker   tracker.Client
	executor  workflow.Executor
	bakedRoot string
	lock      *fslock.Lock
}

func New(config Config) (*BPM, error) {
	if err := config.Fs.MkdirAll(config.Directory, 0o755); err != nil {
		return nil, err
	}

	roots := config.CacheRoots
	if len(roots) == 0 {
		roots = []string{filepath.Join(config.Directory, constant.CacheDirName)}
	}
	payloadCache, err := cache.New(cache.Config{
		Fs:    config.Fs,
		Roots: roots,
	})
	if err != nil {
		return nil, err
	}
	// Sweep scratch space left behind by runs that died mid-download.
	if err := payloadCache.PruneStaging(stagingMaxAge); err != nil {
		return nil, err
	}

	bakedRoot := config.BakedRoot
	if bakedRoot == "" {
		bakedRoot = filepath.Join(config.Directory, bakedDir)
	}

	fetchClient := fetch.NewClient()
	trackerClient := tracker.NewHttpClient(tracker.HttpClientConfig{
		Fetch:      fetchClient,
		Endpoint:   config.TrackerEndpoint,
		Credential: config.Credentials.Tracker,
	})
	forgeClient := forge.NewHttpClient(forge.HttpClientConfig{
		Fetch:      fetchClient,
		Endpoint:   config.ForgeEndpoint,
		Credential: config.Credentials.Forge,
	})

	builder := descriptor.NewFactory(descriptor.FactoryConfig{
		Fs:            config.Fs,
		Cache:         payloadCache,
		Fetch:         fetchClient,
		Git:           git.RepositoryFactory{},
		Tracker:       trackerClient,
		Forge:         forgeClient,
		RegistryURL:   config.RegistryURL,
		GitCredential: config.Credentials.Git,
		BakedRoot:     bakedRoot,
	})

	return &BPM{
		fs:      config.Fs,
		cache:   payloadCache,
		builder: builder,
		resolver: resolver.New(resolver.Config{
			Tracker: trackerClient,
			Builder: builder,
		}),
		tracker:   trackerClient,
		executor:  engine.NewWorkflowEngine(),
		bakedRoot: bakedRoot,
		lock:      fslock.New(filepath.Join(config.Directory, lockFile)),
	}, nil
}

// Builder exposes the descriptor factory, for callers that work with
// descriptor URIs directly.
func (b *BPM) Builder() descriptor.Builder {
	return b.builder
}

// Resolve answers which configuration applies to the request, without
// touching any checkout.
func (b *BPM) Resolve(ctx context.Context, request resolver.Request) (resolver.Resolution, error) {
	return b.resolver.Resolve(ctx, request)
}

// Status reports how the checkout at root relates to the current
// resolution. When nothing resolves at all, the checkout is judged against
// no descriptor: an existing deployment then reads as Different.
func (b *BPM) Status(ctx context.Context, root string, request resolver.Request) (deployment.Status, error) {
	checkout := deployment.New(b.fs, root)

	resolution, err := b.resolver.Resolve(ctx, request)
	if errors.Is(err, resolver.ErrConfigurationNotFound) {
		return checkout.Status(nil), nil
	}
	if err != nil {
		return deployment.Invalid, err
	}
	return checkout.Status(resolution.Descriptor), nil
}

// Update deploys the current resolution into the checkout at root.
func (b *BPM) Update(ctx context.Context, root string, request resolver.Request) error {
	resolution, err := b.resolver.Resolve(ctx, request)
	if err != nil {
		return err
	}
	return b.update(ctx, root, resolution, request.PluginID)
}

// Ensure is an idempotent Update: a checkout that already matches the
// resolution is left untouched.
func (b *BPM) Ensure(ctx context.Context, root string, request resolver.Request) error {
	resolution, err := b.resolver.Resolve(ctx, request)
	if err != nil {
		return err
	}

	checkout := deployment.New(b.fs, root)
	if checkout.Status(resolution.Descriptor) == deployment.UpToDate {
		fmt.Printf("%s is already up to date.\n", root)
		return nil
	}
	return b.update(ctx, root, resolution, request.PluginID)
}

func (b *BPM) update(ctx context.Context, root string, resolution resolver.Resolution, pluginID string) error {
	if err := b.verifyScope(ctx, resolution.Candidate); err != nil {
		return err
	}

	if err := b.lock.TryLock(); err != nil {
		return err
	}
	defer func() {
		_ = b.lock.Unlock()
	}()

	wf := workflow.NewUpdateConfiguration(workflow.UpdateConfigurationConfig{
		Checkout: deployment.New(b.fs, root),
		Resolved: resolution.Descriptor,
		PluginID: pluginID,
		Builder:  b.builder,
		Executor: b.executor,
		Fs:       b.fs,
	})
	return b.executor.Execute(ctx, wf)
}

// verifyScope refuses to deploy for a project whose record is unusable.
// Site-scoped and fallback resolutions have no project to verify.
func (b *BPM) verifyScope(ctx context.Context, candidate *tracker.PipelineConfiguration) error {
	if candidate == nil || candidate.Project == nil {
		return nil
	}
	project, err := b.tracker.GetProject(ctx, candidate.Project.ID)
	if err != nil {
		return err
	}
	return deployment.VerifyProject(project)
}

// Bake freezes the current resolution and its required frameworks into a
// timestamped snapshot under the baked area, and returns its descriptor.
func (b *BPM) Bake(ctx context.Context, name string, request resolver.Request) (descriptor.Descriptor, error) {
	if err := b.lock.TryLock(); err != nil {
		return nil, err
	}
	defer func() {
		_ = b.lock.Unlock()
	}()

	resolution, err := b.resolver.Resolve(ctx, request)
	if err != nil {
		return nil, err
	}

	bake := workflow.NewBake(workflow.BakeConfig{
		Resolved: resolution.Descriptor,
		Name:     name,
		Builder:  b.builder,
		Fs:       b.fs,
	})
	if err := b.executor.Execute(ctx, bake); err != nil {
		return nil, err
	}
	return bake.Baked(), nil
}

// CacheSizes measures every reachable cache root, in search order.
func (b *BPM) CacheSizes() ([]cache.Usage, error) {
	return b.cache.Sizes()
}

// Paths describes where this instance keeps its artifacts.
type Paths struct {
	CacheRoots []string
	BakedRoot  string
}

func (b *BPM) Paths() Paths {
	return Paths{
		CacheRoots: b.cache.Roots(),
		BakedRoot:  b.bakedRoot,
	}
}
