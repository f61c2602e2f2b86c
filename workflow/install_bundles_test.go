// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/bpm/cache"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/fetch"
	"github.com/loomworks/bpm/forge"
	"github.com/loomworks/bpm/git"
	"github.com/loomworks/bpm/tracker"
	"github.com/loomworks/bpm/types"
)

// newBuilder wires a real descriptor factory over backend mocks with no
// expectations. Tests seed the cache by hand and use manual descriptors, so
// nothing here should ever touch a backend.
func newBuilder(t *testing.T, fs afero.Fs, root string) descriptor.Builder {
	t.Helper()

	ctrl := gomock.NewController(t)
	payloadCache, err := cache.New(cache.Config{
		Fs:    fs,
		Roots: []string{filepath.Join(root, "cache")},
	})
	require.NoError(t, err)

	return descriptor.NewFactory(descriptor.FactoryConfig{
		Fs:          fs,
		Cache:       payloadCache,
		Fetch:       fetch.NewMockClient(ctrl),
		Git:         git.NewMockFactory(ctrl),
		Tracker:     tracker.NewMockClient(ctrl),
		Forge:       forge.NewMockClient(ctrl),
		RegistryURL: "https://registry.example.com",
		BakedRoot:   filepath.Join(root, "baked"),
	})
}

// seedBundle drops a payload into the manual cache namespace the way an
// operator would.
func seedBundle(t *testing.T, fs afero.Fs, root string, name string, version string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(root, "cache", "manual", name, version)
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	for rel, contents := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(contents), 0o644))
	}
}

func TestInstallBundlesExecute(t *testing.T) {
	root := "/studio"

	tests := []struct {
		name     string
		manifest types.Manifest
		seed     func(t *testing.T, fs afero.Fs)
		wantErr  string
	}{
		{
			name:     "no frameworks required",
			manifest: types.Manifest{ID: "pipeline-config"},
		},
		{
			name: "framework by uri",
			manifest: types.Manifest{
				ID: "pipeline-config",
				Frameworks: []types.Framework{
					{Name: "core-hooks", Descriptor: "bpm:descriptor:manual?name=core-hooks&version=v2.0.0"},
				},
			},
			seed: func(t *testing.T, fs afero.Fs) {
				seedBundle(t, fs, root, "core-hooks", "v2.0.0", map[string]string{"hook.py": "pass"})
			},
		},
		{
			name: "framework by inline spec picks the newest match",
			manifest: types.Manifest{
				ID: "pipeline-config",
				Frameworks: []types.Framework{
					{
						Name: "maya-tools",
						Spec: map[string]interface{}{
							"type":    "manual",
							"name":    "maya-tools",
							"version": "v1.x.x",
						},
					},
				},
			},
			seed: func(t *testing.T, fs afero.Fs) {
				seedBundle(t, fs, root, "maya-tools", "v1.1.0", nil)
				seedBundle(t, fs, root, "maya-tools", "v1.2.0", nil)
			},
		},
		{
			name: "framework missing from the cache",
			manifest: types.Manifest{
				ID: "pipeline-config",
				Frameworks: []types.Framework{
					{Name: "core-hooks", Descriptor: "bpm:descriptor:manual?name=core-hooks&version=v2.0.0"},
				},
			},
			wantErr: "failed to install framework core-hooks",
		},
		{
			name: "framework entry without a location",
			manifest: types.Manifest{
				ID:         "pipeline-config",
				Frameworks: []types.Framework{{Name: "core-hooks"}},
			},
			wantErr: "names neither a descriptor nor a spec",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if test.seed != nil {
				test.seed(t, fs)
			}

			install := NewInstallBundles(InstallBundlesConfig{
				Manifest: test.manifest,
				Builder:  newBuilder(t, fs, root),
			})
			err := install.Execute(context.Background())

			if test.wantErr != "" {
				assert.ErrorContains(t, err, test.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
