// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "payload/bundle.yaml", []byte(`
id: maya-tools
name: Maya Tools
kind: app
version: v2.1.0
maintainers:
  - pipeline-team
frameworks:
  - name: core-python
    descriptor: "bpm:descriptor:registry?name=core-python&version=v3.x.x"
  - name: qt-widgets
    spec:
      type: registry
      name: qt-widgets
      version: v5.1.0
environment:
  MAYA_MODULE_PATH: "{root}/modules"
`), 0o644))

	manifest, err := LoadManifest(fs, "payload")
	require.NoError(t, err)
	assert.Equal(t, "maya-tools", manifest.ID)
	assert.Equal(t, "app", manifest.Kind)
	assert.Equal(t, "v2.1.0", manifest.Version)
	require.Len(t, manifest.Frameworks, 2)
	assert.Equal(t, "core-python", manifest.Frameworks[0].Name)
	assert.Equal(t, "qt-widgets", manifest.Frameworks[1].Spec["name"])
	assert.Equal(t, "{root}/modules", manifest.Environment["MAYA_MODULE_PATH"])
}

func TestLoadManifestMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadManifest(fs, "payload")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadManifestRequiresID(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "payload/bundle.yaml", []byte("name: No ID"), 0o644))

	_, err := LoadManifest(fs, "payload")
	assert.Error(t, err)
}
