// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/loomworks/bpm/constant"
)

// Manifest is the bundle.yaml a bundle payload carries at its root. It is
// advisory metadata: deployment state never depends on it, but ensure-style
// workflows read Frameworks to pull in what a bundle needs to run.
type Manifest struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name,omitempty"`
	Kind        string      `yaml:"kind,omitempty"`
	Version     string      `yaml:"version,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Maintainers []string    `yaml:"maintainers,omitempty"`
	Frameworks  []Framework `yaml:"frameworks,omitempty"`

	// Core is the descriptor URI of the core implementation a
	// configuration payload wants active. Empty keeps the deployed one.
	Core string `yaml:"core,omitempty"`
	// MinCore is the oldest core version the bundle claims to work with.
	// Informational only.
	MinCore string `yaml:"min_core,omitempty"`

	Environment map[string]string `yaml:"environment,omitempty"`
}

// Framework names another bundle this one needs at runtime, located either
// by URI or by an inline spec dict. Resolution is shallow: the named
// bundle's own frameworks are not followed.
type Framework struct {
	Name       string                 `yaml:"name"`
	Descriptor string                 `yaml:"descriptor,omitempty"`
	Spec       map[string]interface{} `yaml:"spec,omitempty"`
}

// LoadManifest reads the manifest at the root of the payload directory dir.
// A payload without a manifest is legal; callers should treat a not-exist
// error as an empty manifest.
func LoadManifest(fs afero.Fs, dir string) (Manifest, error) {
	path := filepath.Join(dir, constant.ManifestFile)

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return Manifest{}, err
	}

	manifest := Manifest{}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if manifest.ID == "" {
		return Manifest{}, fmt.Errorf("%s is missing the id field", path)
	}
	return manifest, nil
}
