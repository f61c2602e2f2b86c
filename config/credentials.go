// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Credential authenticates against a remote backend. The tracker and forge
// use Token; git remotes over https use Login+Token as basic auth.
type Credential struct {
	Login string `yaml:"login"`
	Token string `yaml:"token"`
}

// Empty reports whether there is nothing to authenticate with.
func (c Credential) Empty() bool {
	return c.Login == "" && c.Token == ""
}

// Credentials is the contents of the credentials file, one entry per
// backend. Backends with no entry are accessed anonymously.
type Credentials struct {
	Tracker Credential `yaml:"tracker"`
	Forge   Credential `yaml:"forge"`
	Git     Credential `yaml:"git"`
}

// LoadCredentials reads the credentials file at path. A missing file is not
// an error: everything runs anonymously then.
func LoadCredentials(fsys afero.Fs, path string) (Credentials, error) {
	raw, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}

	credentials := Credentials{}
	if err := yaml.Unmarshal(raw, &credentials); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	return credentials, nil
}
