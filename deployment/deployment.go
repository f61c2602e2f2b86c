// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/tracker"
)

var (
	// ErrDeploymentCorrupt is returned by RequireValid when the checkout
	// exists but its record cannot be trusted.
	ErrDeploymentCorrupt = errors.New("deployment record is corrupt")
	// ErrMissingRequiredField is returned when an entity lacks a field a
	// deployment depends on, such as a project's disk name.
	ErrMissingRequiredField = errors.New("missing required field")
)

const (
	recordFile = "deploy.yaml"
	markerFile = ".update_in_progress"
)

// Record is the deployment metadata written into a checkout once an
// update completes. The descriptor URI and generation together decide
// whether the checkout still matches a later resolution.
type Record struct {
	Descriptor string    `yaml:"descriptor"`
	Generation int       `yaml:"generation"`
	WrittenAt  time.Time `yaml:"written_at"`
	PluginID   string    `yaml:"plugin_id,omitempty"`
}

// Checkout is a deployed configuration directory on disk. All methods
// operate on the filesystem only; nothing here talks to the network.
type Checkout struct {
	fs   afero.Fs
	root string
}

func New(fs afero.Fs, root string) *Checkout {
	return &Checkout{
		fs:   fs,
		root: root,
	}
}

func (c *Checkout) Root() string {
	return c.root
}

func (c *Checkout) recordPath() string {
	return filepath.Join(c.root, "config", recordFile)
}

func (c *Checkout) markerPath() string {
	return filepath.Join(c.root, markerFile)
}

// Status compares the checkout against [current], the descriptor the
// resolver would deploy today. Absence and corruption are states, not
// errors, so callers can branch on the result directly.
func (c *Checkout) Status(current descriptor.Descriptor) Status {
	exists, err := afero.DirExists(c.fs, c.root)
	if err == nil && !exists {
		return Missing
	}
	if err != nil {
		return Invalid
	}
	if inProgress, err := afero.Exists(c.fs, c.markerPath()); err != nil || inProgress {
		return Invalid
	}
	record, err := c.Read()
	if err != nil {
		return Invalid
	}
	if record.Generation != constant.DeployGeneration {
		return Different
	}
	if current == nil || record.Descriptor != current.URI() || current.Mutable() {
		return Different
	}
	return UpToDate
}

// Read loads the deployment record. A missing or unparsable record is an
// error here; Status is the forgiving view.
func (c *Checkout) Read() (Record, error) {
	bytes, err := afero.ReadFile(c.fs, c.recordPath())
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := yaml.Unmarshal(bytes, &record); err != nil {
		return Record{}, err
	}
	if record.Descriptor == "" {
		return Record{}, fmt.Errorf("record at %s has no descriptor", c.recordPath())
	}
	return record, nil
}

// RequireValid returns ErrDeploymentCorrupt when Status reports Invalid.
// Missing and Different checkouts pass; they are recoverable by an
// ordinary update.
func (c *Checkout) RequireValid(current descriptor.Descriptor) error {
	if c.Status(current) == Invalid {
		return fmt.Errorf("%w: %s", ErrDeploymentCorrupt, c.root)
	}
	return nil
}

// BeginUpdate writes the transaction marker before any files change, so
// an interruption at any later point leaves the checkout Invalid rather
// than silently half-updated.
func (c *Checkout) BeginUpdate() error {
	if err := c.fs.MkdirAll(c.root, 0o755); err != nil {
		return err
	}
	stamp := time.Now().UTC().Format(time.RFC3339)
	return afero.WriteFile(c.fs, c.markerPath(), []byte(stamp+"\n"), 0o644)
}

// CompleteUpdate writes the record last and only then clears the marker.
// Until both succeed the checkout stays Invalid.
func (c *Checkout) CompleteUpdate(record Record) error {
	if record.WrittenAt.IsZero() {
		record.WrittenAt = time.Now().UTC()
	}
	record.Generation = constant.DeployGeneration

	bytes, err := yaml.Marshal(record)
	if err != nil {
		return err
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.recordPath()), 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(c.fs, c.recordPath(), bytes, 0o644); err != nil {
		return err
	}
	return c.fs.Remove(c.markerPath())
}

// UpdateInProgress reports whether a marker from an unfinished update is
// still present.
func (c *Checkout) UpdateInProgress() (bool, error) {
	return afero.Exists(c.fs, c.markerPath())
}

// VerifyProject checks the fields a project-scoped deployment needs
// before any directories are derived from them.
func VerifyProject(project tracker.Project) error {
	if project.DiskName == "" {
		return fmt.Errorf("%w: project %q (id %d) has no disk name", ErrMissingRequiredField, project.Name, project.ID)
	}
	return nil
}
