// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/loomworks/bpm/archive"
	"github.com/loomworks/bpm/cache"
	"github.com/loomworks/bpm/checksum"
	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/fetch"
	"github.com/loomworks/bpm/forge"
	"github.com/loomworks/bpm/git"
	"github.com/loomworks/bpm/tracker"
	"github.com/loomworks/bpm/version"
)

var _ Builder = &Factory{}

// Builder is the slice of Factory that consumers use to turn stored
// descriptor strings and dicts back into live descriptors.
type Builder interface {
	NewFromURI(uri string) (Descriptor, error)
	NewFromDict(raw map[string]interface{}) (Descriptor, error)
	NewFromSpec(spec Spec) (Descriptor, error)
}

type FactoryConfig struct {
	Fs      afero.Fs
	Cache   *cache.Cache
	Fetch   fetch.Client
	Git     git.Factory
	Tracker tracker.Client
	Forge   forge.Client
	// RegistryURL is the base URL of the studio bundle registry.
	RegistryURL string
	// GitCredential authenticates clones and ls-remotes of private
	// repositories over https.
	GitCredential config.Credential
	// BakedRoot is the directory baked snapshots live under.
	BakedRoot string
}

// Factory builds descriptors with all backend clients injected, so that
// descriptors themselves stay plain values.
type Factory struct {
	fs          afero.Fs
	cache       *cache.Cache
	fetch       fetch.Client
	git         git.Factory
	tracker     tracker.Client
	forge       forge.Client
	checksummer checksum.Checksummer
	registryURL string
	gitAuth     *githttp.BasicAuth
	bakedRoot   string
}

func NewFactory(config FactoryConfig) *Factory {
	var gitAuth *githttp.BasicAuth
	if !config.GitCredential.Empty() {
		gitAuth = &githttp.BasicAuth{
			Username: config.GitCredential.Login,
			Password: config.GitCredential.Token,
		}
	}

	return &Factory{
		fs:          config.Fs,
		cache:       config.Cache,
		fetch:       config.Fetch,
		git:         config.Git,
		tracker:     config.Tracker,
		forge:       config.Forge,
		checksummer: checksum.NewSHA256(config.Fs),
		registryURL: config.RegistryURL,
		gitAuth:     gitAuth,
		bakedRoot:   config.BakedRoot,
	}
}

func (f *Factory) NewFromURI(uri string) (Descriptor, error) {
	spec, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return f.NewFromSpec(spec)
}

func (f *Factory) NewFromDict(raw map[string]interface{}) (Descriptor, error) {
	spec, err := ParseDict(raw)
	if err != nil {
		return nil, err
	}
	return f.NewFromSpec(spec)
}

func (f *Factory) NewFromSpec(spec Spec) (Descriptor, error) {
	switch spec.Type() {
	case Registry:
		return f.newRegistry(spec)
	case Tracker:
		return f.newTracker(spec)
	case GitTag:
		return f.newGitTag(spec)
	case GitBranch:
		return f.newGitBranch(spec)
	case Forge:
		return f.newForge(spec)
	case Manual:
		return f.newManual(spec)
	case Dev:
		return f.newDev(spec)
	case Path:
		return f.newPath(spec)
	case Baked:
		return f.newBaked(spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type())
	}
}

// pin narrows spec to the best candidate version satisfying constraint.
// An empty result from the matcher means nothing satisfied the constraint,
// which at this level is an error naming the source searched.
func (f *Factory) pin(spec Spec, candidates []string, constraint string, source string) (Descriptor, error) {
	choice, err := version.FindLatest(candidates, constraint)
	if err != nil {
		return nil, err
	}
	if choice == "" {
		return nil, fmt.Errorf("%w: no version in %s satisfies %q", version.ErrVersionNotFound, source, constraint)
	}
	return f.NewFromSpec(spec.With("version", choice))
}

// commitArchive downloads a payload tarball via download, verifies its
// digest when one is known, unpacks it, and commits the result under
// segments. Both scratch areas live in the cache's staging space.
func (f *Factory) commitArchive(segments []string, sha256 string, download func(archivePath string) error) (string, error) {
	scratch, err := f.cache.StagingDir()
	if err != nil {
		return "", err
	}
	defer f.cache.Discard(scratch)

	archivePath := filepath.Join(scratch, constant.PayloadAsset)
	if err := download(archivePath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if sha256 != "" {
		digest, err := f.checksummer.Checksum(archivePath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
		}
		if digest != sha256 {
			return "", fmt.Errorf("%w: checksum mismatch: got %s, want %s", ErrDownloadFailed, digest, sha256)
		}
	}

	staging, err := f.cache.StagingDir()
	if err != nil {
		return "", err
	}
	if err := archive.Unpack(f.fs, archivePath, staging); err != nil {
		_ = f.cache.Discard(staging)
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return f.cache.Commit(staging, segments...)
}

// commitClone clones a working tree via clone, strips the repository
// metadata, and commits the result under segments.
func (f *Factory) commitClone(segments []string, clone func(path string) error) (string, error) {
	staging, err := f.cache.StagingDir()
	if err != nil {
		return "", err
	}
	if err := clone(staging); err != nil {
		_ = f.cache.Discard(staging)
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if err := f.fs.RemoveAll(filepath.Join(staging, ".git")); err != nil {
		_ = f.cache.Discard(staging)
		return "", err
	}
	return f.cache.Commit(staging, segments...)
}

// decodeSpec maps a spec onto a variant's typed field struct. Unknown
// fields are an error: a misspelled field name silently changing meaning is
// exactly the failure mode this guards against.
func decodeSpec(spec Spec, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]string(spec)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return nil
}

// isPinned reports whether v names one exact payload version rather than a
// constraint pattern or nothing.
func isPinned(v string) bool {
	if v == "" {
		return false
	}
	if p, err := version.ParsePattern(v); err == nil && !p.IsExact() {
		return false
	}
	return true
}

func notPinned(d Descriptor) error {
	return fmt.Errorf("%w: version (%s is not pinned; resolve it first)", ErrMissingRequiredField, d.URI())
}

// Pinned reports whether d identifies one exact immutable payload, with
// nothing left to resolve against any backend.
func Pinned(d Descriptor) bool {
	return d != nil && !d.Mutable() && isPinned(d.Version())
}

// asUnavailable classifies err. Transport-level failures become
// ErrBackendUnavailable so callers holding cached state can fall back;
// definite answers from a healthy backend pass through untouched.
func asUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fetch.ErrNotFound) ||
		errors.Is(err, version.ErrInvalidPattern) ||
		errors.Is(err, version.ErrVersionNotFound) ||
		errors.Is(err, tracker.ErrNoMatch) ||
		errors.Is(err, git.ErrReferenceNotFound) ||
		errors.Is(err, forge.ErrNoPayload) ||
		errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}
