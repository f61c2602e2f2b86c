// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/loomworks/bpm/util"
)

var (
	_ Descriptor = &gitTagDescriptor{}
	_ Descriptor = &gitBranchDescriptor{}
	_ Descriptor = &devDescriptor{}
)

type gitSpec struct {
	Type       string `mapstructure:"type"`
	Kind       string `mapstructure:"kind"`
	Repository string `mapstructure:"repository"`
	Branch     string `mapstructure:"branch"`
	Version    string `mapstructure:"version"`
}

// gitSource is the plumbing the three git-backed kinds share. The cache
// space is common to all of them: entries are keyed by repository and
// commit-or-tag, so a dev descriptor and a pinned branch descriptor of the
// same commit share one payload.
type gitSource struct {
	base
	factory    *Factory
	repository string
	branch     string
}

func (s *gitSource) Local() bool {
	return false
}

func (s *gitSource) repoDir() string {
	return util.RepoDirName(s.repository)
}

func (s *gitSource) segments(ref string) []string {
	return []string{"git", s.repoDir(), util.SanitizeSegment(ref)}
}

func (s *gitSource) locate(ref string) (string, bool, error) {
	if !isPinned(ref) {
		return "", false, nil
	}
	return s.factory.cache.Locate(s.segments(ref)...)
}

// Reachable asks the remote for its tag list, the cheapest query that
// proves both that the host answers and that the repository exists.
func (s *gitSource) Reachable(ctx context.Context) bool {
	_, err := s.factory.git.ListRemoteTags(ctx, s.repository, s.factory.gitAuth)
	return err == nil
}

func (s *gitSource) findLatestCached(spec Spec, constraint string) (Descriptor, error) {
	cached, err := s.factory.cache.List("git", s.repoDir())
	if err != nil {
		return nil, err
	}
	return s.factory.pin(spec, cached, constraint, fmt.Sprintf("the cache for %s", s.repository))
}

// gitTagDescriptor is the working tree of a repository at a tag. Tags are
// treated as release versions: they are expected to be version tokens and
// resolved with the version matcher.
type gitTagDescriptor struct {
	gitSource
}

func (f *Factory) newGitTag(spec Spec) (Descriptor, error) {
	parsed := gitSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Repository == "" {
		return nil, fmt.Errorf("%w: repository", ErrMissingRequiredField)
	}
	if parsed.Branch != "" {
		return nil, fmt.Errorf("%w: branch has no meaning for %s descriptors", ErrInvalidSpec, GitTag)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &gitTagDescriptor{gitSource{
		base: base{
			typ:     GitTag,
			kind:    kind,
			name:    util.RepoDirName(parsed.Repository),
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory:    f,
		repository: parsed.Repository,
	}}, nil
}

func (d *gitTagDescriptor) Mutable() bool {
	return false
}

func (d *gitTagDescriptor) LocalPath() (string, bool, error) {
	return d.locate(d.version)
}

func (d *gitTagDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}
	if !isPinned(d.version) {
		return "", notPinned(d)
	}

	return d.factory.commitClone(d.segments(d.version), func(path string) error {
		_, err := d.factory.git.CloneAtRef(ctx, d.repository, path, plumbing.NewTagReferenceName(d.version), d.factory.gitAuth)
		return err
	})
}

func (d *gitTagDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	tags, err := d.factory.git.ListRemoteTags(ctx, d.repository, d.factory.gitAuth)
	if err != nil {
		return nil, asUnavailable(err)
	}
	return d.factory.pin(d.spec, tags, constraint, fmt.Sprintf("the tags of %s", d.repository))
}

func (d *gitTagDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if constraint == "" {
		constraint = d.version
	}
	return d.findLatestCached(d.spec, constraint)
}

// gitBranchDescriptor is the working tree of a repository at a branch,
// pinned to the commit the branch pointed at when it was resolved. Once
// pinned it is as immutable as a tag.
type gitBranchDescriptor struct {
	gitSource
}

func (f *Factory) newGitBranch(spec Spec) (Descriptor, error) {
	parsed := gitSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Repository == "" {
		return nil, fmt.Errorf("%w: repository", ErrMissingRequiredField)
	}
	if parsed.Branch == "" {
		return nil, fmt.Errorf("%w: branch", ErrMissingRequiredField)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &gitBranchDescriptor{gitSource{
		base: base{
			typ:  GitBranch,
			kind: kind,
			name: util.RepoDirName(parsed.Repository),
			// For branch descriptors the version is a commit hash, filled
			// in by FindLatest.
			version: parsed.Version,
			spec:    spec.Clone(),
		},
		factory:    f,
		repository: parsed.Repository,
		branch:     parsed.Branch,
	}}, nil
}

func (d *gitBranchDescriptor) Mutable() bool {
	return false
}

func (d *gitBranchDescriptor) LocalPath() (string, bool, error) {
	return d.locate(d.version)
}

func (d *gitBranchDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	path, ok, err := d.LocalPath()
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}
	if !isPinned(d.version) {
		return "", notPinned(d)
	}

	// The branch may have moved since this descriptor was pinned, so clone
	// the branch and check out the pinned commit rather than trusting the
	// tip.
	return d.factory.commitClone(d.segments(d.version), func(path string) error {
		return d.factory.git.CloneAtCommit(ctx, d.repository, path, plumbing.NewBranchReferenceName(d.branch), d.version, d.factory.gitAuth)
	})
}

func (d *gitBranchDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint != "" {
		return nil, fmt.Errorf("%w: %s descriptors resolve to the branch tip, not to a version constraint", ErrInvalidSpec, GitBranch)
	}

	commit, err := d.factory.git.RemoteHead(ctx, d.repository, plumbing.NewBranchReferenceName(d.branch), d.factory.gitAuth)
	if err != nil {
		return nil, asUnavailable(err)
	}
	return d.factory.NewFromSpec(d.spec.With("version", commit))
}

func (d *gitBranchDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	if isPinned(d.version) {
		return d, nil
	}
	return nil, fmt.Errorf("%w: cannot resolve the tip of %s %s offline", ErrBackendUnavailable, d.repository, d.branch)
}

// devDescriptor tracks the moving tip of a branch. It is the remote kind
// that stays mutable: its identity never pins a commit, and every
// resolution chases the tip again.
type devDescriptor struct {
	gitSource
}

func (f *Factory) newDev(spec Spec) (Descriptor, error) {
	parsed := gitSpec{}
	if err := decodeSpec(spec, &parsed); err != nil {
		return nil, err
	}
	if parsed.Repository == "" {
		return nil, fmt.Errorf("%w: repository", ErrMissingRequiredField)
	}
	if parsed.Branch == "" {
		return nil, fmt.Errorf("%w: branch", ErrMissingRequiredField)
	}
	if parsed.Version != "" {
		return nil, fmt.Errorf("%w: %s descriptors are never pinned; use %s to pin a branch", ErrInvalidSpec, Dev, GitBranch)
	}
	kind, err := ParseKind(parsed.Kind)
	if err != nil {
		return nil, err
	}

	return &devDescriptor{gitSource{
		base: base{
			typ:  Dev,
			kind: kind,
			name: util.RepoDirName(parsed.Repository),
			spec: spec.Clone(),
		},
		factory:    f,
		repository: parsed.Repository,
		branch:     parsed.Branch,
	}}, nil
}

func (d *devDescriptor) Mutable() bool {
	return true
}

// LocalPath always reports absent: which payload a dev descriptor means
// cannot be known without asking the remote for the branch tip.
func (d *devDescriptor) LocalPath() (string, bool, error) {
	return "", false, nil
}

func (d *devDescriptor) EnsureLocal(ctx context.Context) (string, error) {
	commit, err := d.factory.git.RemoteHead(ctx, d.repository, plumbing.NewBranchReferenceName(d.branch), d.factory.gitAuth)
	if err != nil {
		return "", asUnavailable(err)
	}

	// Tips are content-addressed into the shared git cache space, so a tip
	// we have seen before costs nothing.
	if path, ok, err := d.locate(commit); err != nil || ok {
		return path, err
	}

	return d.factory.commitClone(d.segments(commit), func(path string) error {
		return d.factory.git.CloneAtCommit(ctx, d.repository, path, plumbing.NewBranchReferenceName(d.branch), commit, d.factory.gitAuth)
	})
}

func (d *devDescriptor) FindLatest(ctx context.Context, constraint string) (Descriptor, error) {
	if constraint != "" {
		return nil, fmt.Errorf("%w: %s descriptors have no versions to constrain", ErrInvalidSpec, Dev)
	}
	return d, nil
}

func (d *devDescriptor) FindLatestLocal(constraint string) (Descriptor, error) {
	return d, nil
}
