// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package git

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// listRetries bounds retries of remote listing. Clones are never retried:
// a failed clone leaves a partial directory behind and the caller stages
// into a fresh directory per attempt anyway.
const listRetries = 2

// ErrReferenceNotFound marks a reference that the remote does not
// advertise. Unlike a network failure, retrying or falling back to the
// cache will not help.
var ErrReferenceNotFound = errors.New("reference not found on remote")

var _ Factory = &RepositoryFactory{}

type Factory interface {
	// CloneAtRef clones the repository at url into path, checked out at
	// reference, and returns the commit hash of the resulting head.
	CloneAtRef(ctx context.Context, url string, path string, reference plumbing.ReferenceName, auth *http.BasicAuth) (string, error)
	// CloneAtCommit clones the branch at reference and checks out commit,
	// which must be reachable from it. Used when a branch tip was pinned
	// earlier and the branch may have moved since.
	CloneAtCommit(ctx context.Context, url string, path string, reference plumbing.ReferenceName, commit string, auth *http.BasicAuth) error
	// ListRemoteTags returns the short tag names advertised by the remote,
	// without cloning.
	ListRemoteTags(ctx context.Context, url string, auth *http.BasicAuth) ([]string, error)
	// RemoteHead returns the commit hash the remote advertises for
	// reference, without cloning.
	RemoteHead(ctx context.Context, url string, reference plumbing.ReferenceName, auth *http.BasicAuth) (string, error)
}

type RepositoryFactory struct{}

func (f RepositoryFactory) CloneAtRef(ctx context.Context, url string, path string, reference plumbing.ReferenceName, auth *http.BasicAuth) (string, error) {
	repo, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: reference,
		SingleBranch:  true,
		Auth:          auth,
		Progress:      io.Discard,
	})
	if err != nil {
		return "", fmt.Errorf("failed to clone %s at %s: %w", url, reference, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

func (f RepositoryFactory) CloneAtCommit(ctx context.Context, url string, path string, reference plumbing.ReferenceName, commit string, auth *http.BasicAuth) error {
	repo, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: reference,
		SingleBranch:  true,
		Auth:          auth,
		Progress:      io.Discard,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s at %s: %w", url, reference, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(commit)}); err != nil {
		return fmt.Errorf("failed to check out %s of %s: %w", commit, url, err)
	}
	return nil
}

func (f RepositoryFactory) ListRemoteTags(ctx context.Context, url string, auth *http.BasicAuth) ([]string, error) {
	refs, err := f.listRemote(ctx, url, auth)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}
	return tags, nil
}

func (f RepositoryFactory) RemoteHead(ctx context.Context, url string, reference plumbing.ReferenceName, auth *http.BasicAuth) (string, error) {
	refs, err := f.listRemote(ctx, url, auth)
	if err != nil {
		return "", err
	}

	for _, ref := range refs {
		if ref.Name() == reference {
			return ref.Hash().String(), nil
		}
	}
	return "", fmt.Errorf("%w: %s has no %s", ErrReferenceNotFound, url, reference)
}

func (f RepositoryFactory) listRemote(ctx context.Context, url string, auth *http.BasicAuth) ([]*plumbing.Reference, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	var refs []*plumbing.Reference
	op := func() error {
		var err error
		refs, err = remote.ListContext(ctx, &git.ListOptions{Auth: auth})
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), listRetries), ctx)); err != nil {
		return nil, fmt.Errorf("failed to list references of %s: %w", url, err)
	}
	return refs, nil
}
