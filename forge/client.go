// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/fetch"
)

// ErrNoPayload marks a release that carries no usable payload asset.
var ErrNoPayload = errors.New("release has no payload asset")

// Release is the slice of a forge release we care about.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// PayloadAsset picks the asset holding the bundle payload: the canonical
// bundle.tar.gz when present, otherwise the first tarball.
func (r Release) PayloadAsset() (Asset, error) {
	for _, asset := range r.Assets {
		if asset.Name == constant.PayloadAsset {
			return asset, nil
		}
	}
	for _, asset := range r.Assets {
		if strings.HasSuffix(asset.Name, ".tar.gz") {
			return asset, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s", ErrNoPayload, r.TagName)
}

var _ Client = &HttpClient{}

// Client talks to a GitHub-compatible release API.
type Client interface {
	// ListReleaseTags returns the tag names of the repository's releases.
	ListReleaseTags(ctx context.Context, organization string, repository string) ([]string, error)
	// GetRelease returns the release published under tag.
	GetRelease(ctx context.Context, organization string, repository string, tag string) (Release, error)
	// DownloadAsset fetches a release asset into path.
	DownloadAsset(ctx context.Context, asset Asset, path string) error
	// Ping reports whether the forge answers at all. Fails closed on any
	// transport error.
	Ping(ctx context.Context) bool
}

type HttpClientConfig struct {
	Fetch fetch.Client
	// Endpoint is the API base, e.g. https://api.github.com or a forge
	// appliance's /api/v3.
	Endpoint   string
	Credential config.Credential
}

type HttpClient struct {
	fetch      fetch.Client
	endpoint   string
	credential config.Credential
}

func NewHttpClient(config HttpClientConfig) *HttpClient {
	return &HttpClient{
		fetch:      config.Fetch,
		endpoint:   strings.TrimSuffix(config.Endpoint, "/"),
		credential: config.Credential,
	}
}

func (c *HttpClient) ListReleaseTags(ctx context.Context, organization string, repository string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=100", c.endpoint, organization, repository)

	var releases []Release
	if err := c.fetch.GetJSON(ctx, endpoint, c.header(), &releases); err != nil {
		return nil, fmt.Errorf("failed to list releases of %s/%s: %w", organization, repository, err)
	}

	tags := make([]string, 0, len(releases))
	for _, release := range releases {
		tags = append(tags, release.TagName)
	}
	return tags, nil
}

func (c *HttpClient) GetRelease(ctx context.Context, organization string, repository string, tag string) (Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.endpoint, organization, repository, url.PathEscape(tag))

	release := Release{}
	if err := c.fetch.GetJSON(ctx, endpoint, c.header(), &release); err != nil {
		return Release{}, fmt.Errorf("failed to get release %s of %s/%s: %w", tag, organization, repository, err)
	}
	return release, nil
}

func (c *HttpClient) DownloadAsset(ctx context.Context, asset Asset, path string) error {
	header := c.header()
	header.Set("Accept", "application/octet-stream")
	return c.fetch.Download(ctx, asset.BrowserDownloadURL, path, header)
}

func (c *HttpClient) Ping(ctx context.Context) bool {
	return c.fetch.Probe(ctx, c.endpoint, c.header())
}

func (c *HttpClient) header() http.Header {
	header := http.Header{}
	header.Set("Accept", "application/vnd.github+json")
	if c.credential.Token != "" {
		header.Set("Authorization", "Bearer "+c.credential.Token)
	}
	return header
}
