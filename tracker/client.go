// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/fetch"
)

// ErrNoMatch marks a search that came back empty where exactly one record
// was required.
var ErrNoMatch = errors.New("no matching tracker entity")

var _ Client = &HttpClient{}

// Client is what the rest of the toolkit sees of the pipeline tracker. Any
// error it returns means the tracker could not answer; callers decide
// whether to fail or to fall back to cached state.
type Client interface {
	// FindPipelineConfigurations returns the configurations matching
	// filters, most recently updated first.
	FindPipelineConfigurations(ctx context.Context, filters []Filter) ([]PipelineConfiguration, error)
	// FindBundleVersions lists every released version of the named bundle.
	FindBundleVersions(ctx context.Context, bundleName string) ([]BundleVersion, error)
	// GetBundleVersion returns the single release of bundleName whose code
	// equals version, or ErrNoMatch.
	GetBundleVersion(ctx context.Context, bundleName string, version string) (BundleVersion, error)
	// GetProject returns the project record with the given id.
	GetProject(ctx context.Context, id int) (Project, error)
	// FindUser resolves a login to its user entity, or ErrNoMatch.
	FindUser(ctx context.Context, login string) (EntityRef, error)
	// DownloadAttachment fetches an attachment payload into path.
	DownloadAttachment(ctx context.Context, attachment Attachment, path string) error
	// Ping reports whether the tracker answers at all. Fails closed on
	// any transport error.
	Ping(ctx context.Context) bool
}

type HttpClientConfig struct {
	Fetch      fetch.Client
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
		endpoint:   config.Endpoint,
		credential: config.Credential,
	}
}

type searchRequest struct {
	Filters []Filter `json:"filters"`
	Fields  []string `json:"fields"`
	Sort    []string `json:"sort,omitempty"`
}

type searchResponse struct {
	Data []map[string]interface{} `json:"data"`
}

func (c *HttpClient) FindPipelineConfigurations(ctx context.Context, filters []Filter) ([]PipelineConfiguration, error) {
	var configurations []PipelineConfiguration
	err := c.search(ctx, EntityPipelineConfiguration, searchRequest{
		Filters: filters,
		Fields: []string{
			"code", "project", "plugin_ids", "users", "updated_at",
			"descriptor", "windows_path", "mac_path", "linux_path",
		},
		Sort: []string{"-updated_at"},
	}, &configurations)
	return configurations, err
}

func (c *HttpClient) FindBundleVersions(ctx context.Context, bundleName string) ([]BundleVersion, error) {
	var versions []BundleVersion
	err := c.search(ctx, EntityBundleVersion, searchRequest{
		Filters: []Filter{{Field: "bundle_name", Relation: "is", Value: bundleName}},
		Fields:  []string{"code", "bundle_name", "payload"},
	}, &versions)
	return versions, err
}

func (c *HttpClient) GetBundleVersion(ctx context.Context, bundleName string, version string) (BundleVersion, error) {
	var versions []BundleVersion
	err := c.search(ctx, EntityBundleVersion, searchRequest{
		Filters: []Filter{
			{Field: "bundle_name", Relation: "is", Value: bundleName},
			{Field: "code", Relation: "is", Value: version},
		},
		Fields: []string{"code", "bundle_name", "payload"},
	}, &versions)
	if err != nil {
		return BundleVersion{}, err
	}
	if len(versions) == 0 {
		return BundleVersion{}, fmt.Errorf("%w: %s %s of %s", ErrNoMatch, EntityBundleVersion, version, bundleName)
	}
	return versions[0], nil
}

func (c *HttpClient) GetProject(ctx context.Context, id int) (Project, error) {
	var projects []Project
	err := c.search(ctx, EntityProject, searchRequest{
		Filters: []Filter{{Field: "id", Relation: "is", Value: id}},
		Fields:  []string{"name", "disk_name", "archived"},
	}, &projects)
	if err != nil {
		return Project{}, err
	}
	if len(projects) == 0 {
		return Project{}, fmt.Errorf("%w: %s %d", ErrNoMatch, EntityProject, id)
	}
	return projects[0], nil
}

func (c *HttpClient) FindUser(ctx context.Context, login string) (EntityRef, error) {
	var users []struct {
		ID    int    `mapstructure:"id"`
		Login string `mapstructure:"login"`
	}
	err := c.search(ctx, EntityHumanUser, searchRequest{
		Filters: []Filter{{Field: "login", Relation: "is", Value: login}},
		Fields:  []string{"login"},
	}, &users)
	if err != nil {
		return EntityRef{}, err
	}
	if len(users) == 0 {
		return EntityRef{}, fmt.Errorf("%w: %s %s", ErrNoMatch, EntityHumanUser, login)
	}
	return EntityRef{Type: EntityHumanUser, ID: users[0].ID, Name: users[0].Login}, nil
}

func (c *HttpClient) DownloadAttachment(ctx context.Context, attachment Attachment, path string) error {
	if attachment.URL == "" {
		return fmt.Errorf("attachment %d (%s) has no download url", attachment.ID, attachment.Name)
	}
	return c.fetch.Download(ctx, attachment.URL, path, c.header())
}

func (c *HttpClient) Ping(ctx context.Context) bool {
	return c.fetch.Probe(ctx, fmt.Sprintf("%s/api/v1", c.endpoint), c.header())
}

func (c *HttpClient) search(ctx context.Context, entityType string, request searchRequest, out interface{}) error {
	url := fmt.Sprintf("%s/api/v1/entity/%s/_search", c.endpoint, entityType)

	response := searchResponse{}
	if err := c.fetch.PostJSON(ctx, url, c.header(), request, &response); err != nil {
		return fmt.Errorf("tracker search for %s failed: %w", entityType, err)
	}
	return decodeRecords(response.Data, out)
}

func (c *HttpClient) header() http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.credential.Token)
	return header
}

// decodeRecords maps raw search records onto a typed slice. Unknown fields
// are ignored: the tracker is free to grow its schema under us.
func decodeRecords(records []map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(records); err != nil {
		return fmt.Errorf("failed to decode tracker records: %w", err)
	}
	return nil
}
