// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/fetch"
)

func newTestClient(endpoint string) *HttpClient {
	return NewHttpClient(HttpClientConfig{
		Fetch:      fetch.NewClient(),
		Endpoint:   endpoint,
		Credential: config.Credential{Login: "pipeline", Token: "sekrit"},
	})
}

func TestFindPipelineConfigurations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entity/PipelineConfiguration/_search", r.URL.Path)
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))

		var body struct {
			Filters [][]interface{} `json:"filters"`
			Fields  []string        `json:"fields"`
			Sort    []string        `json:"sort"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Filters, 1)
		assert.Equal(t, []interface{}{"project", "in", []interface{}{
			map[string]interface{}{"type": "Project", "id": float64(41)},
			nil,
		}}, body.Filters[0])
		assert.Contains(t, body.Fields, "plugin_ids")
		assert.Equal(t, []string{"-updated_at"}, body.Sort)

		w.Write([]byte(`{"data": [
			{
				"id": 7,
				"code": "Primary",
				"project": {"type": "Project", "id": 41, "name": "Ostrich"},
				"plugin_ids": "studio.*",
				"users": [],
				"updated_at": "2023-03-01T10:30:00Z",
				"descriptor": "bpm:descriptor:registry?name=pipeline-config&version=v1.2.3"
			},
			{
				"id": 9,
				"code": "dev-sandbox",
				"project": null,
				"plugin_ids": "*",
				"users": [{"type": "HumanUser", "id": 12, "name": "Sam Директор"}],
				"updated_at": "2023-02-01T08:00:00Z",
				"descriptor": "",
				"linux_path": "/home/sam/dev/config"
			},
			{
				"id": 11,
				"code": "vendor-pinned",
				"project": null,
				"plugin_ids": "*",
				"users": [],
				"updated_at": "2023-01-15T09:00:00Z",
				"descriptor": {"type": "manual", "name": "vendor-drop", "version": "v4.0.1"}
			}
		]}`))
	}))
	defer server.Close()

	filters := []Filter{{
		Field:    "project",
		Relation: "in",
		Value:    []interface{}{EntityRef{Type: EntityProject, ID: 41}, nil},
	}}
	configurations, err := newTestClient(server.URL).FindPipelineConfigurations(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, configurations, 3)

	primary := configurations[0]
	assert.Equal(t, 7, primary.ID)
	assert.Equal(t, "Primary", primary.Code)
	require.NotNil(t, primary.Project)
	assert.Equal(t, 41, primary.Project.ID)
	assert.Equal(t, "studio.*", primary.PluginIDs)
	assert.Equal(t, time.Date(2023, 3, 1, 10, 30, 0, 0, time.UTC), primary.UpdatedAt)
	assert.Equal(t, "bpm:descriptor:registry?name=pipeline-config&version=v1.2.3", primary.Descriptor)

	sandbox := configurations[1]
	assert.Nil(t, sandbox.Project)
	require.Len(t, sandbox.Users, 1)
	assert.Equal(t, 12, sandbox.Users[0].ID)
	assert.Equal(t, "/home/sam/dev/config", sandbox.LinuxPath)

	// Records written with the dict form come through as a dict.
	vendor := configurations[2]
	assert.Equal(t, map[string]interface{}{
		"type":    "manual",
		"name":    "vendor-drop",
		"version": "v4.0.1",
	}, vendor.Descriptor)
}

func TestGetBundleVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entity/BundleVersion/_search", r.URL.Path)
		w.Write([]byte(`{"data": [
			{
				"id": 55,
				"code": "v1.2.3",
				"bundle_name": "maya-tools",
				"payload": {
					"id": 901,
					"name": "bundle.tar.gz",
					"url": "https://tracker.example.com/file/901",
					"content_type": "application/gzip"
				}
			}
		]}`))
	}))
	defer server.Close()

	release, err := newTestClient(server.URL).GetBundleVersion(context.Background(), "maya-tools", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", release.Code)
	assert.Equal(t, "https://tracker.example.com/file/901", release.Payload.URL)
}

func TestGetBundleVersionNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetBundleVersion(context.Background(), "maya-tools", "v9.9.9")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entity/HumanUser/_search", r.URL.Path)
		w.Write([]byte(`{"data": [{"id": 12, "login": "sam"}]}`))
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).FindUser(context.Background(), "sam")
	require.NoError(t, err)
	assert.Equal(t, EntityRef{Type: EntityHumanUser, ID: 12, Name: "sam"}, user)
}

func TestGetProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 41, "name": "Ostrich", "disk_name": "ostrich", "archived": false}]}`))
	}))
	defer server.Close()

	project, err := newTestClient(server.URL).GetProject(context.Background(), 41)
	require.NoError(t, err)
	assert.Equal(t, "ostrich", project.DiskName)
	assert.False(t, project.Archived)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1", r.URL.Path)
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
	}))

	assert.True(t, newTestClient(server.URL).Ping(context.Background()))

	server.Close()
	assert.False(t, newTestClient(server.URL).Ping(context.Background()))
}
