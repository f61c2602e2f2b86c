// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/tracker"
)

const deployedURI = "bpm:descriptor:registry?name=pipeline-config&version=v1.2.3"

func stubDescriptor(t *testing.T, uri string, mutable bool) descriptor.Descriptor {
	ctrl := gomock.NewController(t)
	d := descriptor.NewMockDescriptor(ctrl)
	d.EXPECT().URI().Return(uri).AnyTimes()
	d.EXPECT().Mutable().Return(mutable).AnyTimes()
	return d
}

func writeRecord(t *testing.T, fs afero.Fs, root string, contents string) {
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "config", "deploy.yaml"), []byte(contents), 0o644))
}

func TestStatus(t *testing.T) {
	root := filepath.Join("/studio", "eclipse", "pipeline")

	tests := []struct {
		name    string
		setup   func(t *testing.T, fs afero.Fs, checkout *Checkout)
		mutable bool
		want    Status
	}{
		{
			name:  "no checkout directory",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {},
			want:  Missing,
		},
		{
			name: "directory without record",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				require.NoError(t, fs.MkdirAll(root, 0o755))
			},
			want: Invalid,
		},
		{
			name: "interrupted update overrides a valid record",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				require.NoError(t, checkout.CompleteUpdate(Record{Descriptor: deployedURI}))
				require.NoError(t, checkout.BeginUpdate())
			},
			want: Invalid,
		},
		{
			name: "unreadable record",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				writeRecord(t, fs, root, "{{{ not yaml")
			},
			want: Invalid,
		},
		{
			name: "record without a descriptor",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				writeRecord(t, fs, root, "generation: 2\nplugin_id: maya\n")
			},
			want: Invalid,
		},
		{
			name: "older generation",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				writeRecord(t, fs, root, "descriptor: "+deployedURI+"\ngeneration: 1\n")
			},
			want: Different,
		},
		{
			name: "resolution moved to another descriptor",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				require.NoError(t, checkout.CompleteUpdate(Record{
					Descriptor: "bpm:descriptor:registry?name=pipeline-config&version=v1.1.0",
				}))
			},
			want: Different,
		},
		{
			name: "mutable descriptor can never be up to date",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				require.NoError(t, checkout.CompleteUpdate(Record{Descriptor: deployedURI}))
			},
			mutable: true,
			want:    Different,
		},
		{
			name: "record matches the current resolution",
			setup: func(t *testing.T, fs afero.Fs, checkout *Checkout) {
				require.NoError(t, checkout.CompleteUpdate(Record{Descriptor: deployedURI}))
			},
			want: UpToDate,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			checkout := New(fs, root)
			test.setup(t, fs, checkout)

			current := stubDescriptor(t, deployedURI, test.mutable)
			assert.Equal(t, test.want, checkout.Status(current))
		})
	}
}

func TestUpdateProtocol(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := filepath.Join("/studio", "eclipse", "pipeline")
	checkout := New(fs, root)
	current := stubDescriptor(t, deployedURI, false)

	require.NoError(t, checkout.BeginUpdate())

	inProgress, err := checkout.UpdateInProgress()
	require.NoError(t, err)
	assert.True(t, inProgress)
	assert.Equal(t, Invalid, checkout.Status(current))

	require.NoError(t, checkout.CompleteUpdate(Record{
		Descriptor: deployedURI,
		PluginID:   "maya",
	}))

	inProgress, err = checkout.UpdateInProgress()
	require.NoError(t, err)
	assert.False(t, inProgress)
	assert.Equal(t, UpToDate, checkout.Status(current))

	record, err := checkout.Read()
	require.NoError(t, err)
	assert.Equal(t, deployedURI, record.Descriptor)
	assert.Equal(t, constant.DeployGeneration, record.Generation)
	assert.Equal(t, "maya", record.PluginID)
	assert.False(t, record.WrittenAt.IsZero())
}

func TestRequireValid(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := filepath.Join("/studio", "eclipse", "pipeline")
	checkout := New(fs, root)
	current := stubDescriptor(t, deployedURI, false)

	// A checkout that never existed is recoverable, not corrupt.
	assert.NoError(t, checkout.RequireValid(current))

	require.NoError(t, checkout.BeginUpdate())
	assert.ErrorIs(t, checkout.RequireValid(current), ErrDeploymentCorrupt)

	require.NoError(t, checkout.CompleteUpdate(Record{Descriptor: deployedURI}))
	assert.NoError(t, checkout.RequireValid(current))

	// Different is also recoverable by an ordinary update.
	stale := stubDescriptor(t, "bpm:descriptor:registry?name=pipeline-config&version=v2.0.0", false)
	assert.Equal(t, Different, checkout.Status(stale))
	assert.NoError(t, checkout.RequireValid(stale))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "MISSING", Missing.String())
	assert.Equal(t, "INVALID", Invalid.String())
	assert.Equal(t, "DIFFERENT", Different.String())
	assert.Equal(t, "UP_TO_DATE", UpToDate.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}

func TestVerifyProject(t *testing.T) {
	assert.NoError(t, VerifyProject(tracker.Project{
		ID:       65,
		Name:     "Eclipse",
		DiskName: "eclipse",
	}))

	err := VerifyProject(tracker.Project{ID: 65, Name: "Eclipse"})
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "Eclipse")
}
