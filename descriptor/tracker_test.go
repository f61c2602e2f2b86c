// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/bpm/tracker"
)

func TestTrackerFindLatest(t *testing.T) {
	factory, mocks := newTestFactory(t, afero.NewMemMapFs(), "root")
	mocks.tracker.EXPECT().
		FindBundleVersions(gomock.Any(), "core-hooks").
		Return([]tracker.BundleVersion{
			{ID: 11, Code: "v2.0.0", BundleName: "core-hooks"},
			{ID: 12, Code: "v2.1.0", BundleName: "core-hooks"},
			{ID: 13, Code: "v2.0.5", BundleName: "core-hooks"},
		}, nil)

	d, err := factory.NewFromSpec(Spec{"type": "tracker", "name": "core-hooks", "version": "v2.x.x"})
	require.NoError(t, err)

	pinned, err := d.FindLatest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", pinned.Version())
}

func TestTrackerFindLatestNoRecords(t *testing.T) {
	factory, mocks := newTestFactory(t, afero.NewMemMapFs(), "root")
	mocks.tracker.EXPECT().
		FindBundleVersions(gomock.Any(), "core-hooks").
		Return(nil, tracker.ErrNoMatch)

	d, err := factory.NewFromSpec(Spec{"type": "tracker", "name": "core-hooks", "version": "v2.x.x"})
	require.NoError(t, err)

	_, err = d.FindLatest(context.Background(), "")
	assert.ErrorIs(t, err, tracker.ErrNoMatch)
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
}

func TestTrackerEnsureLocalDownloadsAttachment(t *testing.T) {
	fs := afero.NewOsFs()
	root := t.TempDir()
	factory, mocks := newTestFactory(t, fs, root)

	tarball, _ := payloadTarball(t, "core-hooks")
	payload := tracker.Attachment{
		ID:   301,
		Name: "bundle.tar.gz",
		URL:  "https://tracker.example.com/file_serve/attachment/301",
	}
	mocks.tracker.EXPECT().
		GetBundleVersion(gomock.Any(), "core-hooks", "v2.1.0").
		Return(tracker.BundleVersion{ID: 12, Code: "v2.1.0", BundleName: "core-hooks", Payload: payload}, nil)
	mocks.tracker.EXPECT().
		DownloadAttachment(gomock.Any(), payload, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ tracker.Attachment, path string) error {
			return afero.WriteFile(fs, path, tarball, 0o644)
		})

	d, err := factory.NewFromSpec(Spec{"type": "tracker", "name": "core-hooks", "version": "v2.1.0"})
	require.NoError(t, err)

	path, err := d.EnsureLocal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cache", "tracker", "core-hooks", "v2.1.0"), path)

	content, err := afero.ReadFile(fs, filepath.Join(path, "bundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "id: core-hooks", string(content))
}

func TestTrackerFindLatestLocal(t *testing.T) {
	fs := afero.NewOsFs()
	root := t.TempDir()
	factory, _ := newTestFactory(t, fs, root)

	for _, v := range []string{"v2.0.0", "v2.1.0"} {
		require.NoError(t, fs.MkdirAll(filepath.Join(root, "cache", "tracker", "core-hooks", v), 0o755))
	}

	d, err := factory.NewFromSpec(Spec{"type": "tracker", "name": "core-hooks", "version": "v2.x.x"})
	require.NoError(t, err)

	// Purely offline: no tracker expectation is registered, so any call
	// would fail the test.
	pinned, err := d.FindLatestLocal("")
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", pinned.Version())
}
