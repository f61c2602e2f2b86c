// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIRoundTrip(t *testing.T) {
	uris := []string{
		"bpm:descriptor:registry?name=maya-tools&version=v1.2.3",
		"bpm:descriptor:tracker?name=review-tools&version=v2.0.0",
		"bpm:descriptor:git_tag?repository=https%3A%2F%2Fgit.example.com%2Fpipe%2Fmaya-tools.git&version=v1.2.3",
		"bpm:descriptor:git_branch?branch=main&repository=https%3A%2F%2Fgit.example.com%2Fpipe%2Fmaya-tools.git",
		"bpm:descriptor:forge?organization=loomworks&repository=maya-tools&version=v1.2.3",
		"bpm:descriptor:manual?name=vendor-drop&version=v4.0.1",
		"bpm:descriptor:dev?branch=wip%2Frig-tools&repository=https%3A%2F%2Fgit.example.com%2Fpipe%2Frig.git",
		"bpm:descriptor:path?linux_path=%2Fhome%2Fsam%2Fdev%2Fconfig",
		"bpm:descriptor:baked?name=pipeline-config&version=20230301.103000",
	}
	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			spec, err := ParseURI(uri)
			require.NoError(t, err)
			assert.Equal(t, uri, spec.URI())

			// And again through the dict form.
			again, err := ParseURI(spec.URI())
			require.NoError(t, err)
			assert.Equal(t, spec, again)
		})
	}
}

func TestURIIsCanonical(t *testing.T) {
	// Field order and empty fields must not influence the URI.
	a := Spec{"type": "registry", "name": "maya-tools", "version": "v1.2.3"}
	b := Spec{"version": "v1.2.3", "type": "registry", "name": "maya-tools", "branch": ""}

	assert.Equal(t, a.URI(), b.URI())
	assert.Equal(t, "bpm:descriptor:registry?name=maya-tools&version=v1.2.3", a.URI())
}

func TestParseURIErrors(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "wrong scheme", uri: "sgtk:descriptor:registry?name=x"},
		{name: "no type", uri: "bpm:descriptor:?name=x"},
		{name: "repeated field", uri: "bpm:descriptor:registry?name=a&name=b"},
		{name: "type in query", uri: "bpm:descriptor:registry?type=tracker&name=a"},
		{name: "bad escape", uri: "bpm:descriptor:registry?name=%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURI(tt.uri)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
}

func TestParseDict(t *testing.T) {
	spec, err := ParseDict(map[string]interface{}{
		"type":    "registry",
		"name":    "maya-tools",
		"version": "v1.2.3",
	})
	require.NoError(t, err)
	assert.Equal(t, Spec{"type": "registry", "name": "maya-tools", "version": "v1.2.3"}, spec)

	_, err = ParseDict(map[string]interface{}{"name": "maya-tools"})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	_, err = ParseDict(map[string]interface{}{
		"type": "registry",
		"name": map[string]interface{}{"nested": true},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestSpecWithDoesNotMutate(t *testing.T) {
	spec := Spec{"type": "registry", "name": "maya-tools", "version": "v1.x.x"}
	pinned := spec.With("version", "v1.2.3")

	assert.Equal(t, "v1.x.x", spec["version"])
	assert.Equal(t, "v1.2.3", pinned["version"])
}
