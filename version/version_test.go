// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatest(t *testing.T) {
	tags := []string{"v1.2.3", "v1.2.233", "v1.3.1", "v2.3.1"}

	tests := []struct {
		name     string
		versions []string
		pattern  string
		want     string
		wantErr  error
	}{
		{
			name:     "no pattern picks the numeric max",
			versions: tags,
			pattern:  "",
			want:     "v2.3.1",
		},
		{
			name:     "wildcard constrains the pinned prefix",
			versions: tags,
			pattern:  "v1.2.x",
			want:     "v1.2.233",
		},
		{
			name:     "exact pattern returns itself",
			versions: tags,
			pattern:  "v1.2.3",
			want:     "v1.2.3",
		},
		{
			name:     "exact pattern missing from the list",
			versions: tags,
			pattern:  "v9.9.9",
			wantErr:  ErrVersionNotFound,
		},
		{
			name:     "wildcard with no match is empty, not an error",
			versions: tags,
			pattern:  "v5.x.x",
			want:     "",
		},
		{
			name:     "component pinned after a wildcard",
			versions: tags,
			pattern:  "v1.x.2",
			wantErr:  ErrInvalidPattern,
		},
		{
			name:     "numeric ordering beats lexical ordering",
			versions: []string{"v1.2.4", "v1.2.30"},
			pattern:  "",
			want:     "v1.2.30",
		},
		{
			name:     "unparsable tags are skipped",
			versions: []string{"release-2020", "v1.0.0", "nightly", "v0.9"},
			pattern:  "",
			want:     "v1.0.0",
		},
		{
			name:     "nothing parsable is empty, not an error",
			versions: []string{"release-2020", "nightly"},
			pattern:  "",
			want:     "",
		},
		{
			name:     "fork components extend a shorter release",
			versions: []string{"v1.2.1", "v1.2.1.5"},
			pattern:  "v1.2.x",
			want:     "v1.2.1.5",
		},
		{
			name:     "longer prefix-equal token wins",
			versions: []string{"v1.2", "v1.2.0"},
			pattern:  "",
			want:     "v1.2.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindLatest(tt.versions, tt.pattern)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindLatestIsOrderIndependent(t *testing.T) {
	permutations := [][]string{
		{"v1.2.3", "v1.2.233", "v1.3.1", "v2.3.1"},
		{"v2.3.1", "v1.3.1", "v1.2.233", "v1.2.3"},
		{"v1.3.1", "v2.3.1", "v1.2.3", "v1.2.233"},
		{"v1.2.233", "v1.2.3", "v2.3.1", "v1.3.1"},
	}
	for _, versions := range permutations {
		got, err := FindLatest(versions, "")
		require.NoError(t, err)
		assert.Equal(t, "v2.3.1", got)

		got, err = FindLatest(versions, "v1.x.x")
		require.NoError(t, err)
		assert.Equal(t, "v1.3.1", got)
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		exact   bool
		wantErr error
	}{
		{name: "empty is the no-op constraint", pattern: ""},
		{name: "fully pinned", pattern: "v1.2.3", exact: true},
		{name: "trailing wildcard", pattern: "v1.2.x"},
		{name: "double wildcard", pattern: "v1.x.x"},
		{name: "missing v prefix", pattern: "1.2.3", wantErr: ErrInvalidPattern},
		{name: "non-numeric component", pattern: "v1.beta.3", wantErr: ErrInvalidPattern},
		{name: "pin after wildcard", pattern: "v1.x.2", wantErr: ErrInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePattern(tt.pattern)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.exact, p.IsExact())
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "v1.2.3", b: "v1.2.3", want: 0},
		{name: "component order", a: "v1.2.4", b: "v1.2.30", want: -1},
		{name: "major beats minor", a: "v2.0.0", b: "v1.99.99", want: 1},
		{name: "prefix is smaller", a: "v1.2", b: "v1.2.0", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseToken(tt.a)
			require.NoError(t, err)
			b, err := ParseToken(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Compare(a, b))
		})
	}
}
