package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityRef(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantType string
		wantID   int
		wantErr  bool
	}{
		{
			name:     "project reference",
			ref:      "Project:65",
			wantType: "Project",
			wantID:   65,
		},
		{
			name:     "user reference",
			ref:      "HumanUser:7",
			wantType: "HumanUser",
			wantID:   7,
		},
		{
			name:    "missing delimiter",
			ref:     "Project65",
			wantErr: true,
		},
		{
			name:    "non-numeric id",
			ref:     "Project:sixty-five",
			wantErr: true,
		},
		{
			name:    "too many segments",
			ref:     "Project:65:extra",
			wantErr: true,
		},
		{
			name:    "empty",
			ref:     "",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			entityType, id, err := ParseEntityRef(test.ref)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantType, entityType)
			assert.Equal(t, test.wantID, id)
		})
	}
}

func TestRepoDirName(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "https with .git suffix",
			uri:  "https://example.com/studio/tk-config.git",
			want: "tk-config",
		},
		{
			name: "trailing slash",
			uri:  "https://example.com/studio/tk-config/",
			want: "tk-config",
		},
		{
			name: "scp style remote",
			uri:  "git@example.com:studio/pipeline-core.git",
			want: "pipeline-core",
		},
		{
			name: "bare name",
			uri:  "pipeline-core",
			want: "pipeline-core",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, RepoDirName(test.uri))
		})
	}
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    string
	}{
		{
			name:    "clean segment passes through",
			segment: "maya-tools_v1.2.3",
			want:    "maya-tools_v1.2.3",
		},
		{
			name:    "spaces and windows reserved characters",
			segment: `eclipse freeze:v2?"final"`,
			want:    "eclipse_freeze_v2__final_",
		},
		{
			name:    "remote ref punctuation",
			segment: "git@example.com",
			want:    "git_example.com",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, SanitizeSegment(test.segment))
		})
	}
}
