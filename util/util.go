package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	entityRefDelimiter = ":"
	pathUnsafe         = "\\:*?\"<>|@#%&{}$ "
)

// ParseEntityRef splits a "Type:id" reference, e.g. "PipelineConfiguration:42".
func ParseEntityRef(ref string) (entityType string, id int, err error) {
	parsed := strings.Split(ref, entityRefDelimiter)
	if len(parsed) != 2 {
		return "", 0, fmt.Errorf("%s is not a valid entity reference (must be in the form of Type:id)", ref)
	}

	id, err = strconv.Atoi(parsed[1])
	if err != nil {
		return "", 0, fmt.Errorf("%s is not a valid entity reference: %w", ref, err)
	}

	return parsed[0], id, nil
}

// RepoDirName derives a filesystem-safe directory segment from a git
// repository URI, e.g. "https://example.com/studio/tk-config.git" -> "tk-config".
func RepoDirName(uri string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(uri, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return SanitizeSegment(trimmed)
}

// SanitizeSegment replaces characters that cannot appear in a cache path
// segment on at least one supported platform.
func SanitizeSegment(segment string) string {
	var b strings.Builder
	for _, r := range segment {
		if strings.ContainsRune(pathUnsafe, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
