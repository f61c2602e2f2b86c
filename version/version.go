// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPattern marks a malformed constraint pattern. This is a caller
	// bug and is never retried.
	ErrInvalidPattern = errors.New("invalid version pattern")
	// ErrVersionNotFound marks an exact constraint that is absent from the
	// candidate list.
	ErrVersionNotFound = errors.New("version not found")
)

// Token is a parsed version of the form vINT(.INT)*, e.g. v1.2.3 or
// v1.2.3.1. Backends hand us arbitrary tag lists, so anything that does not
// parse is simply not a token.
type Token struct {
	raw   string
	parts []int
}

// ParseToken parses raw into a Token. Strings that do not look like
// vINT(.INT)* fail; callers that enumerate real-world tag lists are expected
// to skip those candidates rather than abort.
func ParseToken(raw string) (Token, error) {
	if !strings.HasPrefix(raw, "v") {
		return Token{}, fmt.Errorf("version %q does not start with v", raw)
	}

	split := strings.Split(raw[1:], ".")
	parts := make([]int, 0, len(split))
	for _, s := range split {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Token{}, fmt.Errorf("version %q has a non-numeric component %q", raw, s)
		}
		parts = append(parts, n)
	}

	return Token{raw: raw, parts: parts}, nil
}

func (t Token) String() string {
	return t.raw
}

// Compare orders tokens by integer-tuple comparison, not lexically:
// v1.2.30 > v1.2.4, and v1.2.3.1 > v1.2.3. Returns -1, 0 or 1.
func Compare(a, b Token) int {
	for i := 0; i < len(a.parts) || i < len(b.parts); i++ {
		switch {
		case i >= len(a.parts):
			return -1
		case i >= len(b.parts):
			return 1
		case a.parts[i] < b.parts[i]:
			return -1
		case a.parts[i] > b.parts[i]:
			return 1
		}
	}
	return 0
}

// Pattern is a parsed constraint, e.g. v1.2.3 (exact), v1.2.x or v1.x.x.
// A wildcard frees every component from its position onward; a pinned
// component after a wildcard (v1.x.2) is malformed.
type Pattern struct {
	raw    string
	pinned []int
	exact  bool
}

// ParsePattern parses a constraint pattern. The empty string is the
// no-constraint pattern and matches every token.
func ParsePattern(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, nil
	}
	if !strings.HasPrefix(raw, "v") {
		return Pattern{}, fmt.Errorf("%w: %q does not start with v", ErrInvalidPattern, raw)
	}

	split := strings.Split(raw[1:], ".")
	pinned := make([]int, 0, len(split))
	wild := false
	for _, s := range split {
		if s == "x" {
			wild = true
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Pattern{}, fmt.Errorf("%w: %q has a component that is neither a number nor x", ErrInvalidPattern, raw)
		}
		if wild {
			return Pattern{}, fmt.Errorf("%w: %q pins a component after a wildcard", ErrInvalidPattern, raw)
		}
		pinned = append(pinned, n)
	}

	return Pattern{raw: raw, pinned: pinned, exact: !wild}, nil
}

// IsExact reports whether the pattern names a single version rather than a
// wildcard family.
func (p Pattern) IsExact() bool {
	return p.raw != "" && p.exact
}

// Matches reports whether every pinned component of the pattern equals the
// corresponding component of the token. Tokens may carry extra trailing
// "fork" components beyond the pattern's length.
func (p Pattern) Matches(t Token) bool {
	if len(t.parts) < len(p.pinned) {
		return false
	}
	for i, pin := range p.pinned {
		if t.parts[i] != pin {
			return false
		}
	}
	return true
}

// FindLatest resolves a list of raw version strings against an optional
// constraint pattern and returns the single best match.
//
// An exact pattern must be present in the list verbatim and is returned
// as-is; absence is ErrVersionNotFound. A wildcard pattern (or no pattern)
// selects the numerically greatest matching token; candidates that do not
// parse as vINT(.INT)* are skipped. When a wildcard pattern matches nothing
// the result is empty with no error. The result is stable under any
// permutation of the input.
func FindLatest(versions []string, pattern string) (string, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return "", err
	}

	if p.IsExact() {
		for _, v := range versions {
			if v == pattern {
				return pattern, nil
			}
		}
		return "", fmt.Errorf("%w: %s is not in the candidate list", ErrVersionNotFound, pattern)
	}

	var (
		best  Token
		found bool
	)
	for _, v := range versions {
		t, err := ParseToken(v)
		if err != nil {
			// Annotated tags, release names and other noise are expected in
			// real tag lists; they just never participate.
			continue
		}
		if !p.Matches(t) {
			continue
		}
		if !found {
			best, found = t, true
			continue
		}
		if c := Compare(t, best); c > 0 || (c == 0 && t.raw > best.raw) {
			best = t
		}
	}

	if !found {
		return "", nil
	}
	return best.raw, nil
}
