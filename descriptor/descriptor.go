// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Type names a payload location variant: where a payload lives and how it
// is fetched.
type Type string

const (
	// Registry is a bundle published in the studio's HTTP bundle registry.
	Registry Type = "registry"
	// Tracker is a bundle payload uploaded to the pipeline tracker as an
	// attachment on a BundleVersion record.
	Tracker Type = "tracker"
	// GitTag is the working tree of a git repository at a tag.
	GitTag Type = "git_tag"
	// GitBranch is the working tree of a git repository at a branch,
	// pinned to a commit when resolved.
	GitBranch Type = "git_branch"
	// Forge is a release asset on a GitHub-compatible forge.
	Forge Type = "forge"
	// Manual is a payload an operator placed into the cache by hand.
	Manual Type = "manual"
	// Dev tracks the moving tip of a git branch. The only remote type
	// whose identity does not pin its contents.
	Dev Type = "dev"
	// Path is a payload directory used in place, outside the cache.
	Path Type = "path"
	// Baked is a payload snapshot frozen into the baked area.
	Baked Type = "baked"
)

// Kind names what a bundle is to the pipeline, independent of where its
// payload lives. Part of descriptor identity when set.
type Kind string

const (
	KindApp       Kind = "app"
	KindEngine    Kind = "engine"
	KindFramework Kind = "framework"
	KindConfig    Kind = "config"
	KindCore      Kind = "core"
)

// ParseKind validates a bundle kind field. Empty is allowed: descriptors
// embedded in manifests and tracker rows often omit it.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(raw); k {
	case "", KindApp, KindEngine, KindFramework, KindConfig, KindCore:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown bundle kind %q", ErrInvalidSpec, raw)
	}
}

var (
	// ErrInvalidURI marks a string that is not a descriptor URI.
	ErrInvalidURI = errors.New("invalid descriptor uri")
	// ErrInvalidSpec marks a descriptor dict with malformed or unexpected
	// fields.
	ErrInvalidSpec = errors.New("invalid descriptor spec")
	// ErrUnknownType marks a descriptor whose location type no backend
	// implements.
	ErrUnknownType = errors.New("unknown descriptor type")
	// ErrMissingRequiredField marks a descriptor lacking a field its kind
	// requires.
	ErrMissingRequiredField = errors.New("missing required descriptor field")
	// ErrBackendUnavailable marks a backend that could not be reached.
	// Callers holding cached state may fall back to it on this error and
	// only this error.
	ErrBackendUnavailable = errors.New("descriptor backend unavailable")
	// ErrDownloadFailed marks a payload download that did not produce a
	// usable payload.
	ErrDownloadFailed = errors.New("failed to download payload")
)

// Descriptor is one bundle payload identified by where it lives and which
// version it is. Two descriptors are the same payload exactly when their
// URIs are equal.
type Descriptor interface {
	// Type is the location variant.
	Type() Type
	// Kind is the bundle kind, or empty when the spec did not say.
	Kind() Kind
	// Name identifies the bundle across versions.
	Name() string
	// Version is the exact version token, commit, or tag this descriptor
	// is pinned to. Empty or a wildcard pattern while unresolved.
	Version() string
	// Spec returns the canonical dict form.
	Spec() Spec
	// URI returns the canonical string form. Stable across parse and
	// serialize round trips, usable as an equality and map key.
	URI() string

	// Mutable reports whether the payload behind this exact identity can
	// change over time. Immutable payloads are cached forever.
	Mutable() bool
	// Local reports whether the payload only exists on this machine, with
	// no remote backend to fetch it from.
	Local() bool

	// LocalPath returns where the payload is on disk and whether it is
	// already present. It never touches the network.
	LocalPath() (string, bool, error)
	// EnsureLocal makes the payload present on disk, fetching it into the
	// cache if the kind supports that, and returns its path.
	EnsureLocal(ctx context.Context) (string, error)
	// FindLatest asks the backend for the newest version of this bundle
	// satisfying constraint (empty means the descriptor's own version
	// field, which may itself be a pattern) and returns a pinned copy.
	FindLatest(ctx context.Context, constraint string) (Descriptor, error)
	// FindLatestLocal is FindLatest answered purely from what is already
	// on disk, for use when the backend is unreachable.
	FindLatestLocal(constraint string) (Descriptor, error)
	// Reachable probes whether this descriptor's backend answers right
	// now, so callers can skip a doomed FindLatest. Fails closed: any
	// transport trouble reads as unreachable, and local-only kinds are
	// never reachable.
	Reachable(ctx context.Context) bool
}

// Equal reports whether two descriptors identify the same payload.
func Equal(a, b Descriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.URI() == b.URI()
}

const uriPrefix = "bpm:descriptor:"

// Spec is the dict form of a descriptor: a flat map of string fields
// including "type". Field values never contain nested structure.
type Spec map[string]string

func (s Spec) Type() Type {
	return Type(s["type"])
}

func (s Spec) Clone() Spec {
	clone := make(Spec, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// With returns a copy of the spec with one field replaced.
func (s Spec) With(key string, value string) Spec {
	clone := s.Clone()
	clone[key] = value
	return clone
}

// URI renders the canonical string form: fields sorted by key, url-encoded,
// empty fields omitted. Specs that differ only in field order or in empty
// fields produce identical URIs.
func (s Spec) URI() string {
	values := url.Values{}
	for key, value := range s {
		if key == "type" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	if len(values) == 0 {
		return uriPrefix + string(s.Type())
	}
	return fmt.Sprintf("%s%s?%s", uriPrefix, s.Type(), values.Encode())
}

// ParseURI parses the canonical string form back into a spec.
func ParseURI(uri string) (Spec, error) {
	rest, found := strings.CutPrefix(uri, uriPrefix)
	if !found {
		return nil, fmt.Errorf("%w: %q does not start with %s", ErrInvalidURI, uri, uriPrefix)
	}

	kind, query, _ := strings.Cut(rest, "?")
	if kind == "" {
		return nil, fmt.Errorf("%w: %q has no type", ErrInvalidURI, uri)
	}

	spec := Spec{"type": kind}
	if query == "" {
		return spec, nil
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURI, uri, err)
	}
	for key, fieldValues := range values {
		if key == "type" {
			return nil, fmt.Errorf("%w: %q repeats the type outside the head", ErrInvalidURI, uri)
		}
		if len(fieldValues) != 1 {
			return nil, fmt.Errorf("%w: %q repeats field %s", ErrInvalidURI, uri, key)
		}
		spec[key] = fieldValues[0]
	}
	return spec, nil
}

// ParseDict converts a decoded yaml/json mapping into a spec. Values must
// be scalars; the tracker and config files never nest descriptor fields.
func ParseDict(raw map[string]interface{}) (Spec, error) {
	spec := make(Spec, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			spec[key] = v
		case bool:
			spec[key] = fmt.Sprintf("%t", v)
		case int, int64, float64:
			spec[key] = fmt.Sprintf("%v", v)
		case nil:
			// absent
		default:
			return nil, fmt.Errorf("%w: field %s is not a scalar", ErrInvalidSpec, key)
		}
	}
	if spec["type"] == "" {
		return nil, fmt.Errorf("%w: type", ErrMissingRequiredField)
	}
	return spec, nil
}

// Fields returns the non-type field names in sorted order. Handy for error
// messages and logs.
func (s Spec) Fields() []string {
	fields := make([]string, 0, len(s))
	for key := range s {
		if key != "type" {
			fields = append(fields, key)
		}
	}
	sort.Strings(fields)
	return fields
}

// base carries the identity every descriptor shares.
type base struct {
	typ     Type
	kind    Kind
	name    string
	version string
	spec    Spec
}

func (b *base) Type() Type {
	return b.typ
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Version() string {
	return b.version
}

func (b *base) Spec() Spec {
	return b.spec.Clone()
}

func (b *base) URI() string {
	return b.spec.URI()
}
