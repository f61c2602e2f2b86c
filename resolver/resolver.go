// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package resolver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/tracker"
)

// ErrConfigurationNotFound marks a resolution with no tracker candidate and
// no fallback descriptor to hand out.
var ErrConfigurationNotFound = errors.New("no pipeline configuration found")

type Config struct {
	Tracker tracker.Client
	Builder descriptor.Builder
}

// Request describes one resolution: who is asking, from which plugin, and
// in which scope.
type Request struct {
	// Project scopes the resolution; nil resolves at site scope.
	Project *tracker.EntityRef
	// PluginID identifies the host integration asking, e.g.
	// "studio.maya". Candidates declare which plugin ids they serve.
	PluginID string
	// ConfigName selects a configuration by exact name. When empty the
	// resolver picks between Primary and the user's own sandboxes.
	ConfigName string
	// User is the current user, matched against sandbox user lists.
	User *tracker.EntityRef
	// Login identifies the current user by tracker login when User is
	// not already known. It is resolved to a user ref before the
	// candidate query; a login the tracker does not know simply means
	// no sandbox can match.
	Login string
	// Fallback is the descriptor used when the tracker names no
	// configuration for this scope. May be nil.
	Fallback descriptor.Descriptor
}

// Resolution is the resolver's answer: the tracker candidate that won, if
// any, and the pinned descriptor to deploy.
type Resolution struct {
	// Candidate is nil when the fallback descriptor was used.
	Candidate  *tracker.PipelineConfiguration
	Descriptor descriptor.Descriptor
}

// Resolver picks the single pipeline configuration that applies to a
// project, plugin and user, and pins its descriptor to an exact version.
type Resolver struct {
	tracker tracker.Client
	builder descriptor.Builder
}

func New(config Config) *Resolver {
	return &Resolver{
		tracker: config.Tracker,
		builder: config.Builder,
	}
}

func (r *Resolver) Resolve(ctx context.Context, request Request) (Resolution, error) {
	logger := slogcontext.FromCtx(ctx)

	if request.User == nil && request.Login != "" {
		user, err := r.tracker.FindUser(ctx, request.Login)
		switch {
		case err == nil:
			request.User = &user
		case errors.Is(err, tracker.ErrNoMatch):
			logger.Debug("login has no tracker user, sandboxes cannot match",
				"login", request.Login)
		default:
			return Resolution{}, err
		}
	}

	candidates, err := r.candidates(ctx, request)
	if err != nil {
		return Resolution{}, err
	}

	matching := make([]tracker.PipelineConfiguration, 0, len(candidates))
	for _, candidate := range candidates {
		if !r.applies(candidate, request) {
			continue
		}
		matching = append(matching, candidate)
	}

	if len(matching) == 0 {
		logger.Debug("no matching configuration, using fallback",
			"plugin_id", request.PluginID)
		return r.fallback(ctx, request)
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return moreSpecific(matching[i], matching[j])
	})
	winner := matching[0]
	logger.Debug("picked pipeline configuration",
		"id", winner.ID, "code", winner.Code)

	d, err := r.descriptorFor(winner, request)
	if err != nil {
		return Resolution{}, err
	}
	pinned, err := r.pin(ctx, d)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Candidate: &winner, Descriptor: pinned}, nil
}

// candidates queries the tracker for every configuration in scope. When a
// project is given the query spans both project and site scope in one
// request, so precedence between the two can be applied locally.
func (r *Resolver) candidates(ctx context.Context, request Request) ([]tracker.PipelineConfiguration, error) {
	filters := []tracker.Filter{}
	if request.Project != nil {
		filters = append(filters, tracker.Filter{
			Field:    "project",
			Relation: "in",
			Value:    []interface{}{request.Project, nil},
		})
	} else {
		filters = append(filters, tracker.Filter{
			Field:    "project",
			Relation: "is",
			Value:    nil,
		})
	}
	if request.ConfigName != "" {
		filters = append(filters, tracker.Filter{
			Field:    "code",
			Relation: "is",
			Value:    request.ConfigName,
		})
	}

	candidates, err := r.tracker.FindPipelineConfigurations(ctx, filters)
	if err != nil {
		if errors.Is(err, tracker.ErrNoMatch) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", descriptor.ErrBackendUnavailable, err)
	}
	return candidates, nil
}

// applies reports whether a candidate row is usable for this request: its
// plugin id patterns must cover the caller's plugin, and when no explicit
// name was asked for it must either be the shared Primary or a sandbox the
// current user is on.
func (r *Resolver) applies(candidate tracker.PipelineConfiguration, request Request) bool {
	if !MatchesPluginID(candidate.PluginIDs, request.PluginID) {
		return false
	}
	if request.ConfigName != "" {
		return candidate.Code == request.ConfigName
	}
	if candidate.Code == constant.PrimaryConfigName {
		return true
	}
	return onUserList(candidate, request.User)
}

func onUserList(candidate tracker.PipelineConfiguration, user *tracker.EntityRef) bool {
	if user == nil {
		return false
	}
	for _, u := range candidate.Users {
		if u.Type == user.Type && u.ID == user.ID {
			return true
		}
	}
	return false
}

// moreSpecific orders candidates by precedence: project scope over site
// scope, then a user sandbox over the shared Primary, then most recently
// updated.
func moreSpecific(a, b tracker.PipelineConfiguration) bool {
	if ar, br := scopeRank(a), scopeRank(b); ar != br {
		return ar > br
	}
	if ar, br := sandboxRank(a), sandboxRank(b); ar != br {
		return ar > br
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

func scopeRank(c tracker.PipelineConfiguration) int {
	if c.Project != nil {
		return 1
	}
	return 0
}

func sandboxRank(c tracker.PipelineConfiguration) int {
	if c.Code != constant.PrimaryConfigName {
		return 1
	}
	return 0
}

// MatchesPluginID evaluates a candidate's plugin id pattern list against a
// plugin id. Patterns are comma separated; an entry matches by equality or
// as a prefix when it ends in "*". Empty, whitespace, "." and "None"
// entries never match anything.
func MatchesPluginID(patterns string, pluginID string) bool {
	if pluginID == "" {
		return false
	}
	for _, raw := range strings.Split(patterns, ",") {
		pattern := strings.TrimSpace(raw)
		switch {
		case pattern == "" || pattern == "." || strings.EqualFold(pattern, "none"):
			continue
		case strings.HasSuffix(pattern, "*"):
			if strings.HasPrefix(pluginID, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		case pattern == pluginID:
			return true
		}
	}
	return false
}

// descriptorFor turns the winning row into a descriptor. A storage path
// for the current platform outranks the row's descriptor field: a path
// means the configuration is installed in place and not managed through a
// descriptor, and that wins however tempting the descriptor looks.
func (r *Resolver) descriptorFor(winner tracker.PipelineConfiguration, request Request) (descriptor.Descriptor, error) {
	if path := platformPath(winner); path != "" {
		return r.builder.NewFromSpec(descriptor.Spec{
			"type": string(descriptor.Path),
			"kind": string(descriptor.KindConfig),
			"name": winner.Code,
			"path": path,
		})
	}
	switch tracked := winner.Descriptor.(type) {
	case string:
		if tracked != "" {
			return r.builder.NewFromURI(tracked)
		}
	case map[string]interface{}:
		return r.builder.NewFromDict(tracked)
	}
	if request.Fallback != nil {
		return request.Fallback, nil
	}
	return nil, fmt.Errorf("%w: configuration %q (id %d) has no descriptor and no storage path",
		ErrConfigurationNotFound, winner.Code, winner.ID)
}

func platformPath(c tracker.PipelineConfiguration) string {
	switch runtime.GOOS {
	case "windows":
		return c.WindowsPath
	case "darwin":
		return c.MacPath
	default:
		return c.LinuxPath
	}
}

func (r *Resolver) fallback(ctx context.Context, request Request) (Resolution, error) {
	if request.Fallback == nil {
		return Resolution{}, fmt.Errorf("%w: nothing matches plugin %q and no fallback descriptor is configured",
			ErrConfigurationNotFound, request.PluginID)
	}
	pinned, err := r.pin(ctx, request.Fallback)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Descriptor: pinned}, nil
}

// pin resolves d to an exact version. Already-pinned immutable descriptors
// pass through without touching any backend; everything else asks its
// backend for the latest version and, when the backend is down, falls back
// to the newest version already in the cache.
func (r *Resolver) pin(ctx context.Context, d descriptor.Descriptor) (descriptor.Descriptor, error) {
	if descriptor.Pinned(d) {
		return d, nil
	}

	// A failed probe skips the remote lookup and its retries outright.
	// The backend can still drop out between probe and lookup, so the
	// lookup path below keeps its own cached fallback.
	if !d.Local() && !d.Reachable(ctx) {
		slogcontext.FromCtx(ctx).Warn("backend unreachable, resolving from cache",
			"descriptor", d.URI())
		cached, cacheErr := d.FindLatestLocal("")
		if cacheErr != nil {
			return nil, fmt.Errorf("%w: %s (and no cached version: %v)",
				descriptor.ErrBackendUnavailable, d.URI(), cacheErr)
		}
		return cached, nil
	}

	pinned, err := d.FindLatest(ctx, "")
	if err == nil {
		return pinned, nil
	}
	if !errors.Is(err, descriptor.ErrBackendUnavailable) {
		return nil, err
	}

	slogcontext.FromCtx(ctx).Warn("backend unreachable, resolving from cache",
		"descriptor", d.URI(), "err", err)
	cached, cacheErr := d.FindLatestLocal("")
	if cacheErr != nil {
		// The original outage is the actionable error, not the empty
		// cache.
		return nil, fmt.Errorf("%v (and no cached version: %v)", err, cacheErr)
	}
	return cached, nil
}
