// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/loomworks/bpm/descriptor"
)

// materialize pins d to an exact version and downloads its payload into the
// cache. When the backend is unreachable it falls back to the newest version
// already cached, so ensure-style workflows keep working offline.
func materialize(ctx context.Context, d descriptor.Descriptor) (descriptor.Descriptor, string, error) {
	pinned := d
	if !descriptor.Pinned(d) {
		var err error
		pinned, err = d.FindLatest(ctx, "")
		if errors.Is(err, descriptor.ErrBackendUnavailable) {
			cached, cacheErr := d.FindLatestLocal("")
			if cacheErr != nil {
				return nil, "", fmt.Errorf("%v (and no cached version: %v)", err, cacheErr)
			}
			slogcontext.FromCtx(ctx).Warn("backend unreachable, using cached version",
				"descriptor", d.URI(), "version", cached.Version())
			pinned = cached
		} else if err != nil {
			return nil, "", err
		}
	}

	path, err := pinned.EnsureLocal(ctx)
	if err != nil {
		return nil, "", err
	}
	return pinned, path, nil
}
