// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constant

const (
	AppName = "bpm"

	// PrimaryConfigName is the pipeline configuration every user of a project
	// shares unless they own a sandbox configuration of their own.
	PrimaryConfigName = "Primary"

	// DeployGeneration is stamped into every deployment record. Bump it when
	// the on-disk layout of a cached configuration changes so that existing
	// checkouts report DIFFERENT and get redeployed.
	DeployGeneration = 2

	// CacheDirName is the default primary cache root, under the bpm home.
	CacheDirName = "bundle_cache"
	// CachePathEnvVar overrides the primary bundle cache root.
	CachePathEnvVar = "BPM_CACHE_PATH"
	// ConfigURIEnvVar overrides the fallback configuration descriptor.
	ConfigURIEnvVar = "BPM_CONFIG_URI"
	// LogLevelEnvVar selects the slog level ("debug", "info", "warn", "error").
	LogLevelEnvVar = "BPM_LOG_LEVEL"

	// ManifestFile sits at the root of every bundle payload.
	ManifestFile = "bundle.yaml"
	// PayloadAsset is the archive name looked up on forge releases.
	PayloadAsset = "bundle.tar.gz"
)
