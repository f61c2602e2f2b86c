// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loomworks/bpm/bpm"
	"github.com/loomworks/bpm/config"
	"github.com/loomworks/bpm/constant"
)

var (
	homeDir = os.ExpandEnv("$HOME")
	bpmDir  = filepath.Join(homeDir, fmt.Sprintf(".%s", constant.AppName))
)

const (
	configFileKey      = "config-file"
	bpmPathKey         = "bpm-path"
	cachePathKey       = "cache-path"
	fallbackRootsKey   = "fallback-roots"
	bakedPathKey       = "baked-path"
	credentialsFileKey = "credentials-file"
	registryURLKey     = "registry-url"
	trackerEndpointKey = "tracker-endpoint"
	forgeEndpointKey   = "forge-endpoint"
)

func New(fs afero.Fs) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "bpm",
		Short: "bpm resolves, caches and deploys versioned pipeline bundles",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// we need to initialize our config here before each command
			// starts, since Cobra doesn't actually parse any of the flags
			// until cobra.Execute() is called.
			return initializeConfig()
		},
	}

	rootCmd.PersistentFlags().String(configFileKey, "", "path to configuration file for the bpm")
	rootCmd.PersistentFlags().String(bpmPathKey, bpmDir, "path to the directory bpm creates its artifacts")
	rootCmd.PersistentFlags().String(cachePathKey, "", "primary bundle cache root (defaults to <bpm-path>/bundle_cache)")
	rootCmd.PersistentFlags().StringSlice(fallbackRootsKey, nil, "read-only cache roots searched after the primary")
	rootCmd.PersistentFlags().String(bakedPathKey, "", "directory baked snapshots live under (defaults to <bpm-path>/baked)")
	rootCmd.PersistentFlags().String(credentialsFileKey, "", "path to credentials file")
	rootCmd.PersistentFlags().String(registryURLKey, "", "base URL of the studio bundle registry")
	rootCmd.PersistentFlags().String(trackerEndpointKey, "", "endpoint of the tracking service API")
	rootCmd.PersistentFlags().String(forgeEndpointKey, "https://api.github.com", "endpoint of the forge release API")

	for _, key := range []string{
		configFileKey,
		bpmPathKey,
		cachePathKey,
		fallbackRootsKey,
		bakedPathKey,
		credentialsFileKey,
		registryURLKey,
		trackerEndpointKey,
		forgeEndpointKey,
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			return nil, err
		}
	}
	if err := viper.BindEnv(cachePathKey, constant.CachePathEnvVar); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(
		resolve(fs),
		status(fs),
		update(fs),
		ensure(fs),
		bake(fs),
		cacheSize(fs),
	)

	return rootCmd, nil
}

// initializes config from file, if available.
func initializeConfig() error {
	if viper.IsSet(configFileKey) {
		cfgFile := os.ExpandEnv(viper.GetString(configFileKey))
		viper.SetConfigFile(cfgFile)

		return viper.ReadInConfig()
	}

	return nil
}

func initCredentials(fs afero.Fs) (config.Credentials, error) {
	if viper.IsSet(credentialsFileKey) {
		return config.LoadCredentials(fs, os.ExpandEnv(viper.GetString(credentialsFileKey)))
	}
	return config.Credentials{}, nil
}

func initBPM(fs afero.Fs) (*bpm.BPM, error) {
	credentials, err := initCredentials(fs)
	if err != nil {
		return nil, err
	}

	directory := os.ExpandEnv(viper.GetString(bpmPathKey))
	primary := os.ExpandEnv(viper.GetString(cachePathKey))
	if primary == "" {
		primary = filepath.Join(directory, constant.CacheDirName)
	}
	roots := append([]string{primary}, viper.GetStringSlice(fallbackRootsKey)...)

	return bpm.New(bpm.Config{
		Directory:       directory,
		CacheRoots:      roots,
		BakedRoot:       os.ExpandEnv(viper.GetString(bakedPathKey)),
		RegistryURL:     viper.GetString(registryURLKey),
		TrackerEndpoint: viper.GetString(trackerEndpointKey),
		ForgeEndpoint:   viper.GetString(forgeEndpointKey),
		Credentials:     credentials,
		Fs:              fs,
	})
}
