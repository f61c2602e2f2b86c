// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func cacheSize(fs afero.Fs) *cobra.Command {
	command := &cobra.Command{
		Use:   "cache-size",
		Short: "prints the disk usage of each bundle cache root",
	}
	command.RunE = func(_ *cobra.Command, _ []string) error {
		bpm, err := initBPM(fs)
		if err != nil {
			return err
		}

		usages, err := bpm.CacheSizes()
		if err != nil {
			return err
		}

		for _, usage := range usages {
			fmt.Printf("%s: %d bytes\n", usage.Root, usage.Bytes)
		}
		return nil
	}

	return command
}
