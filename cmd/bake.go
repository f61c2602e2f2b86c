// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func bake(fs afero.Fs) *cobra.Command {
	name := ""
	flags := &requestFlags{}
	command := &cobra.Command{
		Use:   "bake",
		Short: "freezes the pipeline configuration and its frameworks into an immutable snapshot",
	}
	command.PersistentFlags().StringVar(&name, "name", "", "name of the baked snapshot (defaults to the configuration name)")
	flags.register(command)
	command.RunE = func(cmd *cobra.Command, _ []string) error {
		bpm, err := initBPM(fs)
		if err != nil {
			return err
		}
		request, err := flags.request(bpm.Builder())
		if err != nil {
			return err
		}

		baked, err := bpm.Bake(cmd.Context(), name, request)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", baked.URI())
		return nil
	}

	return command
}
