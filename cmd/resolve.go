// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func resolve(fs afero.Fs) *cobra.Command {
	flags := &requestFlags{}
	command := &cobra.Command{
		Use:   "resolve",
		Short: "resolves and pins the pipeline configuration descriptor without deploying it",
	}
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

		resolution, err := bpm.Resolve(cmd.Context(), request)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", resolution.Descriptor.URI())
		if path, ok, err := resolution.Descriptor.LocalPath(); err == nil && ok {
			fmt.Printf("cached at %s\n", path)
		}
		return nil
	}

	return command
}
