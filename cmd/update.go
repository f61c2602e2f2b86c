// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func update(fs afero.Fs) *cobra.Command {
	path := ""
	flags := &requestFlags{}
	command := &cobra.Command{
		Use:   "update",
		Short: "deploys the tracked pipeline configuration into a checkout",
	}
	command.PersistentFlags().StringVar(&path, "path", "", "checkout directory to deploy into")
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
		return bpm.Update(cmd.Context(), path, request)
	}

	return command
}
