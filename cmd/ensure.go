// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func ensure(fs afero.Fs) *cobra.Command {
	path := ""
	flags := &requestFlags{}
	command := &cobra.Command{
		Use:   "ensure",
		Short: "updates a checkout only when it is missing or stale",
	}
	command.PersistentFlags().StringVar(&path, "path", "", "checkout directory to reconcile")
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
		return bpm.Ensure(cmd.Context(), path, request)
	}

	return command
}
