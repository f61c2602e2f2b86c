// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func status(fs afero.Fs) *cobra.Command {
	path := ""
	flags := &requestFlags{}
	command := &cobra.Command{
		Use:   "status",
		Short: "reports whether a checkout matches the tracked pipeline configuration",
	}
	command.PersistentFlags().StringVar(&path, "path", "", "checkout directory to inspect")
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

		state, err := bpm.Status(cmd.Context(), path, request)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", state)
		return nil
	}

	return command
}
