// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomworks/bpm/constant"
	"github.com/loomworks/bpm/descriptor"
	"github.com/loomworks/bpm/resolver"
	"github.com/loomworks/bpm/tracker"
	"github.com/loomworks/bpm/util"
)

// requestFlags carries the flags shared by every command that resolves a
// pipeline configuration. They stay local to each command so two commands
// never fight over the same viper key.
type requestFlags struct {
	project    string
	pluginID   string
	configName string
	user       string
	fallback   string
}

func (r *requestFlags) register(command *cobra.Command) {
	command.PersistentFlags().StringVar(&r.project, "project", "", "project entity the configuration is resolved for, e.g. Project:65")
	command.PersistentFlags().StringVar(&r.pluginID, "plugin-id", "", "plugin the configuration is scoped to, e.g. maya")
	command.PersistentFlags().StringVar(&r.configName, "config-name", "", "named configuration to resolve (defaults to Primary)")
	command.PersistentFlags().StringVar(&r.user, "user", "", "user sandbox overrides apply to, a tracker login or entity like HumanUser:7 (defaults to $USER)")
	command.PersistentFlags().StringVar(&r.fallback, "fallback-uri", "", fmt.Sprintf("descriptor used when no configuration is tracked (defaults to $%s)", constant.ConfigURIEnvVar))
}

func (r *requestFlags) request(builder descriptor.Builder) (resolver.Request, error) {
	request := resolver.Request{
		PluginID:   r.pluginID,
		ConfigName: r.configName,
	}

	if r.project != "" {
		entityType, id, err := util.ParseEntityRef(r.project)
		if err != nil {
			return resolver.Request{}, fmt.Errorf("invalid project reference %s: %w", r.project, err)
		}
		request.Project = &tracker.EntityRef{Type: entityType, ID: id}
	}
	switch {
	case strings.Contains(r.user, ":"):
		entityType, id, err := util.ParseEntityRef(r.user)
		if err != nil {
			return resolver.Request{}, fmt.Errorf("invalid user reference %s: %w", r.user, err)
		}
		request.User = &tracker.EntityRef{Type: entityType, ID: id}
	case r.user != "":
		request.Login = r.user
	default:
		// Sandboxes belong to whoever is sitting at the machine.
		request.Login = os.Getenv("USER")
	}

	fallback := r.fallback
	if fallback == "" {
		fallback = os.Getenv(constant.ConfigURIEnvVar)
	}
	if fallback != "" {
		d, err := builder.NewFromURI(fallback)
		if err != nil {
			return resolver.Request{}, fmt.Errorf("invalid fallback descriptor %s: %w", fallback, err)
		}
		request.Fallback = d
	}

	return request, nil
}
