// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/momentline/internal/config"
	"github.com/tomtom215/momentline/internal/logging"
)

// rootOptions are shared by all subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "momentctl",
		Short:         "Offline tools for the Momentline event clustering engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})

			var err error
			if opts.configPath != "" {
				opts.cfg, err = config.LoadFile(opts.configPath)
			} else {
				opts.cfg, err = config.Load()
			}
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(newClusterCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}
