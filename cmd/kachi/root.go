// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"
	"github.com/walteh/kachi/cmd/kachi/commands"
	"github.com/walteh/kachi/cmd/kachi/opts"
	"github.com/walteh/kachi/pkg/log"
)

// newRootCmd creates the root command and its subcommands
func newRootCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kachi",
		Short:         "Kachi is a simple tool for backing up valuable files.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, rootOpts)
		},
	}

	cmd.SetVersionTemplate("kachi v{{.Version}}\n")
	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewBackupCmd(),
		commands.NewListCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&rootOpts.Quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "Enable verbose (debug) output")
	cmd.PersistentFlags().StringVar(&rootOpts.LogFile, "log-file", "", "Append structured JSON logs to this file")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")
}

// setupLogging builds the logger from the flags and stores it in the command context
func setupLogging(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	structured, err := rootOpts.Structured()
	if err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), structured, rootOpts.Level())
	cmd.SetContext(log.NewContext(cmd.Context(), logger))

	return nil
}
