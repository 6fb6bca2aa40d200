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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/kachi/cmd/kachi/opts"
	"github.com/walteh/kachi/pkg/backup"
	"github.com/walteh/kachi/pkg/config"
	"github.com/walteh/kachi/pkg/log"
	"github.com/walteh/kachi/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewBackupCmd creates the backup command
func NewBackupCmd() *cobra.Command {
	var (
		configPath  string
		profileName string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup files and directories",
		Long: `Backup copies every source of a profile into its backup destination.

If no profile is specified, all profiles in the configuration file are
backed up. If no configuration file is specified, ~/.config/kachi/config.yaml
is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			logger.Info("Starting backup...")

			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			profiles := cfg.Profiles
			if profileName != "" {
				p, err := cfg.GetProfile(profileName)
				if err != nil {
					logger.Errorf("Profile with name '%s' not found.", profileName)
					return opts.Reported(err)
				}
				profiles = []config.Profile{p}
			}

			exec := backup.New(logger)
			out, err := exec.BackupProfiles(ctx, profiles)
			if err != nil {
				// the executor has already logged the cause
				return opts.Reported(errors.Errorf("running backup: %w", err))
			}

			exec.LogNotFound(out.NotFound)
			logger.Success(status.FromOutcome(out).String())

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a configuration file")
	cmd.Flags().StringVar(&profileName, "profile", "", "Name of the profile to backup")

	return cmd
}

// loadConfig resolves and parses the config file, logging failures for the user
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	cfg, err := config.New(ctx, path)
	if err != nil {
		logger.Error(err.Error())
		return nil, opts.Reported(err)
	}

	if path == "" {
		logger.Infof("Using default config path: %s", cfg.FilePath())
	} else {
		logger.Infof("Using config path: %s", cfg.FilePath())
	}

	if err := cfg.Parse(ctx); err != nil {
		logger.Error(err.Error())
		return nil, opts.Reported(err)
	}

	logger.Debugf("Loaded %d profiles from %s", len(cfg.Profiles), cfg.FilePath())

	return cfg, nil
}
