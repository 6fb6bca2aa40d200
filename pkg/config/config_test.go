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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func ptr(s string) *string {
	return &s
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     error
		errContains string
		want        []Profile
	}{
		{
			name: "default_inheritance",
			config: `
profiles:
  default:
    sources: [.gitconfig]
    backup_destination: /backup
  linux:
    sources: [.bashrc]
`,
			want: []Profile{
				{Name: "default", Sources: []string{".gitconfig"}, BackupDestination: ptr("/backup")},
				{Name: "linux", Sources: []string{".bashrc", ".gitconfig"}, BackupDestination: ptr("/backup")},
			},
		},
		{
			name: "own_destination_wins",
			config: `
profiles:
  default:
    backup_destination: /backup
  work:
    sources: [notes]
    backup_destination: /work-backup
`,
			want: []Profile{
				{Name: "default", Sources: []string{}, BackupDestination: ptr("/backup")},
				{Name: "work", Sources: []string{"notes"}, BackupDestination: ptr("/work-backup")},
			},
		},
		{
			name: "default_declared_last_is_still_first",
			config: `
profiles:
  a:
    sources: [a.txt]
  b:
    sources: [b.txt]
  default:
    sources: [d.txt]
`,
			want: []Profile{
				{Name: "default", Sources: []string{"d.txt"}},
				{Name: "a", Sources: []string{"a.txt", "d.txt"}},
				{Name: "b", Sources: []string{"b.txt", "d.txt"}},
			},
		},
		{
			name: "no_default_profile",
			config: `
profiles:
  zeta:
    sources: [z.txt]
    backup_destination: /z
  alpha:
    sources: [a.txt]
`,
			want: []Profile{
				{Name: "zeta", Sources: []string{"z.txt"}, BackupDestination: ptr("/z")},
				{Name: "alpha", Sources: []string{"a.txt"}},
			},
		},
		{
			name: "duplicates_are_preserved",
			config: `
profiles:
  default:
    sources: [.gitconfig]
  dup:
    sources: [.gitconfig, .gitconfig]
`,
			want: []Profile{
				{Name: "default", Sources: []string{".gitconfig"}},
				{Name: "dup", Sources: []string{".gitconfig", ".gitconfig", ".gitconfig"}},
			},
		},
		{
			name: "profile_without_sources_inherits_default_sources",
			config: `
profiles:
  default:
    sources: [.gitconfig]
    backup_destination: /backup
  empty:
`,
			want: []Profile{
				{Name: "default", Sources: []string{".gitconfig"}, BackupDestination: ptr("/backup")},
				{Name: "empty", Sources: []string{".gitconfig"}, BackupDestination: ptr("/backup")},
			},
		},
		{
			name:    "empty_profiles_mapping",
			config:  "profiles: {}\n",
			want:    []Profile{},
			wantErr: nil,
		},
		{
			name:        "missing_profiles_key",
			config:      "settings:\n  foo: bar\n",
			wantErr:     ErrConfigParse,
			errContains: "missing profiles section",
		},
		{
			name:        "empty_document",
			config:      "",
			wantErr:     ErrConfigParse,
			errContains: "missing profiles section",
		},
		{
			name:        "profiles_not_a_mapping",
			config:      "profiles:\n  - a\n  - b\n",
			wantErr:     ErrConfigParse,
			errContains: "profiles must be a mapping",
		},
		{
			name:        "malformed_yaml",
			config:      "profiles:\n  default: [unclosed\n",
			wantErr:     ErrConfigParse,
			errContains: "parsing YAML",
		},
		{
			name:        "sources_wrong_type",
			config:      "profiles:\n  p1:\n    sources: {a: b}\n",
			wantErr:     ErrConfigParse,
			errContains: `profile "p1"`,
		},
		{
			name:        "duplicate_profile",
			config:      "profiles:\n  p1:\n    sources: [a]\n  p1:\n    sources: [b]\n",
			wantErr:     ErrConfigParse,
			errContains: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(testContext(t), []byte(tt.config))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap %v, got %v", tt.wantErr, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want), "number of profiles should match")
			for i, want := range tt.want {
				assert.Equal(t, want.Name, got[i].Name, "profile %d name", i)
				assert.Equal(t, want.Sources, append([]string{}, got[i].Sources...), "profile %d source order", i)
				assert.Equal(t, want.BackupDestination, got[i].BackupDestination, "profile %d destination", i)
			}
		})
	}
}

func TestResolveDoesNotShareSlices(t *testing.T) {
	defs := []Definition{
		{Name: "default", Sources: []string{"d"}, BackupDestination: ptr("/b")},
		{Name: "one", Sources: []string{"1"}},
		{Name: "two"},
	}

	profiles := Resolve(defs)
	require.Len(t, profiles, 3)

	profiles[1].Sources[1] = "changed"
	*profiles[1].BackupDestination = "/changed"

	assert.Equal(t, []string{"d"}, profiles[0].Sources, "default sources should be untouched")
	assert.Equal(t, []string{"d"}, profiles[2].Sources, "sibling sources should be untouched")
	assert.Equal(t, "/b", *profiles[0].BackupDestination, "default destination should be untouched")
	assert.Equal(t, "/b", *profiles[2].BackupDestination, "sibling destination should be untouched")
	assert.Equal(t, []string{"d"}, defs[0].Sources, "definitions should be untouched")
}

func TestNew(t *testing.T) {
	ctx := testContext(t)

	t.Run("default_path", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		cfg, err := New(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "kachi", "config.yaml"), cfg.FilePath())
	})

	t.Run("custom_path", func(t *testing.T) {
		path := filepath.Join("testdata", "example.yaml")
		cfg, err := New(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.FilePath())
	})

	t.Run("missing_path", func(t *testing.T) {
		_, err := New(ctx, filepath.Join("invalid", "path.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigNotFound))
	})

	t.Run("directory_path", func(t *testing.T) {
		_, err := New(ctx, t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigNotFound))
	})
}

func TestLoad(t *testing.T) {
	ctx := testContext(t)

	for _, file := range []string{"example.yaml", "example.hcl"} {
		t.Run(file, func(t *testing.T) {
			cfg, err := Load(ctx, filepath.Join("testdata", file))
			require.NoError(t, err)

			require.Len(t, cfg.Profiles, 3)
			assert.Equal(t, "default", cfg.Profiles[0].Name)
			assert.Equal(t, []string{".gitconfig"}, cfg.Profiles[0].Sources)

			assert.Equal(t, "mac", cfg.Profiles[1].Name)
			assert.Equal(t, []string{".zshrc", ".gitconfig"}, cfg.Profiles[1].Sources)
			require.NotNil(t, cfg.Profiles[1].BackupDestination)
			assert.Equal(t, "/Users/user/backup", *cfg.Profiles[1].BackupDestination)

			assert.Equal(t, "linux", cfg.Profiles[2].Name)
			assert.Equal(t, []string{".bashrc", ".gitconfig"}, cfg.Profiles[2].Sources)
			require.NotNil(t, cfg.Profiles[2].BackupDestination)
			assert.Equal(t, "/home/user/backup", *cfg.Profiles[2].BackupDestination)
		})
	}
}

func TestParseDefaultPathDeferredFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ctx := testContext(t)

	cfg, err := New(ctx, "")
	require.NoError(t, err, "default path is not checked up front")

	err = cfg.Parse(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestParseFromFile(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  p1:\n    sources: [f1.txt]\n    backup_destination: /d\n"), 0o644))

	cfg, err := Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 1)
	assert.Equal(t, "p1 (1 sources) -> /d", cfg.Profiles[0].String())
}

func TestGetProfile(t *testing.T) {
	cfg, err := Load(testContext(t), filepath.Join("testdata", "example.yaml"))
	require.NoError(t, err)

	p, err := cfg.GetProfile("linux")
	require.NoError(t, err)
	assert.Equal(t, "linux", p.Name)

	_, err = cfg.GetProfile("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfileNotFound))
	assert.Contains(t, err.Error(), `"nonexistent"`)

	_, err = cfg.GetProfile("Linux")
	assert.True(t, errors.Is(err, ErrProfileNotFound), "lookup is case sensitive")
}
