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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConfigNotFound is returned when the config file does not exist or is not a regular file.
	ErrConfigNotFound = errors.Base("config file not found")
	// ErrConfigParse is returned for malformed documents or a missing profiles section.
	ErrConfigParse = errors.Base("invalid config")
	// ErrProfileNotFound is returned when no profile matches the requested name.
	ErrProfileNotFound = errors.Base("profile not found")
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses profile definitions from bytes, in document order
	Parse(ctx context.Context, filename string, data []byte) ([]Definition, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers in lookup order; YAML is the fallback for unknown extensions
var parsers = []Parser{
	&HCLParser{},
	&YAMLParser{},
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return &YAMLParser{}
}

// 📚 Config is a config file location and the profiles parsed from it
type Config struct {
	Profiles []Profile

	filepath string
}

// 🏠 DefaultPath returns ~/.config/kachi/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kachi", "config.yaml"), nil
}

// 🏭 New resolves the config file location. An empty path selects
// DefaultPath without checking that it exists; an explicit path must be an
// existing regular file.
func New(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", def).Msg("using default config path")
		return &Config{filepath: def}, nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	logger.Debug().Str("path", path).Msg("using config path")
	return &Config{filepath: path}, nil
}

// 🎯 Load resolves the config location and parses it
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := New(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Parse(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePath returns the path this config reads from.
func (c *Config) FilePath() string {
	return c.filepath
}

// 📝 Parse reads the config file and replaces Profiles with its resolved content
func (c *Config) Parse(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrConfigNotFound, c.filepath)
		}
		return errors.Errorf("reading config file: %w", err)
	}

	defs, err := GetParser(c.filepath).Parse(ctx, c.filepath, data)
	if err != nil {
		return err
	}

	c.Profiles = Resolve(defs)
	logger.Debug().Str("path", c.filepath).Int("profiles", len(c.Profiles)).Msg("parsed configuration")

	return nil
}

// 🔍 GetProfile returns the profile with exactly the given name
func (c *Config) GetProfile(name string) (Profile, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, errors.Errorf("%w: %q", ErrProfileNotFound, name)
}

// 📝 Parse decodes a YAML document and resolves its profiles
func Parse(ctx context.Context, data []byte) ([]Profile, error) {
	defs, err := (&YAMLParser{}).Parse(ctx, "", data)
	if err != nil {
		return nil, err
	}
	return Resolve(defs), nil
}

func checkDuplicate(seen map[string]bool, name string) error {
	if seen[name] {
		return errors.Errorf("%w: duplicate profile %q", ErrConfigParse, name)
	}
	seen[name] = true
	return nil
}
