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
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// yamlDocument keeps profiles as a node so document order survives decoding.
type yamlDocument struct {
	Profiles yaml.Node `yaml:"profiles"`
}

type yamlProfile struct {
	Sources           []string `yaml:"sources"`
	BackupDestination *string  `yaml:"backup_destination"`
}

func (p *YAMLParser) CanParse(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, filename string, data []byte) ([]Definition, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("%w: parsing YAML: %s", ErrConfigParse, err.Error())
	}

	profiles := &doc.Profiles
	if profiles.Kind == 0 {
		return nil, errors.Errorf("%w: missing profiles section", ErrConfigParse)
	}
	if profiles.Kind == yaml.AliasNode {
		profiles = profiles.Alias
	}
	if profiles.Kind != yaml.MappingNode {
		return nil, errors.Errorf("%w: profiles must be a mapping (line %d)", ErrConfigParse, profiles.Line)
	}

	seen := make(map[string]bool, len(profiles.Content)/2)
	defs := make([]Definition, 0, len(profiles.Content)/2)

	// mapping content alternates key and value nodes
	for i := 0; i+1 < len(profiles.Content); i += 2 {
		key, value := profiles.Content[i], profiles.Content[i+1]

		if err := checkDuplicate(seen, key.Value); err != nil {
			return nil, err
		}

		var body yamlProfile
		if err := value.Decode(&body); err != nil {
			return nil, errors.Errorf("%w: profile %q: %s", ErrConfigParse, key.Value, err.Error())
		}

		defs = append(defs, Definition{
			Name:              key.Value,
			Sources:           body.Sources,
			BackupDestination: body.BackupDestination,
		})
	}

	zerolog.Ctx(ctx).Debug().Str("file", filename).Int("profiles", len(defs)).Msg("decoded YAML profiles")

	return defs, nil
}
