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
	"fmt"
)

// DefaultProfileName is the profile whose sources and destination are
// inherited by every other profile.
const DefaultProfileName = "default"

// 📦 Profile is a named group of backup sources and a destination directory.
// Inheritance from the default profile is already applied.
type Profile struct {
	Name              string   // Profile name as written in the config
	Sources           []string // Files or directories to back up, in order
	BackupDestination *string  // Directory receiving copies, nil when unset
}

// 📝 String returns a short description of the profile
func (p Profile) String() string {
	dest := "<unset>"
	if p.BackupDestination != nil {
		dest = *p.BackupDestination
	}
	return fmt.Sprintf("%s (%d sources) -> %s", p.Name, len(p.Sources), dest)
}

// 📄 Definition is a profile exactly as declared in a config document,
// before default inheritance is applied.
type Definition struct {
	Name              string
	Sources           []string
	BackupDestination *string
}

// 🔄 Resolve applies default-profile inheritance to definitions in document
// order. The default profile, when present, is emitted first with only its
// own values. Every other profile gets its own sources followed by the
// default sources, and falls back to the default destination.
func Resolve(defs []Definition) []Profile {
	var (
		defaultSources []string
		defaultDest    *string
		profiles       = make([]Profile, 0, len(defs))
	)

	for _, def := range defs {
		if def.Name != DefaultProfileName {
			continue
		}
		defaultSources = append([]string{}, def.Sources...)
		defaultDest = copyString(def.BackupDestination)
		profiles = append(profiles, Profile{
			Name:              DefaultProfileName,
			Sources:           append([]string{}, defaultSources...),
			BackupDestination: copyString(defaultDest),
		})
		break
	}

	for _, def := range defs {
		if def.Name == DefaultProfileName {
			continue
		}

		sources := make([]string, 0, len(def.Sources)+len(defaultSources))
		sources = append(sources, def.Sources...)
		sources = append(sources, defaultSources...)

		dest := def.BackupDestination
		if dest == nil {
			dest = defaultDest
		}

		profiles = append(profiles, Profile{
			Name:              def.Name,
			Sources:           sources,
			BackupDestination: copyString(dest),
		})
	}

	return profiles
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
