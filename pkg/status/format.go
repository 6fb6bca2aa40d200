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

package status

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/walteh/kachi/pkg/backup"
	"github.com/walteh/kachi/pkg/config"
)

// 📊 Summary is the final tally of a backup run
type Summary struct {
	Copied   int
	Errors   int
	NotFound []string
}

// FromOutcome builds a summary from an executor outcome.
func FromOutcome(out backup.Outcome) Summary {
	return Summary{
		Copied:   out.Success,
		Errors:   out.Errors,
		NotFound: append([]string{}, out.NotFound...),
	}
}

// 📝 String renders the completion line, e.g.
// "Backup complete: 1 source copied, 2 errors."
func (s Summary) String() string {
	return fmt.Sprintf("Backup complete: %d %s copied, %d %s.",
		s.Copied, plural(s.Copied, "source", "sources"),
		s.Errors, plural(s.Errors, "error", "errors"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// 📋 FormatProfiles renders profiles as a table with one row per profile
func FormatProfiles(profiles []config.Profile) (string, error) {
	data := pterm.TableData{{"Profile", "Sources", "Destination"}}
	for _, p := range profiles {
		dest := "-"
		if p.BackupDestination != nil {
			dest = *p.BackupDestination
		}
		sources := "-"
		if len(p.Sources) > 0 {
			sources = strings.Join(p.Sources, "\n")
		}
		data = append(data, []string{p.Name, sources, dest})
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
