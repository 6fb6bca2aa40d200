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

package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

const globMeta = "*?[{"

// 🔍 ExpandSources expands "~/" prefixes and glob patterns. A path that
// exists on disk is always taken literally, even when its name contains glob
// characters. A pattern that matches nothing, or is malformed, is kept as
// written so it is later reported as not found.
func ExpandSources(ctx context.Context, sources []string) []string {
	logger := zerolog.Ctx(ctx)
	expanded := make([]string, 0, len(sources))

	for _, src := range sources {
		path := expandHome(src)

		if !strings.ContainsAny(path, globMeta) {
			expanded = append(expanded, path)
			continue
		}

		if _, err := os.Lstat(path); err == nil {
			expanded = append(expanded, path)
			continue
		}

		matches, err := doublestar.FilepathGlob(path)
		if err != nil {
			logger.Debug().Err(err).Str("pattern", src).Msg("invalid source pattern")
			expanded = append(expanded, src)
			continue
		}
		if len(matches) == 0 {
			logger.Debug().Str("pattern", src).Msg("source pattern matched nothing")
			expanded = append(expanded, src)
			continue
		}

		logger.Debug().Str("pattern", src).Int("matches", len(matches)).Msg("expanded source pattern")
		expanded = append(expanded, matches...)
	}

	return expanded
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
