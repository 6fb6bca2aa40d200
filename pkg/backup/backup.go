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
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/kachi/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📢 Logger is the logging capability the executor reports through
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// 📄 SourceResult is what happened to one source
type SourceResult struct {
	Path string
	Kind Kind
	Err  error
}

// 📊 Outcome is the result of backing up one or more profiles
type Outcome struct {
	NotFound []string
	Success  int
	Errors   int
	Results  []SourceResult
}

// Add appends other to o.
func (o *Outcome) Add(other Outcome) {
	o.NotFound = append(o.NotFound, other.NotFound...)
	o.Success += other.Success
	o.Errors += other.Errors
	o.Results = append(o.Results, other.Results...)
}

// 🔧 Option configures an Executor
type Option func(*Executor)

// WithCopier replaces the filesystem copier.
func WithCopier(c Copier) Option {
	return func(e *Executor) {
		e.copier = c
	}
}

// 🏃 Executor backs up profiles one source at a time
type Executor struct {
	log    Logger
	copier Copier
}

// 🏭 New creates an executor reporting through logger
func New(logger Logger, opts ...Option) *Executor {
	e := &Executor{
		log:    logger,
		copier: FSCopier{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// 💾 BackupProfile copies every source of profile into its destination.
//
// An unset, missing or non-directory destination returns
// ErrInvalidDestination before any source is touched. Missing sources,
// permission problems and other copy failures are logged and counted. A
// source that disappears while it is being copied returns
// ErrVanishedDuringCopy and stops the run.
func (e *Executor) BackupProfile(ctx context.Context, profile config.Profile) (Outcome, error) {
	var out Outcome

	dest, err := e.validateDestination(profile)
	if err != nil {
		return out, err
	}

	e.log.Info(fmt.Sprintf("Backing up profile: %s", profile))

	for _, src := range ExpandSources(ctx, profile.Sources) {
		result := e.backupSource(ctx, src, dest)
		out.Results = append(out.Results, result)

		switch result.Kind {
		case KindCopied:
			out.Success++
		case KindSourceNotFound:
			out.NotFound = append(out.NotFound, src)
			out.Errors++
		case KindVanishedDuringCopy:
			return out, result.Err
		default:
			out.Errors++
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("profile", profile.Name).
		Int("success", out.Success).
		Int("errors", out.Errors).
		Int("not_found", len(out.NotFound)).
		Msg("profile backed up")

	return out, nil
}

// BackupProfiles runs BackupProfile for each profile in order and stops at
// the first fatal error.
func (e *Executor) BackupProfiles(ctx context.Context, profiles []config.Profile) (Outcome, error) {
	var total Outcome
	for _, p := range profiles {
		out, err := e.BackupProfile(ctx, p)
		total.Add(out)
		if err != nil {
			return total, errors.Errorf("backing up profile %s: %w", p.Name, err)
		}
	}
	return total, nil
}

// 📝 LogNotFound warns about sources that were not backed up. It is a no-op
// for an empty list.
func (e *Executor) LogNotFound(paths []string) {
	if len(paths) == 0 {
		return
	}

	noun := "sources"
	if len(paths) == 1 {
		noun = "source"
	}
	e.log.Warning(fmt.Sprintf("%d %s not backed up.", len(paths), noun))

	for _, p := range paths {
		e.log.Warning(fmt.Sprintf("Source not found: %s", p))
	}
}

func (e *Executor) validateDestination(profile config.Profile) (string, error) {
	if profile.BackupDestination == nil {
		e.log.Error(fmt.Sprintf("Profile %s has no backup destination", profile.Name))
		return "", errors.Errorf("%w: profile %s has no backup_destination", ErrInvalidDestination, profile.Name)
	}

	dest := *profile.BackupDestination
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		e.log.Error(fmt.Sprintf("Destination is not a directory: %s", dest))
		return "", errors.Errorf("%w: %s", ErrInvalidDestination, dest)
	}

	return dest, nil
}

func (e *Executor) backupSource(ctx context.Context, src, dest string) SourceResult {
	info, err := os.Stat(src)
	switch {
	case err == nil && info.Mode().IsRegular():
		return e.finish(src, dest, e.copier.CopyFile(ctx, src, dest),
			fmt.Sprintf("Backed up %s to %s", src, dest))
	case err == nil && info.IsDir():
		return e.finish(src, dest, e.copier.CopyDir(ctx, src, dest),
			fmt.Sprintf("Backed up directory, all subdirectories, and files for %s to %s", src, dest))
	default:
		e.log.Error(fmt.Sprintf("%s not found", src))
		return SourceResult{Path: src, Kind: KindSourceNotFound, Err: errors.Errorf("%w: %s", ErrSourceNotFound, src)}
	}
}

func (e *Executor) finish(src, dest string, err error, success string) SourceResult {
	kind := classify(err)

	switch kind {
	case KindCopied:
		e.log.Info(success)
		return SourceResult{Path: src, Kind: kind}
	case KindPermissionDenied:
		e.log.Error(fmt.Sprintf("Permission denied while accessing %s. Please check file/folder permissions.", src))
		e.log.Warning(fmt.Sprintf("Skipping %s due to permission error.", src))
	case KindVanishedDuringCopy:
		e.log.Error(fmt.Sprintf("%s disappeared while being copied to %s", src, dest))
	default:
		e.log.Error(fmt.Sprintf("Unable to backup %s", src))
		e.log.Error(fmt.Sprintf("Error details: %s", err))
	}

	return SourceResult{Path: src, Kind: kind, Err: errors.Errorf("%w: %s: %s", kind.Err(), src, err.Error())}
}
