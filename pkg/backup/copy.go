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
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Copier copies a single source into a destination directory
type Copier interface {
	// CopyFile copies src to destDir/<base name of src>
	CopyFile(ctx context.Context, src, destDir string) error
	// CopyDir copies the tree at src into destDir/<base name of src>,
	// merging with anything already there
	CopyDir(ctx context.Context, src, destDir string) error
}

// 💾 FSCopier copies on the local filesystem, keeping permissions and
// modification times.
type FSCopier struct{}

var _ Copier = FSCopier{}

func (FSCopier) CopyFile(ctx context.Context, src, destDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat %s: %w", src, err)
	}

	target := filepath.Join(destDir, filepath.Base(src))
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", target).Msg("copying file")

	return copyFile(src, target, info)
}

func (FSCopier) CopyDir(ctx context.Context, src, destDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat %s: %w", src, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", src, err)
	}

	target := filepath.Join(destDir, filepath.Base(src))
	if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
		return errors.Errorf("creating directory %s: %w", target, err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", target).Int("entries", len(entries)).Msg("copying directory")

	var failures []error
	copyTree(src, target, entries, &failures)

	if err := copyMetadata(target, info); err != nil {
		failures = append(failures, err)
	}

	if len(failures) > 0 {
		return &TreeError{Source: src, Failures: failures}
	}
	return nil
}

// copyTree copies entries of src into dst. Symlinks are followed.
func copyTree(src, dst string, entries []fs.DirEntry, failures *[]error) {
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		info, err := os.Stat(from)
		if err != nil {
			*failures = append(*failures, errors.Errorf("stat %s: %w", from, err))
			continue
		}

		switch {
		case info.IsDir():
			children, err := os.ReadDir(from)
			if err != nil {
				*failures = append(*failures, errors.Errorf("reading directory %s: %w", from, err))
				continue
			}
			if err := os.MkdirAll(to, info.Mode().Perm()|0o700); err != nil {
				*failures = append(*failures, errors.Errorf("creating directory %s: %w", to, err))
				continue
			}
			copyTree(from, to, children, failures)
			if err := copyMetadata(to, info); err != nil {
				*failures = append(*failures, err)
			}
		case info.Mode().IsRegular():
			if err := copyFile(from, to, info); err != nil {
				*failures = append(*failures, err)
			}
		default:
			*failures = append(*failures, errors.Errorf("%s: unsupported file type %s", from, info.Mode().Type()))
		}
	}
}

func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s: %w", src, err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}

	return copyMetadata(dst, info)
}

func copyMetadata(dst string, info fs.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting mode on %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}
