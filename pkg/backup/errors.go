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
	"fmt"
	"io/fs"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidDestination is fatal for a profile: the destination is unset, missing or not a directory.
	ErrInvalidDestination = errors.Base("invalid backup destination")
	// ErrSourceNotFound marks a source that is neither a file nor a directory.
	ErrSourceNotFound = errors.Base("source not found")
	// ErrPermissionDenied marks a copy that failed on permissions.
	ErrPermissionDenied = errors.Base("permission denied")
	// ErrCopyFailure marks any other failed copy.
	ErrCopyFailure = errors.Base("copy failed")
	// ErrVanishedDuringCopy is fatal: a classified source disappeared before the copy finished.
	ErrVanishedDuringCopy = errors.Base("source vanished during copy")
)

// 🏷️ Kind is the outcome category of a single source
type Kind int

const (
	KindCopied Kind = iota
	KindSourceNotFound
	KindPermissionDenied
	KindCopyFailure
	KindVanishedDuringCopy
)

func (k Kind) String() string {
	switch k {
	case KindCopied:
		return "copied"
	case KindSourceNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindCopyFailure:
		return "copy failure"
	case KindVanishedDuringCopy:
		return "vanished during copy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Err returns the sentinel error for the kind, nil for KindCopied.
func (k Kind) Err() error {
	switch k {
	case KindSourceNotFound:
		return ErrSourceNotFound
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindCopyFailure:
		return ErrCopyFailure
	case KindVanishedDuringCopy:
		return ErrVanishedDuringCopy
	default:
		return nil
	}
}

// 🔍 classify maps an error returned by a Copier to a Kind
func classify(err error) Kind {
	switch {
	case err == nil:
		return KindCopied
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return KindVanishedDuringCopy
	default:
		return KindCopyFailure
	}
}

// 🌳 TreeError collects the failures below the root of a directory copy.
// It only unwraps to ErrCopyFailure, so a nested missing or unreadable entry
// never classifies as a vanished source or a permission problem.
type TreeError struct {
	Source   string
	Failures []error
}

func (e *TreeError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("copying %s: %d entries failed: %s", e.Source, len(e.Failures), strings.Join(msgs, "; "))
}

func (e *TreeError) Unwrap() error {
	return ErrCopyFailure
}
