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

package opts

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains the persistent flags shared by all commands
type RootOpts struct {
	Quiet   bool
	Verbose bool
	LogFile string

	logFile *os.File
}

// Level maps the verbosity flags to a log level.
func (o *RootOpts) Level() zerolog.Level {
	switch {
	case o.Quiet:
		return zerolog.WarnLevel
	case o.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Structured returns the writer for structured log events: the --log-file
// when set, io.Discard otherwise.
func (o *RootOpts) Structured() (io.Writer, error) {
	if o.LogFile == "" {
		return io.Discard, nil
	}
	if o.logFile != nil {
		return o.logFile, nil
	}

	f, err := os.OpenFile(o.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Errorf("opening log file: %w", err)
	}
	o.logFile = f
	return f, nil
}

// Close releases the log file, if one was opened.
func (o *RootOpts) Close() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}

// reportedError marks an error the command already logged for the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already shown to the user so main only sets the exit code.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was marked with Reported.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
