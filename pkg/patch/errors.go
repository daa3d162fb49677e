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

package patch

import (
	"fmt"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Kind classifies a patch failure
type Kind int

const (
	KindUnknown      Kind = iota
	KindNotFound                // target path does not exist
	KindAccessDenied            // read or write permission refused
	KindDecodeError             // content is not valid UTF-8
	KindWriteFailure            // writing the patched content failed
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAccessDenied:
		return "access denied"
	case KindDecodeError:
		return "decode error"
	case KindWriteFailure:
		return "write failure"
	default:
		return "unknown"
	}
}

// 🚨 Error is the terminal error reported for a failed patch operation.
// Exactly one is produced per failure; there is no retry or partial
// application behind it.
type Error struct {
	Kind Kind
	Path string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *Error) Unwrap() error {
	return e.err
}

// newError wraps err as a typed patch error for path
func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, err: err}
}

// kindOf extracts the Kind from an error chain
func kindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// 🔍 IsNotFound reports whether err is a missing-target error
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// 🔍 IsAccessDenied reports whether err is a permission error
func IsAccessDenied(err error) bool {
	return kindOf(err) == KindAccessDenied
}

// 🔍 IsDecodeError reports whether err is an encoding error
func IsDecodeError(err error) bool {
	return kindOf(err) == KindDecodeError
}

// 🔍 IsWriteFailure reports whether err is a failed-write error
func IsWriteFailure(err error) bool {
	return kindOf(err) == KindWriteFailure
}

// classifyReadError maps a read failure onto the error taxonomy. A path
// that does not exist is NotFound; anything else the filesystem refuses
// to hand over is AccessDenied.
func classifyReadError(path string, err error) *Error {
	if os.IsNotExist(err) {
		return newError(KindNotFound, path, err)
	}
	return newError(KindAccessDenied, path, err)
}
