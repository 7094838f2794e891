// Copyright 2024 Alexandre Mahdhaoui
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

package cliopts

import (
	"errors"
	"fmt"
)

// PositionalHint is the positional-argument hint shown on every usage line.
const PositionalHint = "path..."

var (
	// ErrPathRequired is reported when no positional path is given.
	ErrPathRequired = errors.New("path required")
	// ErrMalformedHeader is reported when a --header value has no colon.
	ErrMalformedHeader = errors.New(`header must be in the form of "[header]: value"`)
	// ErrUsage wraps every parse, environment and callback failure.
	ErrUsage = errors.New("usage error")
)

// ExitError is the terminal outcome of option parsing.
//
// Code 0 means an informational exit (help, version, completion) and
// Message holds the text to print on stdout. Any other code is a usage
// error; Message then holds the diagnostic followed by the usage text.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code == 0 {
		return "exit requested"
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying cause, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Success reports whether the exit is informational.
func (e *ExitError) Success() bool {
	return e.Code == 0
}

// exitOK builds an informational ExitError.
func exitOK(message string) *ExitError {
	return &ExitError{Code: 0, Message: message}
}
