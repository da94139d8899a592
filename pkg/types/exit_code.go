// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

const (
	// Success means the launch sequence completed and the application ran.
	// The application's own exit code never replaces this; it is reported
	// as text only.
	Success ExitCode = 0
	// SetupFailure means a fatal precondition failed before the
	// application could run: missing runtime, environment creation or
	// activation failure.
	SetupFailure ExitCode = 1
)

type (
	// ExitCode is a process exit status. POSIX constrains it to 0-255;
	// the zero value is success.
	ExitCode int

	// InvalidExitCodeError reports an ExitCode outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is checks.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an InvalidExitCodeError when the code is outside the
// POSIX 0-255 range.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code is the success value.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the code in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
