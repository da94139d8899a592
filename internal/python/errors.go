// SPDX-License-Identifier: MPL-2.0

package python

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeNotFound indicates no usable interpreter was found at any
	// of the probed locations.
	ErrRuntimeNotFound = errors.New("python runtime not found")

	// ErrEnvCreate indicates virtual environment creation failed.
	ErrEnvCreate = errors.New("virtual environment creation failed")

	// ErrEnvActivate indicates the virtual environment exists but cannot
	// be activated.
	ErrEnvActivate = errors.New("virtual environment activation failed")

	// ErrInstallFailed indicates a dependency installation run exited
	// with an error.
	ErrInstallFailed = errors.New("dependency installation failed")

	// ErrManifestInvalid indicates a dependency manifest could not be
	// parsed.
	ErrManifestInvalid = errors.New("invalid dependency manifest")

	// ErrPinsIncoherent indicates a pin set violates the catalog's
	// compatibility rules.
	ErrPinsIncoherent = errors.New("incoherent dependency pins")
)

// RuntimeNotFoundError reports every location probed for an interpreter.
type RuntimeNotFoundError struct {
	Searched []string
}

// Error implements the error interface for RuntimeNotFoundError.
func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("python runtime not found (searched %d locations)", len(e.Searched))
}

// Unwrap returns the underlying sentinel error.
func (e *RuntimeNotFoundError) Unwrap() error {
	return ErrRuntimeNotFound
}

// EnvCreateError carries the interpreter output from a failed virtual
// environment creation so the operator sees the real cause.
type EnvCreateError struct {
	Dir    string
	Output string
	Err    error
}

// Error implements the error interface for EnvCreateError.
func (e *EnvCreateError) Error() string {
	return fmt.Sprintf("creating virtual environment at %s: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *EnvCreateError) Unwrap() error {
	return ErrEnvCreate
}

// EnvActivateError explains why an existing virtual environment cannot
// be used.
type EnvActivateError struct {
	Dir    string
	Reason string
}

// Error implements the error interface for EnvActivateError.
func (e *EnvActivateError) Error() string {
	return fmt.Sprintf("activating virtual environment at %s: %s", e.Dir, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *EnvActivateError) Unwrap() error {
	return ErrEnvActivate
}

// InstallError wraps a failed pip run with the source that drove it,
// either a manifest path or a description of the package set.
type InstallError struct {
	Source string
	Err    error
}

// Error implements the error interface for InstallError.
func (e *InstallError) Error() string {
	return fmt.Sprintf("installing dependencies from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *InstallError) Unwrap() error {
	return ErrInstallFailed
}

// InvalidManifestError reports a manifest that exists but cannot be
// parsed.
type InvalidManifestError struct {
	Path string
	Err  error
}

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *InvalidManifestError) Unwrap() error {
	return ErrManifestInvalid
}
