// SPDX-License-Identifier: MPL-2.0

// Package hooks runs config-defined shell snippets in an embedded POSIX
// interpreter. Hooks behave the same on every OS because nothing here
// shells out to /bin/sh or cmd.exe.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrHookFailed marks any hook failure: bad syntax, a non-zero exit, or
// an interpreter error.
var ErrHookFailed = errors.New("hook failed")

// HookError reports a failed hook run.
type HookError struct {
	// Name is the hook point, e.g. "pre_launch".
	Name string
	// Code is the script's exit status, or -1 when it never ran.
	Code int
	// Err is the underlying cause, nil for a plain non-zero exit.
	Err error
}

func (e *HookError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("hook %s exited with status %d", e.Name, e.Code)
	}
	return fmt.Sprintf("hook %s: %v", e.Name, e.Err)
}

func (e *HookError) Unwrap() error { return ErrHookFailed }

// Hook is a named shell snippet from the hooks config section.
type Hook struct {
	// Name identifies the hook point in logs and errors.
	Name string
	// Script is the POSIX shell source. Empty means the hook is unset.
	Script string
}

// Options shapes a hook run.
type Options struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Environ is the full environment for the hook; nil means the
	// launcher's own. Callers pass the activated overlay so hooks see
	// the same PATH the app will.
	Environ []string
	// Stdin, Stdout and Stderr attach the hook's stdio; nil means the
	// launcher's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Validate parses the script without running it, reporting syntax
// errors. Doctor uses it to vet hooks before a launch ever runs them.
func Validate(h Hook) error {
	if h.Script == "" {
		return nil
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(h.Script), h.Name); err != nil {
		return &HookError{Name: h.Name, Code: -1, Err: fmt.Errorf("syntax error: %w", err)}
	}
	return nil
}

// Run executes the hook and blocks until it finishes. An unset hook is
// a no-op. A non-zero exit comes back as a *HookError carrying the
// status; callers decide whether that is fatal.
func Run(ctx context.Context, h Hook, opts Options) error {
	if h.Script == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(h.Script), h.Name)
	if err != nil {
		return &HookError{Name: h.Name, Code: -1, Err: fmt.Errorf("syntax error: %w", err)}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	stdin, stdout, stderr := opts.Stdin, opts.Stdout, opts.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	runner, err := interp.New(
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(stdin, stdout, stderr),
	)
	if err != nil {
		return &HookError{Name: h.Name, Code: -1, Err: fmt.Errorf("creating interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		if status, ok := errors.AsType[interp.ExitStatus](err); ok {
			return &HookError{Name: h.Name, Code: int(status)}
		}
		return &HookError{Name: h.Name, Code: -1, Err: err}
	}
	return nil
}
