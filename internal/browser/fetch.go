// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"runway-cli/internal/python"
)

// ErrFetchFailed indicates every mirror rotation was exhausted without
// a successful download.
var ErrFetchFailed = errors.New("browser download failed")

// DefaultFetchAttempts is how many full mirror rotations a download
// gets before giving up.
const DefaultFetchAttempts = 3

// FetchOptions shapes a browser download run.
type FetchOptions struct {
	// CacheDir pins PLAYWRIGHT_BROWSERS_PATH for the install so the
	// bundle lands in the project cache.
	CacheDir string
	// Mirrors are tried in order within each attempt. The default host
	// is always appended as the last resort.
	Mirrors []string
	// Attempts is the number of full rotations; zero means
	// DefaultFetchAttempts.
	Attempts int
	// Logger receives per-mirror progress; nil silences it.
	Logger *log.Logger
	// Stdout and Stderr receive the installer's output.
	Stdout io.Writer
	Stderr io.Writer
}

// Rotation returns the download-host order for one attempt: the
// configured mirrors followed by "" for Playwright's default host.
func Rotation(mirrors []string) []string {
	return append(slices.Clone(mirrors), "")
}

// Fetch downloads the Chromium bundle through the environment's
// Playwright CLI, rotating download hosts between failures. A bundle
// that is already current makes the installer exit quickly, so calling
// Fetch on a populated cache is cheap.
func Fetch(ctx context.Context, active *python.ActiveEnv, opts FetchOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = DefaultFetchAttempts
	}

	rotation := Rotation(opts.Mirrors)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		for _, mirror := range rotation {
			if err := ctx.Err(); err != nil {
				return err
			}

			extra := CacheEnv(opts.CacheDir)
			if mirror != "" {
				extra[DownloadHostEnv] = mirror
			}
			logger.Info("downloading chromium bundle",
				"host", hostLabel(mirror), "attempt", attempt)

			runOpts := python.RunOptions{
				ExtraEnv: extra,
				Stdout:   opts.Stdout,
				Stderr:   opts.Stderr,
			}
			code, err := python.RunModule(ctx, active, "playwright", []string{"install", "chromium"}, runOpts)
			if err == nil && code == 0 {
				logger.Info("chromium bundle ready", "host", hostLabel(mirror))
				return nil
			}
			if err != nil {
				lastErr = err
			} else {
				lastErr = fmt.Errorf("installer exited with code %d via %s", code, hostLabel(mirror))
			}
			logger.Warn("download failed, rotating host",
				"host", hostLabel(mirror), "attempt", attempt, "err", lastErr)
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrFetchFailed, attempts, lastErr)
}

// Available reports whether the environment's Playwright CLI responds.
// A missing CLI means the dependency install was skipped or failed, so
// a download cannot even start.
func Available(ctx context.Context, active *python.ActiveEnv) bool {
	opts := python.RunOptions{Stdout: io.Discard, Stderr: io.Discard}
	code, err := python.RunModule(ctx, active, "playwright", []string{"--version"}, opts)
	return err == nil && code == 0
}

func hostLabel(mirror string) string {
	if mirror == "" {
		return "default host"
	}
	return mirror
}
