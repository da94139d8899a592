// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"context"
	"fmt"

	"runway-cli/internal/python"
)

// EnsureStatus summarizes how Ensure left the cache.
type EnsureStatus string

const (
	// StatusPresent means the probe matched before any download.
	StatusPresent EnsureStatus = "present"
	// StatusFetched means a download ran and the probe now matches.
	StatusFetched EnsureStatus = "fetched"
	// StatusUnavailable means the environment has no Playwright CLI, so
	// nothing could be downloaded.
	StatusUnavailable EnsureStatus = "unavailable"
	// StatusFailed means every download attempt failed or the bundle
	// landed in an unrecognized layout.
	StatusFailed EnsureStatus = "failed"
)

// EnsureResult reports the final cache state.
type EnsureResult struct {
	Status EnsureStatus
	// Probe is the probe outcome Ensure finished with.
	Probe ProbeResult
}

// Ensure makes a best effort to end with a usable browser in the
// cache: probe first, and only on a miss download through the mirror
// rotation and probe again. The returned error is advisory; callers
// log it and continue, the launch does not depend on it.
func Ensure(ctx context.Context, active *python.ActiveEnv, opts FetchOptions, variants []string) (EnsureResult, error) {
	probe := Probe(opts.CacheDir, variants)
	if probe.Found {
		return EnsureResult{Status: StatusPresent, Probe: probe}, nil
	}

	if !Available(ctx, active) {
		return EnsureResult{Status: StatusUnavailable, Probe: probe}, nil
	}

	if err := Fetch(ctx, active, opts); err != nil {
		return EnsureResult{Status: StatusFailed, Probe: probe}, err
	}

	final := Probe(opts.CacheDir, variants)
	if !final.Found {
		return EnsureResult{Status: StatusFailed, Probe: final},
			fmt.Errorf("download finished but no variant appeared under %s", opts.CacheDir)
	}
	return EnsureResult{Status: StatusFetched, Probe: final}, nil
}
