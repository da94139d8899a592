// SPDX-License-Identifier: MPL-2.0

package proc

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/process"

	"runway-cli/pkg/platform"
)

// DefaultGrace is how long a terminated process gets to exit on its
// own before it is force killed.
const DefaultGrace = 3 * time.Second

const defaultPoll = 100 * time.Millisecond

// KillOptions shapes a kill sweep.
type KillOptions struct {
	// Grace is the wait between the polite terminate and the force
	// kill. Zero means DefaultGrace.
	Grace time.Duration
	// Poll is how often survivors are rechecked during the grace
	// period. Zero means 100ms.
	Poll time.Duration
	// Logger receives per-process progress. Nil discards it.
	Logger *charmlog.Logger
}

// KillSummary reports what a kill sweep did.
type KillSummary struct {
	// Matched is how many processes carried a target name.
	Matched int
	// Exited is how many left within the grace period.
	Exited int
	// Forced is how many had to be force killed.
	Forced int
}

// KillByName terminates every process whose executable name matches
// one of names, waits out the grace period, then force kills the
// survivors. Matching ignores case and a ".exe" suffix, so "python"
// takes down "Python.exe" too. The sweep is best-effort: processes
// that vanish mid-scan or refuse inspection are skipped, and the
// current process is never a target.
func KillByName(ctx context.Context, names []string, opts KillOptions) (KillSummary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	grace := opts.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	poll := opts.Poll
	if poll <= 0 {
		poll = defaultPoll
	}

	matched, err := matchByName(ctx, names)
	if err != nil {
		return KillSummary{}, err
	}

	summary := KillSummary{Matched: len(matched)}
	if len(matched) == 0 {
		return summary, nil
	}

	for _, p := range matched {
		logger.Debug("terminating process", "pid", p.Pid)
		if err := p.TerminateWithContext(ctx); err != nil {
			logger.Debug("terminate failed", "pid", p.Pid, "err", err)
		}
	}

	survivors := waitForExit(ctx, matched, grace, poll)
	summary.Exited = len(matched) - len(survivors)

	for _, p := range survivors {
		logger.Warn("process ignored terminate, force killing", "pid", p.Pid)
		if err := p.KillWithContext(ctx); err != nil {
			logger.Debug("force kill failed", "pid", p.Pid, "err", err)
			continue
		}
		summary.Forced++
	}
	return summary, nil
}

// FindByName returns the PIDs of every process whose executable name
// matches one of names, under the same matching rules as KillByName.
// The current process is never included.
func FindByName(ctx context.Context, names []string) ([]int32, error) {
	matched, err := matchByName(ctx, names)
	if err != nil {
		return nil, err
	}
	pids := make([]int32, 0, len(matched))
	for _, p := range matched {
		pids = append(pids, p.Pid)
	}
	return pids, nil
}

// matchByName scans the process table for executables named like one of
// names, skipping the calling process and anything that refuses
// inspection.
func matchByName(ctx context.Context, names []string) ([]*process.Process, error) {
	targets := make([]string, 0, len(names))
	for _, n := range names {
		targets = append(targets, normalizeProcName(n))
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	self := int32(os.Getpid())
	var matched []*process.Process
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if !slices.Contains(targets, normalizeProcName(name)) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// waitForExit polls the matched set until every process is gone or the
// grace period lapses, returning whoever is still running.
func waitForExit(ctx context.Context, procs []*process.Process, grace, poll time.Duration) []*process.Process {
	deadline := time.Now().Add(grace)
	remaining := procs
	for {
		var alive []*process.Process
		for _, p := range remaining {
			running, err := p.IsRunningWithContext(ctx)
			if err == nil && !running {
				continue
			}
			alive = append(alive, p)
		}
		remaining = alive
		if len(remaining) == 0 || !time.Now().Before(deadline) {
			return remaining
		}
		select {
		case <-ctx.Done():
			return remaining
		case <-time.After(poll):
		}
	}
}

func normalizeProcName(name string) string {
	return platform.BareExeName(strings.ToLower(name))
}
