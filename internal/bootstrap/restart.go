// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"io"
	"time"

	charmlog "github.com/charmbracelet/log"

	"runway-cli/internal/config"
	"runway-cli/internal/proc"
	"runway-cli/internal/python"
)

// Teardown clears a possibly-stale world: terminate lingering runtime
// processes, wait out the configured grace period, purge compiled
// bytecode caches. Everything is best-effort. A process list that
// cannot be read or a cache that cannot be removed is logged and
// skipped, since a stale cache degrades the app while a refused
// teardown stops the relaunch entirely.
func Teardown(ctx context.Context, cfg *config.Config, root string, logger *charmlog.Logger) {
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}

	sum, err := proc.KillByName(ctx, cfg.Restart.ProcessNames, proc.KillOptions{
		Grace:  time.Duration(cfg.Restart.Grace.Int()) * time.Second,
		Logger: logger,
	})
	if err != nil {
		logger.Warn("terminating stale processes", "err", err)
	} else {
		logger.Info("stale processes handled",
			"matched", sum.Matched, "exited", sum.Exited, "forced", sum.Forced)
	}

	purged, err := python.PurgeBytecode(root, cfg.Restart.PurgeDirs)
	if err != nil {
		logger.Warn("purging bytecode caches", "err", err)
	}
	for _, dir := range purged {
		logger.Info("purged bytecode cache", "dir", dir)
	}
}

// Restart runs Teardown and then the full launch sequence with no
// forwarded arguments.
func Restart(ctx context.Context, cfg *config.Config, root string, opts Options) (*Outcome, error) {
	Teardown(ctx, cfg, root, opts.Logger)
	return New(cfg, root, opts).Run(ctx, nil)
}
