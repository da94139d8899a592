// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"runway-cli/internal/bootstrap"
)

var restartCapture bool

// newRestartCommand creates the restart command: tear down stale state
// and run the launch sequence from scratch.
func newRestartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Stop stale processes, purge caches and relaunch",
		Long: `Terminate lingering runtime processes, wait out the configured grace
period, delete the compiled bytecode caches and run the launch
sequence again with no application arguments.

Teardown is best-effort: a process that cannot be killed or a cache
that cannot be removed is logged and skipped, and the relaunch
proceeds regardless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestart(cmd, app)
		},
	}
	cmd.Flags().BoolVar(&restartCapture, "capture", false, "tee application output into a session log")
	return cmd
}

func runRestart(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, root, err := projectContext(ctx, app)
	if err != nil {
		return err
	}

	opts := bootstrap.Options{
		Logger: newLogger(app.stderr),
		Stdin:  cmd.InOrStdin(),
		Stdout: app.stdout,
		Stderr: app.stderr,
		// A restart is usually triggered from a working terminal, not a
		// desktop shortcut, so the close prompt would only get in the way.
		SkipPause: true,
	}
	if restartCapture {
		opts.CaptureLogDir = cfg.App.LogDir
	}

	out, runErr := bootstrap.Restart(ctx, cfg, root, opts)
	if runErr != nil {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(runErr, verbose))
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: out.ExitCode}
	}
	return nil
}
