// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"runway-cli/internal/bootstrap"
	"runway-cli/internal/config"
	"runway-cli/internal/watch"
)

var (
	upWatch   bool
	upCapture bool
	upNoPause bool
)

// newUpCommand creates the up command: run the launch sequence and
// start the application, forwarding everything after -- to it.
func newUpCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up [-- app-args...]",
		Short: "Prepare the environment and launch the application",
		Long: `Run the launch sequence: locate the bundled runtime, create or reuse
the virtual environment, install dependencies when a manifest is
present, point the browser tooling at the project cache, and start
the application. Arguments after -- are passed to the application
verbatim.

The launcher exits non-zero only when setup itself fails. The
application's own exit code is reported but never forwarded.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd, app, args)
		},
	}
	cmd.Flags().BoolVarP(&upWatch, "watch", "w", false, "relaunch the application when project files change")
	cmd.Flags().BoolVar(&upCapture, "capture", false, "tee application output into a session log")
	cmd.Flags().BoolVar(&upNoPause, "no-pause", false, "skip the close prompt after the application exits")
	return cmd
}

func runUp(cmd *cobra.Command, app *App, args []string) error {
	ctx := cmd.Context()
	cfg, root, err := projectContext(ctx, app)
	if err != nil {
		return err
	}

	logger := newLogger(app.stderr)
	opts := bootstrap.Options{
		Logger:    logger,
		Stdin:     cmd.InOrStdin(),
		Stdout:    app.stdout,
		Stderr:    app.stderr,
		SkipPause: upNoPause || upWatch,
	}
	if upCapture {
		opts.CaptureLogDir = cfg.App.LogDir
	}

	if upWatch {
		return runUpWatch(ctx, app, cfg, root, args, opts, logger)
	}

	out, runErr := bootstrap.New(cfg, root, opts).Run(ctx, args)
	if runErr != nil {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(runErr, verbose))
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: out.ExitCode}
	}
	return nil
}

// watchRunner keeps one launch alive at a time while the watcher feeds
// it change notifications. The launch runs in its own goroutine because
// it blocks for the application's whole lifetime; a relaunch tears the
// application down, which unblocks that goroutine, then waits for it to
// finish reporting before starting the next one.
type watchRunner struct {
	app    *App
	cfg    *config.Config
	root   string
	args   []string
	opts   bootstrap.Options
	logger *charmlog.Logger

	mu   sync.Mutex
	done chan struct{}
}

func (r *watchRunner) launch(ctx context.Context) {
	done := make(chan struct{})
	r.mu.Lock()
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		if _, err := bootstrap.New(r.cfg, r.root, r.opts).Run(ctx, r.args); err != nil {
			// Setup failures do not stop watch mode; the operator can fix
			// the project and save to trigger another attempt.
			fmt.Fprintf(r.app.stderr, "%s Launch failed: %s\n", WarningStyle.Render("!"), formatErrorForDisplay(err, verbose))
		}
	}()
}

// wait blocks until the current launch goroutine has finished.
func (r *watchRunner) wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *watchRunner) relaunch(ctx context.Context, changed []string) error {
	fmt.Fprintf(r.app.stdout, "%s Detected %d change(s). Relaunching...\n", VerboseHighlightStyle.Render("→"), len(changed))
	bootstrap.Teardown(ctx, r.cfg, r.root, r.logger)
	r.wait()
	if ctx.Err() != nil {
		return nil
	}
	r.launch(ctx)
	fmt.Fprintf(r.app.stdout, "\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
	return nil
}

func runUpWatch(ctx context.Context, app *App, cfg *config.Config, root string, args []string, opts bootstrap.Options, logger *charmlog.Logger) error {
	runner := &watchRunner{
		app:    app,
		cfg:    cfg,
		root:   root,
		args:   args,
		opts:   opts,
		logger: logger,
	}

	watchCfg := watch.Config{
		Patterns: cfg.Watch.Patterns,
		Ignore:   launcherIgnores(cfg),
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		BaseDir:  root,
		OnChange: runner.relaunch,
		Stdout:   app.stdout,
		Stderr:   app.stderr,
	}

	w, err := watch.New(watchCfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial launch\n", VerboseHighlightStyle.Render("→"))
	runner.launch(ctx)
	fmt.Fprintf(app.stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", VerboseHighlightStyle.Render("→"))

	runErr := w.Run(ctx)

	// Ctrl+C cancels the context, which interrupts the application; the
	// in-flight launch still owns the report, so wait it out.
	runner.wait()
	return runErr
}

// launcherIgnores returns the launcher's own working directories as
// ignore globs. Environment builds, browser downloads and session logs
// all write inside the project tree and must never trigger a relaunch.
func launcherIgnores(cfg *config.Config) []string {
	dirs := []string{
		cfg.Runtime.Dir,
		cfg.Env.Dir,
		cfg.Browser.CacheDir.String(),
		cfg.App.LogDir,
	}
	ignores := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		ignores = append(ignores, filepath.ToSlash(filepath.Clean(dir))+"/**")
	}
	return ignores
}
