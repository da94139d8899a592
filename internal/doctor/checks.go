// SPDX-License-Identifier: MPL-2.0

package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"runway-cli/internal/browser"
	"runway-cli/internal/config"
	"runway-cli/internal/hooks"
	"runway-cli/internal/proc"
	"runway-cli/internal/python"
	"runway-cli/internal/watch"
)

// versionProbeTimeout bounds the interpreter version query.
const versionProbeTimeout = 5 * time.Second

type (
	// Options adjust a doctor run.
	Options struct {
		// LaunchCheck opens the cached browser headless against a blank
		// page, proving the binary actually runs. Slower, so off by
		// default.
		LaunchCheck bool
		// Logger receives per-fix progress; nil discards it.
		Logger *charmlog.Logger
		// Stdout and Stderr receive subprocess output from fixes; nil
		// means the process streams.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Checker runs the project health checks.
	Checker struct {
		cfg    *config.Config
		root   string
		opts   Options
		logger *charmlog.Logger
		stdout io.Writer
		stderr io.Writer
	}
)

// New builds a Checker for the project at root.
func New(cfg *config.Config, root string, opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Checker{cfg: cfg, root: root, opts: opts, logger: logger, stdout: stdout, stderr: stderr}
}

// Check runs every check once and returns the results in report order.
// Later sections receive what earlier ones produced, so a missing
// runtime degrades the dependent checks to skips or unfixable failures
// instead of cascading errors.
func (c *Checker) Check(ctx context.Context) []Result {
	var results []Result

	rt, rtResults := c.checkRuntime(ctx)
	results = append(results, rtResults...)

	active, envResults := c.checkEnv(rt)
	results = append(results, envResults...)

	results = append(results, c.checkManifest()...)
	results = append(results, c.checkInstalled(ctx, active)...)
	results = append(results, c.checkBrowser(ctx, active)...)
	results = append(results, c.checkHooks()...)
	results = append(results, c.checkWatch()...)
	results = append(results, c.checkLogDir()...)
	results = append(results, c.checkProcesses(ctx)...)

	return results
}

func (c *Checker) checkRuntime(ctx context.Context) (*python.Runtime, []Result) {
	rt, err := python.Locate(c.root, c.cfg.Runtime.Path.String(), c.cfg.Runtime.Dir)
	if err != nil {
		return nil, []Result{Fail("runtime", err.Error(),
			"Re-run the installer to restore the bundled runtime, or set runtime.path in runway.cue")}
	}
	results := []Result{Pass("runtime", rt.Interpreter)}

	verCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	ver, err := rt.Version(verCtx)
	switch {
	case err != nil:
		results = append(results, Warn("runtime-version",
			fmt.Sprintf("interpreter did not report a version: %v", err)))
	case !ver.AtLeast(python.MinVersion.Major, python.MinVersion.Minor):
		results = append(results, Fail("runtime-version",
			fmt.Sprintf("%s is older than the supported minimum %s", ver, python.MinVersion),
			"Upgrade the bundled runtime"))
	default:
		results = append(results, Pass("runtime-version", ver.String()))
	}
	return rt, results
}

func (c *Checker) checkEnv(rt *python.Runtime) (*python.ActiveEnv, []Result) {
	env := python.NewEnv(c.root, c.cfg.Env.Dir)
	if !env.Healthy() {
		detail := fmt.Sprintf("no usable environment at %s", env.Dir)
		if rt == nil {
			return nil, []Result{Fail("virtualenv", detail,
				"Restore the runtime first, then re-run with --fix")}
		}
		// python -m venv refreshes a half-built environment in place, so
		// the repair never deletes anything.
		fix := func(ctx context.Context) error {
			_, err := env.Ensure(ctx, rt)
			return err
		}
		return nil, []Result{FailFixable("virtualenv", detail,
			"Run 'runway doctor --fix' to build it", fix)}
	}

	active, err := env.Activate()
	if err != nil {
		return nil, []Result{Fail("virtualenv", err.Error(),
			"Delete the environment directory and re-run 'runway up'")}
	}
	return active, []Result{Pass("virtualenv", env.Dir)}
}

func (c *Checker) checkManifest() []Result {
	m, ok := python.DetectManifest(c.root, c.cfg.Install.Manifests)
	if !ok {
		return []Result{Warn("manifest",
			"no dependency manifest found; the launch sequence skips installation")}
	}
	if _, err := m.Requirements(); err != nil {
		return []Result{Fail("manifest",
			fmt.Sprintf("%s: %v", filepath.Base(m.Path), err),
			"Fix the manifest so pip can read it")}
	}
	return []Result{Pass("manifest", filepath.Base(m.Path))}
}

func (c *Checker) checkInstalled(ctx context.Context, active *python.ActiveEnv) []Result {
	if active == nil {
		return []Result{Skip("packages", "skipped: no active environment")}
	}
	installed, err := python.ListInstalled(ctx, active)
	if err != nil {
		return []Result{Warn("packages",
			fmt.Sprintf("could not list installed packages: %v", err))}
	}

	pins := python.RequiredPins()
	drift := python.DiffPins(installed, pins)
	if drift.Clean() {
		return []Result{Pass("packages", fmt.Sprintf("%d pins satisfied", len(pins)))}
	}
	fix := func(ctx context.Context) error {
		return python.InstallPins(ctx, active, pins, python.InstallOptions{
			IndexURL: c.cfg.Install.IndexURL.String(),
			Stdout:   c.stdout,
			Stderr:   c.stderr,
		})
	}
	return []Result{FailFixable("packages", drift.Summary(),
		"Run 'runway deps sync'", fix)}
}

func (c *Checker) checkBrowser(ctx context.Context, active *python.ActiveEnv) []Result {
	cacheDir := browser.CacheDir(c.root, c.cfg.Browser.CacheDir.String())
	variants := make([]string, 0, len(c.cfg.Browser.Variants))
	for _, v := range c.cfg.Browser.Variants {
		variants = append(variants, v.String())
	}

	probe := browser.Probe(cacheDir, variants)
	if !probe.Found {
		detail := fmt.Sprintf("no browser binary under %s", cacheDir)
		if active == nil {
			return []Result{Fail("browser", detail,
				"Build the environment first, then re-run with --fix")}
		}
		mirrors := make([]string, 0, len(c.cfg.Browser.Mirrors))
		for _, m := range c.cfg.Browser.Mirrors {
			mirrors = append(mirrors, m.String())
		}
		fix := func(ctx context.Context) error {
			res, err := browser.Ensure(ctx, active, browser.FetchOptions{
				CacheDir: cacheDir,
				Mirrors:  mirrors,
				Logger:   c.logger,
				Stdout:   c.stdout,
				Stderr:   c.stderr,
			}, variants)
			if err != nil {
				return err
			}
			if res.Status != browser.StatusPresent && res.Status != browser.StatusFetched {
				return fmt.Errorf("cache still unusable after download (%s)", res.Status)
			}
			return nil
		}
		return []Result{FailFixable("browser", detail,
			"Run 'runway doctor --fix' to download one", fix)}
	}

	results := []Result{Pass("browser", probe.Variant)}
	if c.opts.LaunchCheck {
		if err := browser.Verify(ctx, probe.Path, browser.VerifyOptions{}); err != nil {
			results = append(results, Fail("browser-launch", err.Error(),
				"Delete the cache directory and re-run 'runway doctor --fix' for a fresh bundle"))
		} else {
			results = append(results, Pass("browser-launch", "headless launch ok"))
		}
	}
	return results
}

func (c *Checker) checkHooks() []Result {
	configured := []struct {
		name   string
		script string
	}{
		{"hook-pre-launch", c.cfg.Hooks.PreLaunch},
		{"hook-post-exit", c.cfg.Hooks.PostExit},
	}

	var results []Result
	for _, h := range configured {
		if h.script == "" {
			continue
		}
		if err := hooks.Validate(hooks.Hook{Name: h.name, Script: h.script}); err != nil {
			results = append(results, Fail(h.name, err.Error(),
				"Fix the hook script in runway.cue"))
		} else {
			results = append(results, Pass(h.name, "parses"))
		}
	}
	if len(results) == 0 {
		return []Result{Skip("hooks", "none configured")}
	}
	return results
}

func (c *Checker) checkWatch() []Result {
	wcfg := watch.Config{Patterns: c.cfg.Watch.Patterns, BaseDir: c.root}
	if err := wcfg.Validate(); err != nil {
		return []Result{Fail("watch-config", err.Error(),
			"Fix the watch.patterns globs in runway.cue")}
	}
	return []Result{Pass("watch-config", strings.Join(c.cfg.Watch.Patterns, ", "))}
}

func (c *Checker) checkLogDir() []Result {
	dir := c.cfg.App.LogDir
	if dir == "" {
		return []Result{Skip("log-dir", "capture disabled: no log dir configured")}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.root, dir)
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Capture creates the directory on demand, so absence is the
		// normal state of a fresh project.
		return []Result{Pass("log-dir", dir + " (created on first capture)")}
	case err != nil:
		return []Result{Fail("log-dir", err.Error(),
			"Check permissions on the log directory")}
	case !info.IsDir():
		return []Result{Fail("log-dir",
			fmt.Sprintf("%s exists but is not a directory", dir),
			"Move the file aside so session logs have somewhere to go")}
	default:
		return []Result{Pass("log-dir", dir)}
	}
}

// checkProcesses scans for processes already running under the
// configured application process names. Matching is by executable name,
// so unrelated interpreters on the host count too; the result is
// advisory either way and never fails the report.
func (c *Checker) checkProcesses(ctx context.Context) []Result {
	names := c.cfg.Restart.ProcessNames
	if len(names) == 0 {
		return []Result{Skip("app-processes", "no process names configured")}
	}
	pids, err := proc.FindByName(ctx, names)
	if err != nil {
		return []Result{Warn("app-processes", "process scan failed: "+err.Error())}
	}
	if len(pids) == 0 {
		return []Result{Pass("app-processes", "none matching "+strings.Join(names, "/"))}
	}
	return []Result{Warn("app-processes",
		fmt.Sprintf("%d matching %s; 'runway restart' replaces a stale session",
			len(pids), strings.Join(names, "/")))}
}
