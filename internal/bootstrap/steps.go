// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"runway-cli/internal/browser"
	"runway-cli/internal/hooks"
	"runway-cli/internal/issue"
	"runway-cli/internal/proc"
	"runway-cli/internal/python"
)

// versionProbeTimeout bounds the interpreter version query so a wedged
// interpreter cannot stall the whole launch. The version is cosmetic.
const versionProbeTimeout = 5 * time.Second

func (p *Pipeline) locateRuntime(ctx context.Context, st *state) StepResult {
	rt, err := python.Locate(p.root, p.cfg.Runtime.Path.String(), p.cfg.Runtime.Dir)
	if err != nil {
		return failResult(issue.NewErrorContext().
			WithOperation("locate python runtime").
			WithResource(filepath.Join(p.root, p.cfg.Runtime.Dir)).
			WithSuggestion("Re-run the installer to restore the bundled runtime").
			WithSuggestion("Set runtime.path in runway.cue to an existing interpreter").
			WithSuggestion("Run 'runway explain runtime-not-found' for details").
			Wrap(err).
			BuildError())
	}
	st.runtime = rt

	detail := rt.Interpreter
	verCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	if ver, verr := rt.Version(verCtx); verr == nil {
		detail = fmt.Sprintf("%s (%s)", rt.Interpreter, ver)
	}
	return okResult(detail)
}

func (p *Pipeline) ensureEnv(ctx context.Context, st *state) StepResult {
	st.env = python.NewEnv(p.root, p.cfg.Env.Dir)
	created, err := st.env.Ensure(ctx, st.runtime)
	if err != nil {
		return failResult(issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(st.env.Dir).
			WithSuggestion("Check free disk space and directory permissions").
			WithSuggestion("Delete the environment directory and run again").
			Wrap(err).
			BuildError())
	}
	if created {
		return okResult("created " + st.env.Dir)
	}
	return okResult("reused existing environment at " + st.env.Dir)
}

func (p *Pipeline) activateEnv(_ context.Context, st *state) StepResult {
	active, err := st.env.Activate()
	if err != nil {
		return failResult(issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(st.env.Dir).
			WithSuggestion("Run 'runway restart' to rebuild the environment from a clean slate").
			Wrap(err).
			BuildError())
	}
	st.active = active
	return okResult(st.env.Dir)
}

func (p *Pipeline) installDeps(ctx context.Context, st *state) StepResult {
	m, ok := python.DetectManifest(p.root, p.cfg.Install.Manifests)
	if !ok {
		return skipResult("no dependency manifest found")
	}
	opts := python.InstallOptions{
		IndexURL: p.cfg.Install.IndexURL.String(),
		Stdout:   p.stdout,
		Stderr:   p.stderr,
	}
	if err := python.Install(ctx, st.active, m, p.root, opts); err != nil {
		// A prior run may have left a usable package set, so the launch
		// still gets its chance.
		return warnResult("continuing with previously installed packages", err)
	}
	return okResult("installed from " + filepath.Base(m.Path))
}

func (p *Pipeline) browserCache(_ context.Context, st *state) StepResult {
	st.cacheDir = browser.CacheDir(p.root, p.cfg.Browser.CacheDir.String())
	st.browserEnv = browser.CacheEnv(st.cacheDir)
	if host := p.cfg.Browser.DownloadHost.String(); host != "" {
		st.browserEnv[browser.DownloadHostEnv] = host
	}
	return okResult(st.cacheDir)
}

func (p *Pipeline) probeBrowser(_ context.Context, st *state) StepResult {
	variants := make([]string, 0, len(p.cfg.Browser.Variants))
	for _, v := range p.cfg.Browser.Variants {
		variants = append(variants, v.String())
	}
	st.probe = browser.Probe(st.cacheDir, variants)
	if st.probe.Found {
		return okResult("found " + st.probe.Variant)
	}
	return warnResult(fmt.Sprintf("no browser binary under %s; run 'runway doctor --fix' to fetch one", st.cacheDir), nil)
}

func (p *Pipeline) runChecker(ctx context.Context, st *state) StepResult {
	if !p.cfg.Checker.Enabled || p.cfg.Checker.Script == "" {
		return skipResult("checker disabled")
	}
	script := p.cfg.Checker.Script
	if !filepath.IsAbs(script) {
		script = filepath.Join(p.root, script)
	}
	if _, err := os.Stat(script); err != nil {
		return warnResult("checker script not found at "+script, nil)
	}
	code, err := python.Run(ctx, st.active, script, nil, python.RunOptions{
		Dir:      p.root,
		ExtraEnv: st.browserEnv,
		Stdin:    p.stdin,
		Stdout:   p.stdout,
		Stderr:   p.stderr,
	})
	if err != nil {
		return warnResult("checker could not run", err)
	}
	if code != 0 {
		return warnResult(fmt.Sprintf("checker exited with code %d", code), nil)
	}
	return okResult("checker passed")
}

func (p *Pipeline) launchApp(ctx context.Context, st *state) StepResult {
	entry := p.cfg.App.Entry
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(p.root, entry)
	}

	hookEnv := p.hookEnviron(st)
	p.runHook(ctx, "pre_launch", p.cfg.Hooks.PreLaunch, hookEnv)

	code, err := p.runApp(ctx, st, entry)

	p.runHook(ctx, "post_exit", p.cfg.Hooks.PostExit, hookEnv)

	if err != nil {
		st.appExit = -1
		return warnResult("application could not start", err)
	}
	st.appExit = code
	if code != 0 {
		return okResult(fmt.Sprintf("application exited with code %d", code))
	}
	return okResult("application exited cleanly")
}

// runApp blocks until the application exits. With capture enabled the
// child's output is teed into a session log; otherwise it inherits the
// run's streams directly.
func (p *Pipeline) runApp(ctx context.Context, st *state, entry string) (int, error) {
	opts := python.RunOptions{Dir: p.root, ExtraEnv: st.browserEnv}
	if p.opts.CaptureLogDir == "" {
		opts.Stdin = p.stdin
		opts.Stdout = p.stdout
		opts.Stderr = p.stderr
		return python.Run(ctx, st.active, entry, st.args, opts)
	}

	dir := p.opts.CaptureLogDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.root, dir)
	}
	logPath := filepath.Join(dir, proc.SessionLogName(time.Now(), st.runID[:8]))
	cmd := python.Command(ctx, st.active, entry, st.args, opts)
	session, err := proc.StartCapture(cmd, logPath, p.stdout)
	if err != nil {
		return -1, err
	}
	st.captureLog = session.LogPath()
	return session.Wait()
}

// hookEnviron assembles the environment hooks run under: the activation
// overlay plus the browser cache variables, so a hook sees the same
// world the application will.
func (p *Pipeline) hookEnviron(st *state) []string {
	env := st.active.Environ(os.Environ())
	for _, k := range slices.Sorted(maps.Keys(st.browserEnv)) {
		env = append(env, k+"="+st.browserEnv[k])
	}
	return env
}

// runHook executes one configured hook. Hook failures are advisory: the
// launch already happened or is about to, and a broken hook must not
// take it down.
func (p *Pipeline) runHook(ctx context.Context, name, script string, environ []string) {
	err := hooks.Run(ctx, hooks.Hook{Name: name, Script: script}, hooks.Options{
		Dir:     p.root,
		Environ: environ,
		Stdin:   p.stdin,
		Stdout:  p.stdout,
		Stderr:  p.stderr,
	})
	if err != nil {
		p.logger.Warn("hook failed", "hook", name, "err", err)
	}
}
