// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"runway-cli/internal/browser"
	"runway-cli/internal/config"
	"runway-cli/internal/python"
	"runway-cli/pkg/types"
)

type (
	// Options shapes a pipeline run beyond what config provides.
	Options struct {
		// Logger receives step progress; nil discards it.
		Logger *charmlog.Logger
		// Stdin, Stdout and Stderr attach the run's streams; nil means
		// the launcher's own. The application child inherits them.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// CaptureLogDir, when non-empty, tees the application's output
		// into a timestamped session log under that directory.
		CaptureLogDir string
		// SkipPause suppresses the operator acknowledgment prompt even
		// when config asks for it. Watch and restart runs set it.
		SkipPause bool
	}

	// Step is one unit of the launch sequence: a name plus the function
	// that does the work against the shared run state.
	Step struct {
		Name StepName
		run  func(ctx context.Context, st *state) StepResult
	}

	// Pipeline runs the launch sequence for one project root.
	Pipeline struct {
		cfg    *config.Config
		root   string
		opts   Options
		logger *charmlog.Logger
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Outcome summarizes a finished (or aborted) run.
	Outcome struct {
		// RunID uniquely names this run; capture logs carry its prefix.
		RunID string
		// Steps holds one result per executed step, in order. An
		// aborted run ends at its failed step.
		Steps []StepResult
		// Browser is the probe result, zero if the probe never ran.
		Browser browser.ProbeResult
		// AppExit is the application's exit code, meaningful only when
		// the launch step ran. It is diagnostic; it never becomes the
		// launcher's exit code.
		AppExit int
		// CaptureLog is the session log path when capture was on.
		CaptureLog string
		// ExitCode is what the launcher process should exit with.
		ExitCode types.ExitCode
	}

	// state carries values produced by earlier steps to later ones.
	state struct {
		args       []string
		runID      string
		runtime    *python.Runtime
		env        *python.Env
		active     *python.ActiveEnv
		cacheDir   string
		browserEnv map[string]string
		probe      browser.ProbeResult
		appExit    int
		captureLog string
	}
)

// New builds a Pipeline for the project at root.
func New(cfg *config.Config, root string, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Pipeline{
		cfg:    cfg,
		root:   root,
		opts:   opts,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Steps returns the launch sequence in order.
func (p *Pipeline) Steps() []Step {
	return []Step{
		{Name: StepLocateRuntime, run: p.locateRuntime},
		{Name: StepEnsureEnv, run: p.ensureEnv},
		{Name: StepActivateEnv, run: p.activateEnv},
		{Name: StepInstallDeps, run: p.installDeps},
		{Name: StepBrowserCache, run: p.browserCache},
		{Name: StepProbeBrowser, run: p.probeBrowser},
		{Name: StepRunChecker, run: p.runChecker},
		{Name: StepLaunchApp, run: p.launchApp},
		{Name: StepReport, run: p.report},
	}
}

// Run executes the launch sequence, forwarding args verbatim to the
// application. It returns the outcome and, for a fatal setup failure,
// the actionable error that aborted the run. The application's own
// exit code never surfaces as an error.
func (p *Pipeline) Run(ctx context.Context, forwardedArgs []string) (*Outcome, error) {
	runID := uuid.NewString()
	st := &state{args: forwardedArgs, runID: runID}
	out := &Outcome{RunID: runID, ExitCode: types.Success}

	p.logger.Info("launch sequence starting", "run", runID, "root", p.root)

	for _, step := range p.Steps() {
		res := step.run(ctx, st)
		res.Step = step.Name
		out.Steps = append(out.Steps, res)

		switch res.Status {
		case StatusOK:
			p.logger.Info(step.Name.String(), "status", res.Status, "detail", res.Detail)
		case StatusSkipped:
			p.logger.Info(step.Name.String(), "status", res.Status, "detail", res.Detail)
		case StatusWarned:
			p.logger.Warn(step.Name.String(), "detail", res.Detail, "err", res.Err)
		case StatusFailed:
			p.logger.Error(step.Name.String(), "err", res.Err)
			out.ExitCode = types.SetupFailure
			return out, res.Err
		}
	}

	out.Browser = st.probe
	out.AppExit = st.appExit
	out.CaptureLog = st.captureLog
	return out, nil
}
