// SPDX-License-Identifier: MPL-2.0

package python

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"time"
)

// RunOptions shapes a script run inside the active environment.
type RunOptions struct {
	// Dir is the working directory for the child process.
	Dir string
	// ExtraEnv entries are appended after the activation overlay; a key
	// that collides with an inherited variable wins.
	ExtraEnv map[string]string
	// Stdin, Stdout and Stderr attach the child's stdio; nil means the
	// parent's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command builds the exec.Cmd that runs script with args inside the
// environment. Stdio is left unattached so callers can wire a terminal,
// a capture session, or pipes.
func Command(ctx context.Context, active *ActiveEnv, script string, args []string, opts RunOptions) *exec.Cmd {
	return command(ctx, active, append([]string{script}, args...), opts)
}

// ModuleCommand builds the exec.Cmd for `python -m module args...`
// inside the environment, stdio unattached.
func ModuleCommand(ctx context.Context, active *ActiveEnv, module string, args []string, opts RunOptions) *exec.Cmd {
	return command(ctx, active, append([]string{"-m", module}, args...), opts)
}

func command(ctx context.Context, active *ActiveEnv, argv []string, opts RunOptions) *exec.Cmd {
	cmd := exec.CommandContext(ctx, active.Interpreter(), argv...)
	cmd.Dir = opts.Dir
	env := active.Environ(os.Environ())
	for _, k := range slices.Sorted(maps.Keys(opts.ExtraEnv)) {
		env = append(env, k+"="+opts.ExtraEnv[k])
	}
	cmd.Env = env
	// On cancellation forward an interrupt first so the app can shut
	// down cleanly; the wait delay covers processes that ignore it.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 10 * time.Second
	return cmd
}

// Run executes script with args inside the environment and blocks until
// it exits. The child's exit code is returned as data: a non-zero exit
// is the app's business, not a launcher failure. err is non-nil only
// when the process could not run at all.
func Run(ctx context.Context, active *ActiveEnv, script string, args []string, opts RunOptions) (int, error) {
	return wait(Command(ctx, active, script, args, opts), script, opts)
}

// RunModule executes `python -m module args...` inside the environment
// with the same exit-code contract as Run.
func RunModule(ctx context.Context, active *ActiveEnv, module string, args []string, opts RunOptions) (int, error) {
	return wait(ModuleCommand(ctx, active, module, args, opts), module, opts)
}

func wait(cmd *exec.Cmd, name string, opts RunOptions) (int, error) {
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}
