// SPDX-License-Identifier: MPL-2.0

package python

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Env is a project virtual environment rooted at Dir.
type Env struct {
	// Dir is the absolute path of the environment directory.
	Dir string
}

// NewEnv resolves dir against root when relative and returns the
// environment handle. No filesystem access happens here.
func NewEnv(root, dir string) *Env {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return &Env{Dir: dir}
}

// Interpreter returns the path of the in-environment python executable.
func (e *Env) Interpreter() string {
	return interpreterPath(e.Dir, runtime.GOOS)
}

// ScriptsDir returns the directory that must lead PATH while the
// environment is active.
func (e *Env) ScriptsDir() string {
	return scriptsDir(e.Dir, runtime.GOOS)
}

// Exists reports whether the environment directory holds a venv marker.
func (e *Env) Exists() bool {
	_, err := os.Stat(filepath.Join(e.Dir, "pyvenv.cfg"))
	return err == nil
}

// Healthy reports whether the environment can be activated as-is: the
// marker file and the in-environment interpreter are both present.
func (e *Env) Healthy() bool {
	if !e.Exists() {
		return false
	}
	_, err := os.Stat(e.Interpreter())
	return err == nil
}

func interpreterPath(dir, goos string) string {
	if goos == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

func scriptsDir(dir, goos string) string {
	if goos == "windows" {
		return filepath.Join(dir, "Scripts")
	}
	return filepath.Join(dir, "bin")
}

// Ensure creates the environment with the given interpreter unless a
// healthy one is already in place. The second return reports whether a
// new environment was created. Running it twice is safe: an intact
// environment is reused untouched, and `python -m venv` refreshes a
// partial one in place rather than failing.
func (e *Env) Ensure(ctx context.Context, rt *Runtime) (created bool, err error) {
	if e.Healthy() {
		return false, nil
	}
	cmd := exec.CommandContext(ctx, rt.Interpreter, "-m", "venv", e.Dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return false, &EnvCreateError{Dir: e.Dir, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return true, nil
}

// Activate validates the environment and returns the overlay that makes
// child processes run inside it. The launcher's own environment is
// never modified.
func (e *Env) Activate() (*ActiveEnv, error) {
	if !e.Exists() {
		return nil, &EnvActivateError{Dir: e.Dir, Reason: "pyvenv.cfg missing"}
	}
	interp := e.Interpreter()
	if _, err := os.Stat(interp); err != nil {
		return nil, &EnvActivateError{Dir: e.Dir, Reason: "interpreter missing at " + interp}
	}
	return &ActiveEnv{dir: e.Dir, interpreter: interp, scripts: e.ScriptsDir()}, nil
}

// ActiveEnv is a validated, ready-to-use virtual environment.
type ActiveEnv struct {
	dir         string
	interpreter string
	scripts     string
}

// Dir returns the environment directory.
func (a *ActiveEnv) Dir() string {
	return a.dir
}

// Interpreter returns the in-environment python executable.
func (a *ActiveEnv) Interpreter() string {
	return a.interpreter
}

// Environ overlays activation onto base: the scripts directory is
// prepended to PATH, VIRTUAL_ENV is set, and any inherited VIRTUAL_ENV
// or PYTHONHOME is dropped so the environment's own interpreter and
// stdlib win.
func (a *ActiveEnv) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)
	pathSeen := false
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			env = append(env, kv)
			continue
		}
		switch {
		case strings.EqualFold(k, "PATH"):
			env = append(env, k+"="+a.scripts+string(os.PathListSeparator)+v)
			pathSeen = true
		case strings.EqualFold(k, "VIRTUAL_ENV"), strings.EqualFold(k, "PYTHONHOME"):
			// dropped: stale values would point children at the wrong stdlib
		default:
			env = append(env, kv)
		}
	}
	if !pathSeen {
		env = append(env, "PATH="+a.scripts)
	}
	env = append(env, "VIRTUAL_ENV="+a.dir)
	return env
}
