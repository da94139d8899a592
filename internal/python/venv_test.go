// SPDX-License-Identifier: MPL-2.0

package python

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"runway-cli/internal/testutil"
)

func TestNewEnv(t *testing.T) {
	t.Parallel()

	t.Run("relative dir joins root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		env := NewEnv(root, ".venv")
		if want := filepath.Join(root, ".venv"); env.Dir != want {
			t.Errorf("Dir = %q, want %q", env.Dir, want)
		}
	})

	t.Run("absolute dir kept", func(t *testing.T) {
		t.Parallel()

		abs := t.TempDir()
		env := NewEnv("ignored", abs)
		if env.Dir != abs {
			t.Errorf("Dir = %q, want %q", env.Dir, abs)
		}
	})
}

func TestEnvLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		goos        string
		wantInterp  string
		wantScripts string
	}{
		{
			name:        "windows",
			goos:        "windows",
			wantInterp:  filepath.Join("env", "Scripts", "python.exe"),
			wantScripts: filepath.Join("env", "Scripts"),
		},
		{
			name:        "linux",
			goos:        "linux",
			wantInterp:  filepath.Join("env", "bin", "python"),
			wantScripts: filepath.Join("env", "bin"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := interpreterPath("env", tt.goos); got != tt.wantInterp {
				t.Errorf("interpreterPath = %q, want %q", got, tt.wantInterp)
			}
			if got := scriptsDir("env", tt.goos); got != tt.wantScripts {
				t.Errorf("scriptsDir = %q, want %q", got, tt.wantScripts)
			}
		})
	}
}

func TestEnv_ExistsAndHealthy(t *testing.T) {
	t.Parallel()

	env := NewEnv(t.TempDir(), ".venv")
	if env.Exists() {
		t.Error("Exists() = true for an empty directory")
	}
	if env.Healthy() {
		t.Error("Healthy() = true for an empty directory")
	}

	testutil.MustWriteFile(t, filepath.Join(env.Dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644)
	if !env.Exists() {
		t.Error("Exists() = false after writing pyvenv.cfg")
	}
	if env.Healthy() {
		t.Error("Healthy() = true without an interpreter")
	}

	testutil.MustWriteFile(t, env.Interpreter(), []byte("stub"), 0o755)
	if !env.Healthy() {
		t.Error("Healthy() = false with marker and interpreter present")
	}
}

// venvStub is a fake interpreter that materializes a minimal virtual
// environment when invoked as `python -m venv <dir>`.
const venvStub = `if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  mkdir -p "$3/bin"
  : > "$3/pyvenv.cfg"
  printf '#!/bin/sh\nexit 0\n' > "$3/bin/python"
  chmod +x "$3/bin/python"
fi`

func TestEnv_Ensure_CreatesThenReuses(t *testing.T) {
	t.Parallel()
	testutil.RequireUnixShell(t)

	root := t.TempDir()
	interp := testutil.MustWriteScript(t, filepath.Join(root, "runtime", "bin", "python3"), venvStub)
	rt := &Runtime{Interpreter: interp, Source: RuntimeSourceBundled}
	env := NewEnv(root, ".venv")

	created, err := env.Ensure(context.Background(), rt)
	if err != nil {
		t.Fatalf("Ensure() unexpected error: %v", err)
	}
	if !created {
		t.Error("Ensure() created = false on first run")
	}
	if !env.Healthy() {
		t.Fatal("environment not healthy after creation")
	}

	// A marker file must survive the second run: a healthy environment
	// is reused, never rebuilt.
	marker := filepath.Join(env.Dir, "keep.txt")
	testutil.MustWriteFile(t, marker, []byte("keep"), 0o644)

	created, err = env.Ensure(context.Background(), rt)
	if err != nil {
		t.Fatalf("Ensure() unexpected error on second run: %v", err)
	}
	if created {
		t.Error("Ensure() created = true for a healthy environment")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("marker file did not survive reuse: %v", err)
	}
}

func TestEnv_Ensure_CreateFailure(t *testing.T) {
	t.Parallel()
	testutil.RequireUnixShell(t)

	root := t.TempDir()
	interp := testutil.MustWriteScript(t, filepath.Join(root, "runtime", "bin", "python3"),
		`echo "boom: no ensurepip" >&2
exit 1`)
	rt := &Runtime{Interpreter: interp, Source: RuntimeSourceBundled}
	env := NewEnv(root, ".venv")

	created, err := env.Ensure(context.Background(), rt)
	if created {
		t.Error("Ensure() created = true despite failure")
	}
	if !errors.Is(err, ErrEnvCreate) {
		t.Fatalf("error does not wrap ErrEnvCreate: %v", err)
	}

	createErr, ok := errors.AsType[*EnvCreateError](err)
	if !ok {
		t.Fatalf("error is not *EnvCreateError: %v", err)
	}
	if createErr.Dir != env.Dir {
		t.Errorf("Dir = %q, want %q", createErr.Dir, env.Dir)
	}
	if want := "boom: no ensurepip"; createErr.Output != want {
		t.Errorf("Output = %q, want %q", createErr.Output, want)
	}
}

func TestEnv_Activate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	env := NewEnv(root, ".venv")
	testutil.MustWriteFile(t, filepath.Join(env.Dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644)
	testutil.MustWriteFile(t, env.Interpreter(), []byte("stub"), 0o755)

	active, err := env.Activate()
	if err != nil {
		t.Fatalf("Activate() unexpected error: %v", err)
	}
	if active.Dir() != env.Dir {
		t.Errorf("Dir() = %q, want %q", active.Dir(), env.Dir)
	}
	if active.Interpreter() != env.Interpreter() {
		t.Errorf("Interpreter() = %q, want %q", active.Interpreter(), env.Interpreter())
	}
}

func TestEnv_Activate_MissingMarker(t *testing.T) {
	t.Parallel()

	env := NewEnv(t.TempDir(), ".venv")
	_, err := env.Activate()
	if !errors.Is(err, ErrEnvActivate) {
		t.Fatalf("error does not wrap ErrEnvActivate: %v", err)
	}

	actErr, ok := errors.AsType[*EnvActivateError](err)
	if !ok {
		t.Fatalf("error is not *EnvActivateError: %v", err)
	}
	if want := "pyvenv.cfg missing"; actErr.Reason != want {
		t.Errorf("Reason = %q, want %q", actErr.Reason, want)
	}
}

func TestEnv_Activate_MissingInterpreter(t *testing.T) {
	t.Parallel()

	env := NewEnv(t.TempDir(), ".venv")
	testutil.MustWriteFile(t, filepath.Join(env.Dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644)

	_, err := env.Activate()
	if !errors.Is(err, ErrEnvActivate) {
		t.Fatalf("error does not wrap ErrEnvActivate: %v", err)
	}
}

func TestActiveEnv_Environ(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	active := &ActiveEnv{
		dir:         filepath.Join("proj", ".venv"),
		interpreter: filepath.Join("proj", ".venv", "bin", "python"),
		scripts:     filepath.Join("proj", ".venv", "bin"),
	}

	base := []string{
		"PATH=/usr/bin",
		"VIRTUAL_ENV=/stale",
		"PYTHONHOME=/stale/python",
		"HOME=/home/op",
		"MALFORMED",
	}
	got := active.Environ(base)
	want := []string{
		"PATH=" + active.scripts + sep + "/usr/bin",
		"HOME=/home/op",
		"MALFORMED",
		"VIRTUAL_ENV=" + active.dir,
	}
	if !slices.Equal(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestActiveEnv_Environ_MixedCasePath(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	active := &ActiveEnv{dir: "venv", interpreter: "venv/bin/python", scripts: "venv/bin"}

	got := active.Environ([]string{"Path=C:/bin"})
	want := []string{
		"Path=venv/bin" + sep + "C:/bin",
		"VIRTUAL_ENV=venv",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestActiveEnv_Environ_NoInheritedPath(t *testing.T) {
	t.Parallel()

	active := &ActiveEnv{dir: "venv", interpreter: "venv/bin/python", scripts: "venv/bin"}

	got := active.Environ([]string{"HOME=/home/op"})
	want := []string{
		"HOME=/home/op",
		"PATH=venv/bin",
		"VIRTUAL_ENV=venv",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestEnvLayout_CurrentPlatform(t *testing.T) {
	t.Parallel()

	env := NewEnv(t.TempDir(), ".venv")
	if got, want := env.Interpreter(), interpreterPath(env.Dir, runtime.GOOS); got != want {
		t.Errorf("Interpreter() = %q, want %q", got, want)
	}
	if got, want := env.ScriptsDir(), scriptsDir(env.Dir, runtime.GOOS); got != want {
		t.Errorf("ScriptsDir() = %q, want %q", got, want)
	}
}
