// SPDX-License-Identifier: MPL-2.0

package python

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"runway-cli/internal/testutil"
)

// newStubEnv builds a fake virtual environment whose interpreter is a
// POSIX stub script. Callers must invoke testutil.RequireUnixShell
// first: the stub layout uses the Unix bin/ convention and cannot run
// on Windows.
func newStubEnv(t *testing.T, body string) (active *ActiveEnv, root string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, ".venv")
	testutil.MustWriteFile(t, filepath.Join(dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644)
	testutil.MustWriteScript(t, filepath.Join(dir, "bin", "python"), body)
	a, err := NewEnv(root, ".venv").Activate()
	if err != nil {
		t.Fatalf("activating stub environment: %v", err)
	}
	return a, root
}

// argvRecorder returns a stub body that writes each argument it
// receives on its own line to recordPath.
func argvRecorder(recordPath string) string {
	return `printf '%s\n' "$@" > "` + recordPath + `"`
}

// mustReadLines reads path and splits it into lines, dropping the
// trailing empty line a final newline produces.
func mustReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
