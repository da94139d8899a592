// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"path/filepath"
	"testing"

	"runway-cli/internal/python"
	"runway-cli/internal/testutil"
)

// newStubEnv builds a fake virtual environment whose interpreter is a
// POSIX stub script. Callers must invoke testutil.RequireUnixShell
// first.
func newStubEnv(t *testing.T, body string) (*python.ActiveEnv, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".venv")
	testutil.MustWriteFile(t, filepath.Join(dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644)
	testutil.MustWriteScript(t, filepath.Join(dir, "bin", "python"), body)
	active, err := python.NewEnv(root, ".venv").Activate()
	if err != nil {
		t.Fatalf("activating stub environment: %v", err)
	}
	return active, root
}
