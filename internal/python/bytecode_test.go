// SPDX-License-Identifier: MPL-2.0

package python

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"runway-cli/internal/testutil"
)

func TestPurgeBytecode_RemovesListed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "__pycache__", "main.cpython-311.pyc"), []byte("x"), 0o644)
	testutil.MustWriteFile(t, filepath.Join(root, "src", "__pycache__", "util.cpython-311.pyc"), []byte("x"), 0o644)

	removed, err := PurgeBytecode(root, []string{"__pycache__", filepath.Join("src", "__pycache__")})
	if err != nil {
		t.Fatalf("PurgeBytecode() unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(root, "__pycache__"),
		filepath.Join(root, "src", "__pycache__"),
	}
	if !slices.Equal(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	for _, p := range want {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists after purge", p)
		}
	}
}

func TestPurgeBytecode_ToleratesAbsence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "__pycache__", "main.pyc"), []byte("x"), 0o644)

	removed, err := PurgeBytecode(root, []string{"__pycache__", filepath.Join("src", "__pycache__")})
	if err != nil {
		t.Fatalf("PurgeBytecode() unexpected error: %v", err)
	}
	want := []string{filepath.Join(root, "__pycache__")}
	if !slices.Equal(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
}

func TestPurgeBytecode_AllAbsent(t *testing.T) {
	t.Parallel()

	removed, err := PurgeBytecode(t.TempDir(), []string{"__pycache__", filepath.Join("src", "__pycache__")})
	if err != nil {
		t.Fatalf("PurgeBytecode() unexpected error: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
}

func TestFindBytecodeDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "__pycache__", "a.pyc"), []byte("x"), 0o644)
	testutil.MustWriteFile(t, filepath.Join(root, "src", "__pycache__", "b.pyc"), []byte("x"), 0o644)
	testutil.MustWriteFile(t, filepath.Join(root, "src", "pkg", "__pycache__", "c.pyc"), []byte("x"), 0o644)
	testutil.MustWriteFile(t, filepath.Join(root, ".venv", "lib", "__pycache__", "d.pyc"), []byte("x"), 0o644)

	found, err := FindBytecodeDirs(root, filepath.Join(root, ".venv"))
	if err != nil {
		t.Fatalf("FindBytecodeDirs() unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(root, "__pycache__"),
		filepath.Join(root, "src", "__pycache__"),
		filepath.Join(root, "src", "pkg", "__pycache__"),
	}
	if !slices.Equal(found, want) {
		t.Errorf("found = %v, want %v", found, want)
	}
}
