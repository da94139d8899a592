// SPDX-License-Identifier: MPL-2.0

package python

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// RuntimeSource records where an interpreter came from.
type RuntimeSource string

const (
	// RuntimeSourceExplicit means the interpreter path was set in
	// configuration.
	RuntimeSourceExplicit RuntimeSource = "explicit"
	// RuntimeSourceBundled means the interpreter was found inside the
	// project's bundled runtime directory.
	RuntimeSourceBundled RuntimeSource = "bundled"
)

// Runtime is a located Python interpreter.
type Runtime struct {
	// Interpreter is the path to the python executable.
	Interpreter string
	// Source records how the interpreter was located.
	Source RuntimeSource
}

// Locate finds the interpreter that drives every later stage. An
// explicit path from configuration wins; otherwise the bundled runtime
// directory under root is probed. There is no fallback to a system
// interpreter; the app ships its own runtime.
func Locate(root, explicitPath, runtimeDir string) (*Runtime, error) {
	if explicitPath != "" {
		p := explicitPath
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if isExecutableFile(p) {
			return &Runtime{Interpreter: p, Source: RuntimeSourceExplicit}, nil
		}
		return nil, &RuntimeNotFoundError{Searched: []string{p}}
	}

	candidates := BundledCandidates(root, runtimeDir, runtime.GOOS)
	for _, c := range candidates {
		if isExecutableFile(c) {
			return &Runtime{Interpreter: c, Source: RuntimeSourceBundled}, nil
		}
	}
	return nil, &RuntimeNotFoundError{Searched: candidates}
}

// BundledCandidates returns the interpreter locations probed inside the
// bundled runtime directory, in priority order. The embeddable Windows
// distribution keeps python.exe at its top level; Unix builds use the
// conventional bin/ layout.
func BundledCandidates(root, runtimeDir, goos string) []string {
	base := runtimeDir
	if !filepath.IsAbs(base) {
		base = filepath.Join(root, base)
	}
	if goos == "windows" {
		return []string{filepath.Join(base, "python.exe")}
	}
	return []string{
		filepath.Join(base, "bin", "python3"),
		filepath.Join(base, "bin", "python"),
	}
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

// Version asks the interpreter for its version. Output lands on stdout
// on modern interpreters and stderr on ancient ones, so both are read.
func (r *Runtime) Version(ctx context.Context) (Version, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Interpreter, "--version")
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return Version{}, fmt.Errorf("querying interpreter version: %w", err)
	}
	return ParseVersion(strings.TrimSpace(buf.String()))
}
