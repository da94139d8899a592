// SPDX-License-Identifier: MPL-2.0

package python

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// InstallOptions shapes a dependency installation run.
type InstallOptions struct {
	// IndexURL overrides pip's package index when non-empty.
	IndexURL string
	// Upgrade adds --upgrade so already-installed packages move to the
	// requested versions.
	Upgrade bool
	// Stdout and Stderr receive pip's output; nil means the parent's
	// own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs pip against the manifest inside the active environment.
// A requirements manifest installs with -r; a pyproject manifest
// installs the project directory itself.
func Install(ctx context.Context, active *ActiveEnv, m *Manifest, root string, opts InstallOptions) error {
	args := []string{"install"}
	if opts.Upgrade {
		args = append(args, "--upgrade")
	}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	switch m.Kind {
	case ManifestPyproject:
		args = append(args, filepath.Dir(m.Path))
	default:
		args = append(args, "-r", m.Path)
	}
	if err := runPip(ctx, active, root, args, opts.Stdout, opts.Stderr); err != nil {
		return &InstallError{Source: m.Path, Err: err}
	}
	return nil
}

// InstallPins installs the given pins directly, without a manifest.
func InstallPins(ctx context.Context, active *ActiveEnv, pins []Pin, opts InstallOptions) error {
	if len(pins) == 0 {
		return nil
	}
	args := []string{"install"}
	if opts.Upgrade {
		args = append(args, "--upgrade")
	}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	for _, p := range pins {
		args = append(args, p.String())
	}
	if err := runPip(ctx, active, "", args, opts.Stdout, opts.Stderr); err != nil {
		return &InstallError{Source: "pinned packages", Err: err}
	}
	return nil
}

// UpgradeBaseTools brings pip, setuptools and wheel up to date inside
// the environment. Callers treat failure as advisory: an old pip still
// installs the pinned set.
func UpgradeBaseTools(ctx context.Context, active *ActiveEnv, opts InstallOptions) error {
	args := []string{"install", "--upgrade", "pip", "setuptools", "wheel"}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	if err := runPip(ctx, active, "", args, opts.Stdout, opts.Stderr); err != nil {
		return fmt.Errorf("upgrading base tools: %w", err)
	}
	return nil
}

// ListInstalled reports the environment's installed distributions via
// pip freeze.
func ListInstalled(ctx context.Context, active *ActiveEnv) ([]Requirement, error) {
	var buf bytes.Buffer
	if err := runPip(ctx, active, "", []string{"freeze"}, &buf, io.Discard); err != nil {
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}
	return ParseRequirements(&buf)
}

func runPip(ctx context.Context, active *ActiveEnv, dir string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, active.Interpreter(), append([]string{"-m", "pip"}, args...)...)
	cmd.Dir = dir
	cmd.Env = active.Environ(os.Environ())
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
