// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"runway-cli/internal/config"
	"runway-cli/internal/issue"
)

type (
	// App wires CLI commands to their shared dependencies. It is the
	// composition root for the CLI layer - command constructors receive
	// an App reference and load configuration through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp; tests
	// supply buffers and custom providers.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// projectContext resolves the project root and loads its configuration,
// honoring the --root and --config flags. Config-driven UI defaults are
// folded into flags the user did not set explicitly.
func projectContext(ctx context.Context, app *App) (*config.Config, string, error) {
	root, err := resolveProjectRoot()
	if err != nil {
		return nil, "", err
	}
	cfg, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
		ProjectRoot:    root,
	})
	if err != nil {
		return nil, "", err
	}
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	return cfg, root, nil
}

func resolveProjectRoot() (string, error) {
	if projectRoot != "" {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return "", fmt.Errorf("resolving project root: %w", err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining working directory: %w", err)
	}
	return wd, nil
}

// newLogger builds the structured logger commands hand to the internal
// packages. Verbose mode lowers the level to debug.
func newLogger(w io.Writer) *charmlog.Logger {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix: "runway",
	})
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
