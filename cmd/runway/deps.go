// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"runway-cli/internal/config"
	"runway-cli/internal/python"
	"runway-cli/pkg/types"
)

// newDepsCommand creates the deps command group for working with the
// embedded dependency catalog.
func newDepsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Inspect and sync the dependency catalog",
		Long: `Work with the dependency catalog the application is tested against.

The catalog is embedded in the launcher; the manifest on disk and the
packages in the environment are both expected to track it.`,
	}
	cmd.AddCommand(newDepsListCommand(app))
	cmd.AddCommand(newDepsCheckCommand(app))
	cmd.AddCommand(newDepsSyncCommand(app))
	return cmd
}

func newDepsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the dependency catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			printPinGroup(app.stdout, "Required", python.RequiredPins())
			printPinGroup(app.stdout, "Optional (opt-in)", python.OptionalPins())
			printPinGroup(app.stdout, "Unversioned", python.UnversionedPins())
			return nil
		},
	}
}

func printPinGroup(w io.Writer, title string, pins []python.Pin) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	for _, p := range pins {
		fmt.Fprintf(w, "  %s\n", p.String())
	}
	fmt.Fprintln(w)
}

func newDepsCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog and report drift",
		Long: `Check the catalog's internal coherence, compare the manifest on disk
against it, and, when the virtual environment is built, compare the
installed packages too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDepsCheck(cmd, app)
		},
	}
}

func runDepsCheck(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, root, err := projectContext(ctx, app)
	if err != nil {
		return err
	}

	clean := true
	pins := python.RequiredPins()

	if err := python.ValidatePins(pins); err != nil {
		fmt.Fprintf(app.stdout, "%s catalog: %v\n", ErrorStyle.Render("✗"), err)
		clean = false
	} else {
		fmt.Fprintf(app.stdout, "%s catalog: coherent\n", SuccessStyle.Render("✓"))
	}

	if !checkManifestDrift(app.stdout, cfg, root, pins) {
		clean = false
	}
	if !checkInstalledDrift(ctx, app.stdout, cfg, root, pins) {
		clean = false
	}

	if !clean {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: types.SetupFailure}
	}
	return nil
}

func checkManifestDrift(w io.Writer, cfg *config.Config, root string, pins []python.Pin) bool {
	m, ok := python.DetectManifest(root, cfg.Install.Manifests)
	if !ok {
		fmt.Fprintf(w, "%s manifest: none found\n", SubtitleStyle.Render("-"))
		return true
	}
	reqs, err := m.Requirements()
	if err != nil {
		fmt.Fprintf(w, "%s manifest (%s): %v\n", ErrorStyle.Render("✗"), filepath.Base(m.Path), err)
		return false
	}
	drift := python.DiffPins(reqs, pins)
	if drift.Clean() {
		fmt.Fprintf(w, "%s manifest (%s): in sync\n", SuccessStyle.Render("✓"), filepath.Base(m.Path))
		return true
	}
	fmt.Fprintf(w, "%s manifest (%s): %s\n", ErrorStyle.Render("✗"), filepath.Base(m.Path), drift.Summary())
	printDrift(w, drift)
	fmt.Fprintf(w, "  %s run %s to rewrite the manifest from the catalog\n",
		SubtitleStyle.Render("fix:"), CmdStyle.Render("runway deps sync"))
	return false
}

func checkInstalledDrift(ctx context.Context, w io.Writer, cfg *config.Config, root string, pins []python.Pin) bool {
	env := python.NewEnv(root, cfg.Env.Dir)
	if !env.Healthy() {
		fmt.Fprintf(w, "%s installed: environment not built, skipping\n", SubtitleStyle.Render("-"))
		return true
	}
	active, err := env.Activate()
	if err != nil {
		fmt.Fprintf(w, "%s installed: %v\n", ErrorStyle.Render("✗"), err)
		return false
	}
	installed, err := python.ListInstalled(ctx, active)
	if err != nil {
		fmt.Fprintf(w, "%s installed: %v\n", ErrorStyle.Render("✗"), err)
		return false
	}
	drift := python.DiffPins(installed, pins)
	if drift.Clean() {
		fmt.Fprintf(w, "%s installed: %d pins satisfied\n", SuccessStyle.Render("✓"), len(pins))
		return true
	}
	fmt.Fprintf(w, "%s installed: %s\n", ErrorStyle.Render("✗"), drift.Summary())
	printDrift(w, drift)
	fmt.Fprintf(w, "  %s run %s to install the pinned versions\n",
		SubtitleStyle.Render("fix:"), CmdStyle.Render("runway deps sync"))
	return false
}

func printDrift(w io.Writer, drift python.Drift) {
	for _, p := range drift.Missing {
		fmt.Fprintf(w, "    missing    %s\n", p.String())
	}
	for _, d := range drift.Mismatched {
		fmt.Fprintf(w, "    mismatched %s (have %s)\n", d.Pin.String(), d.Installed.String())
	}
}

func newDepsSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write the manifest from the catalog and install it",
		Long: `Rewrite requirements.txt from the embedded catalog, then install the
pinned versions into the virtual environment. When the environment is
not built yet only the manifest is written; the next launch installs
from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDepsSync(cmd, app)
		},
	}
}

func runDepsSync(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, root, err := projectContext(ctx, app)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(root, "requirements.txt")
	if err := os.WriteFile(manifestPath, []byte(python.GenerateRequirements()), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Fprintf(app.stdout, "%s wrote %s\n", SuccessStyle.Render("✓"), manifestPath)

	env := python.NewEnv(root, cfg.Env.Dir)
	if !env.Healthy() {
		fmt.Fprintf(app.stdout, "%s environment not built; run %s to install\n",
			SubtitleStyle.Render("-"), CmdStyle.Render("runway up"))
		return nil
	}
	active, err := env.Activate()
	if err != nil {
		return fmt.Errorf("activating environment: %w", err)
	}
	opts := python.InstallOptions{
		IndexURL: cfg.Install.IndexURL.String(),
		Stdout:   app.stdout,
		Stderr:   app.stderr,
	}
	if err := python.InstallPins(ctx, active, python.RequiredPins(), opts); err != nil {
		return fmt.Errorf("installing pins: %w", err)
	}
	fmt.Fprintf(app.stdout, "%s installed %d pins\n", SuccessStyle.Render("✓"), len(python.RequiredPins()))
	return nil
}
