// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectRoot overrides the project directory the launcher operates on
	projectRoot string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "runway",
		Short: "Prepare and launch the local application",
		Long: TitleStyle.Render("runway") + SubtitleStyle.Render(" - prepare and launch the local application") + `

runway gets a bundled Python web application from installed to running:
it finds the embedded runtime, builds or reuses the virtual environment,
installs dependencies, points Playwright at the project browser cache,
and starts the application with your arguments.

` + SubtitleStyle.Render("Everyday use:") + `
  runway up                 Prepare everything and launch
  runway up -- --port 9000  Launch, passing arguments to the application
  runway restart            Stop stale processes, clear caches, relaunch
  runway doctor --fix       Diagnose the project and repair what it can

` + SubtitleStyle.Render("When something is off:") + `
  runway doctor             Check runtime, environment, packages, browser
  runway deps check         Compare installed packages against the pins
  runway explain <issue>    Read the playbook for a reported problem`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./runway.cue, then the per-user file)")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "root", "C", "", "project root directory (default is the current directory)")

	// Add subcommands
	app := NewApp(Dependencies{})
	rootCmd.AddCommand(newUpCommand(app))
	rootCmd.AddCommand(newRestartCommand(app))
	rootCmd.AddCommand(newDoctorCommand(app))
	rootCmd.AddCommand(newDepsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newExplainCommand(app))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// fang handles styling, --version, and turns an interrupt into
	// context cancellation so a running launch can pass the signal on
	// to the application instead of dying around it.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
