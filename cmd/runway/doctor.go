// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"runway-cli/internal/doctor"
	"runway-cli/pkg/types"
)

var (
	doctorFix         bool
	doctorLaunchCheck bool
)

// newDoctorCommand creates the doctor command: inspect the project and
// optionally repair what the checks can fix on their own.
func newDoctorCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project for launch problems",
		Long: `Inspect everything the launch sequence depends on: the bundled
runtime, the virtual environment, the dependency manifest, installed
packages, the browser cache, hooks, the watch configuration and any
application processes still running from an earlier session.

Checks never modify the project. With --fix, repairs that are safe to
automate (rebuilding the environment, syncing packages, downloading a
browser) are applied and the project is re-checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, app)
		},
	}
	cmd.Flags().BoolVar(&doctorFix, "fix", false, "apply automatic repairs where available")
	cmd.Flags().BoolVar(&doctorLaunchCheck, "launch-check", false, "also start the cached browser headless once to verify it runs")
	return cmd
}

func runDoctor(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, root, err := projectContext(ctx, app)
	if err != nil {
		return err
	}

	checker := doctor.New(cfg, root, doctor.Options{
		LaunchCheck: doctorLaunchCheck,
		Logger:      newLogger(app.stderr),
		Stdout:      app.stdout,
		Stderr:      app.stderr,
	})
	results := checker.Run(ctx, doctorFix)
	renderResults(app.stdout, results)

	if doctor.Failed(results) {
		// The failing checks are already on screen with their hints;
		// an error line on top would just repeat them.
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: types.SetupFailure}
	}
	return nil
}

// renderResults prints one line per check plus a summary. Failures get
// their fix hint on a second, indented line.
func renderResults(w io.Writer, results []doctor.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Project check"))
	fmt.Fprintln(w)

	for _, r := range results {
		glyph := statusGlyph(r.Status)
		line := fmt.Sprintf("%s %-16s %s", glyph, r.Name, r.Detail)
		if r.Repaired {
			line += " " + SuccessStyle.Render("(repaired)")
		}
		fmt.Fprintln(w, line)
		if r.Status == doctor.StatusFail && r.FixHint != "" {
			fmt.Fprintf(w, "  %s %s\n", SubtitleStyle.Render("fix:"), r.FixHint)
		}
	}

	s := doctor.Summarize(results)
	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d passed, %d warnings, %d failed, %d skipped", s.Pass, s.Warn, s.Fail, s.Skip)
	if s.Fixed > 0 {
		summary += fmt.Sprintf(", %d repaired", s.Fixed)
	}
	fmt.Fprintln(w, SubtitleStyle.Render(summary))
}

func statusGlyph(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusPass:
		return SuccessStyle.Render("✓")
	case doctor.StatusWarn:
		return WarningStyle.Render("!")
	case doctor.StatusFail:
		return ErrorStyle.Render("✗")
	case doctor.StatusSkip:
		return SubtitleStyle.Render("-")
	default:
		return "?"
	}
}
