// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"runway-cli/internal/issue"
)

// newExplainCommand creates the explain command: render the playbook
// for a problem the launcher reported.
func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [issue]",
		Short: "Read the playbook for a reported problem",
		Long: `Render the remediation playbook for a known issue. Error messages
name the issue to pass here; run without arguments to list them all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(app.stdout, TitleStyle.Render("Known issues"))
				for _, slug := range issue.Slugs() {
					fmt.Fprintf(app.stdout, "  %s\n", CmdStyle.Render(string(slug)))
				}
				fmt.Fprintf(app.stdout, "\nRun %s for the playbook.\n", CmdStyle.Render("runway explain <issue>"))
				return nil
			}

			found := issue.BySlug(issue.Slug(args[0]))
			if found == nil {
				return fmt.Errorf("unknown issue %q; run 'runway explain' to list them", args[0])
			}
			rendered, err := found.Render("dark")
			if err != nil {
				// Fall back to the raw markdown rather than hiding the
				// playbook behind a rendering problem.
				fmt.Fprintln(app.stdout, string(found.MarkdownMsg()))
				return nil
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}
