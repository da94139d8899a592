// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"runway-cli/internal/config"
	"runway-cli/internal/issue"
)

var configInitProject bool

// newConfigCommand creates the `runway config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage runway configuration",
		Long: `Manage runway configuration.

A project-local runway.cue takes precedence over the per-user file:
  - Linux: ~/.config/runway/config.cue
  - macOS: ~/Library/Application Support/runway/config.cue
  - Windows: %APPDATA%\runway\config.cue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	}
	initCmd.Flags().BoolVar(&configInitProject, "project", false, "create a project-local runway.cue instead of the per-user file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadProjectConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// loadProjectConfig resolves configuration the same way the launch
// commands do, and also reports the file that supplied it.
func loadProjectConfig(ctx context.Context) (*config.Config, string, error) {
	root, err := resolveProjectRoot()
	if err != nil {
		return nil, "", err
	}
	return config.Resolve(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
		ProjectRoot:    root,
	})
}

func showConfig(ctx context.Context, app *App) error {
	cfg, resolvedPath, err := loadProjectConfig(ctx)
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if resolvedPath != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), resolvedPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("runtime"))
	if cfg.Runtime.Path != "" {
		fmt.Fprintf(app.stdout, "  path: %s\n", valueStyle.Render(cfg.Runtime.Path.String()))
	}
	fmt.Fprintf(app.stdout, "  dir: %s\n", valueStyle.Render(cfg.Runtime.Dir))

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("env"))
	fmt.Fprintf(app.stdout, "  dir: %s\n", valueStyle.Render(cfg.Env.Dir))

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("install"))
	fmt.Fprintf(app.stdout, "  manifests: %s\n", valueStyle.Render(strings.Join(cfg.Install.Manifests, ", ")))
	if cfg.Install.IndexURL != "" {
		fmt.Fprintf(app.stdout, "  index_url: %s\n", valueStyle.Render(cfg.Install.IndexURL.String()))
	}

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("browser"))
	fmt.Fprintf(app.stdout, "  cache_dir: %s\n", valueStyle.Render(cfg.Browser.CacheDir.String()))
	fmt.Fprintf(app.stdout, "  variants: %s\n", valueStyle.Render(fmt.Sprintf("%d candidates", len(cfg.Browser.Variants))))
	if len(cfg.Browser.Mirrors) > 0 {
		fmt.Fprintf(app.stdout, "  mirrors: %s\n", valueStyle.Render(fmt.Sprintf("%d configured", len(cfg.Browser.Mirrors))))
	}

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("checker"))
	fmt.Fprintf(app.stdout, "  script: %s\n", valueStyle.Render(cfg.Checker.Script))
	fmt.Fprintf(app.stdout, "  enabled: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Checker.Enabled)))

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("app"))
	fmt.Fprintf(app.stdout, "  entry: %s\n", valueStyle.Render(cfg.App.Entry))
	fmt.Fprintf(app.stdout, "  log_dir: %s\n", valueStyle.Render(cfg.App.LogDir))
	fmt.Fprintf(app.stdout, "  pause_on_exit: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.App.PauseOnExit)))

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("restart"))
	fmt.Fprintf(app.stdout, "  process_names: %s\n", valueStyle.Render(strings.Join(cfg.Restart.ProcessNames, ", ")))
	fmt.Fprintf(app.stdout, "  grace_seconds: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Restart.Grace.Int())))
	fmt.Fprintf(app.stdout, "  purge_dirs: %s\n", valueStyle.Render(strings.Join(cfg.Restart.PurgeDirs, ", ")))

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(app.stdout, "  interactive: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Interactive)))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	if configInitProject {
		root, err := resolveProjectRoot()
		if err != nil {
			return err
		}
		if err := config.CreateProjectConfig(root); err != nil {
			return fmt.Errorf("failed to create project config: %w", err)
		}
		fmt.Fprintf(app.stdout, "%s Created project configuration at %s\n",
			SuccessStyle.Render("✓"), filepath.Join(root, config.ProjectConfigFileName))
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)
	return nil
}

func showConfigPath(ctx context.Context, app *App) error {
	root, err := resolveProjectRoot()
	if err != nil {
		return err
	}

	_, resolvedPath, err := loadProjectConfig(ctx)
	if err != nil {
		return err
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Project config: %s\n", filepath.Join(root, config.ProjectConfigFileName))
	fmt.Fprintf(app.stdout, "Global config:  %s\n", filepath.Join(cfgDir, "config.cue"))
	if resolvedPath != "" {
		fmt.Fprintf(app.stdout, "In effect:      %s\n", resolvedPath)
	} else {
		fmt.Fprintf(app.stdout, "In effect:      %s\n", SubtitleStyle.Render("built-in defaults"))
	}
	return nil
}
