// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"runway-cli/internal/issue"
	"runway-cli/pkg/cueutil"
	"runway-cli/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "runway"
	// ConfigFileName is the name of the global config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// ProjectConfigFileName is the project-local config file searched in the
	// current directory. It takes precedence over the global file.
	ProjectConfigFileName = "runway.cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the runway configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("runtime.path", defaults.Runtime.Path)
	v.SetDefault("runtime.dir", defaults.Runtime.Dir)
	v.SetDefault("env.dir", defaults.Env.Dir)
	v.SetDefault("install.manifests", defaults.Install.Manifests)
	v.SetDefault("install.index_url", defaults.Install.IndexURL)
	v.SetDefault("browser.cache_dir", defaults.Browser.CacheDir)
	v.SetDefault("browser.download_host", defaults.Browser.DownloadHost)
	v.SetDefault("browser.mirrors", defaults.Browser.Mirrors)
	v.SetDefault("browser.variants", defaults.Browser.Variants)
	v.SetDefault("checker.script", defaults.Checker.Script)
	v.SetDefault("checker.enabled", defaults.Checker.Enabled)
	v.SetDefault("app.entry", defaults.App.Entry)
	v.SetDefault("app.log_dir", defaults.App.LogDir)
	v.SetDefault("app.pause_on_exit", defaults.App.PauseOnExit)
	v.SetDefault("hooks.pre_launch", defaults.Hooks.PreLaunch)
	v.SetDefault("hooks.post_exit", defaults.Hooks.PostExit)
	v.SetDefault("watch.patterns", defaults.Watch.Patterns)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	v.SetDefault("restart.process_names", defaults.Restart.ProcessNames)
	v.SetDefault("restart.grace_seconds", defaults.Restart.Grace)
	v.SetDefault("restart.purge_dirs", defaults.Restart.PurgeDirs)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.interactive", defaults.UI.Interactive)

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'runway config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'runway explain config-load-failed' for guidance").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		// Project-local config takes precedence over the global file.
		localCuePath := filepath.Join(opts.ProjectRoot, ProjectConfigFileName)
		if fileExists(localCuePath) {
			if err := loadCUEIntoViper(v, localCuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(localCuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					WithSuggestion("Verify the configuration values match the expected schema").
					WithSuggestion("Run 'runway explain config-load-failed' for guidance").
					Wrap(err).
					BuildError()
			}
			resolvedPath = localCuePath
		} else {
			// Fall back to the global config file.
			cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
			if err != nil {
				return nil, "", err
			}

			cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
			if fileExists(cuePath) {
				if err := loadCUEIntoViper(v, cuePath); err != nil {
					return nil, "", issue.NewErrorContext().
						WithOperation("load configuration").
						WithResource(cuePath).
						WithSuggestion("Check that the file contains valid CUE syntax").
						WithSuggestion("Verify the configuration values match the expected schema").
						WithSuggestion("Run 'runway explain config-load-failed' for guidance").
						Wrap(err).
						BuildError()
				}
				resolvedPath = cuePath
			}
			// If no config file found, use defaults (no error)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate constraints that CUE cannot express: path shape rules on
	// variants, URL schemes on mirrors, non-negative grace period.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Variant paths must be relative to the cache directory").
			WithSuggestion("Mirror URLs must use http or https").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper, preserving defaults for absent fields.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeToMap(configSchema, "#Config", data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default global config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	cueContent := GenerateCUE(defaults)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateProjectConfig writes a default project-local runway.cue under root
// if it doesn't exist.
func CreateProjectConfig(root string) error {
	cfgPath := filepath.Join(root, ProjectConfigFileName)

	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	cueContent := GenerateCUE(defaults)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the current configuration to the global config file
func Save(cfg *Config) error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	cueContent := GenerateCUE(cfg)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Runway Configuration File\n")
	sb.WriteString("// Paths are resolved relative to the project root unless absolute.\n\n")

	// Runtime
	sb.WriteString("runtime: {\n")
	if cfg.Runtime.Path != "" {
		sb.WriteString(fmt.Sprintf("\tpath: %q\n", cfg.Runtime.Path))
	}
	sb.WriteString(fmt.Sprintf("\tdir: %q\n", cfg.Runtime.Dir))
	sb.WriteString("}\n")

	// Environment
	sb.WriteString("\nenv: {\n")
	sb.WriteString(fmt.Sprintf("\tdir: %q\n", cfg.Env.Dir))
	sb.WriteString("}\n")

	// Install
	sb.WriteString("\ninstall: {\n")
	sb.WriteString("\tmanifests: [")
	for i, m := range cfg.Install.Manifests {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", m))
	}
	sb.WriteString("]\n")
	if cfg.Install.IndexURL != "" {
		sb.WriteString(fmt.Sprintf("\tindex_url: %q\n", cfg.Install.IndexURL))
	}
	sb.WriteString("}\n")

	// Browser
	sb.WriteString("\nbrowser: {\n")
	sb.WriteString(fmt.Sprintf("\tcache_dir: %q\n", cfg.Browser.CacheDir))
	if cfg.Browser.DownloadHost != "" {
		sb.WriteString(fmt.Sprintf("\tdownload_host: %q\n", cfg.Browser.DownloadHost))
	}
	if len(cfg.Browser.Mirrors) > 0 {
		sb.WriteString("\tmirrors: [\n")
		for _, m := range cfg.Browser.Mirrors {
			sb.WriteString(fmt.Sprintf("\t\t%q,\n", m))
		}
		sb.WriteString("\t]\n")
	}
	if len(cfg.Browser.Variants) > 0 {
		sb.WriteString("\tvariants: [\n")
		for _, vp := range cfg.Browser.Variants {
			sb.WriteString(fmt.Sprintf("\t\t%q,\n", vp))
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	// Checker
	sb.WriteString("\nchecker: {\n")
	sb.WriteString(fmt.Sprintf("\tscript: %q\n", cfg.Checker.Script))
	sb.WriteString(fmt.Sprintf("\tenabled: %v\n", cfg.Checker.Enabled))
	sb.WriteString("}\n")

	// App
	sb.WriteString("\napp: {\n")
	sb.WriteString(fmt.Sprintf("\tentry: %q\n", cfg.App.Entry))
	sb.WriteString(fmt.Sprintf("\tlog_dir: %q\n", cfg.App.LogDir))
	sb.WriteString(fmt.Sprintf("\tpause_on_exit: %v\n", cfg.App.PauseOnExit))
	sb.WriteString("}\n")

	// Hooks
	if cfg.Hooks.PreLaunch != "" || cfg.Hooks.PostExit != "" {
		sb.WriteString("\nhooks: {\n")
		if cfg.Hooks.PreLaunch != "" {
			sb.WriteString(fmt.Sprintf("\tpre_launch: %q\n", cfg.Hooks.PreLaunch))
		}
		if cfg.Hooks.PostExit != "" {
			sb.WriteString(fmt.Sprintf("\tpost_exit: %q\n", cfg.Hooks.PostExit))
		}
		sb.WriteString("}\n")
	}

	// Watch
	sb.WriteString("\nwatch: {\n")
	sb.WriteString("\tpatterns: [")
	for i, p := range cfg.Watch.Patterns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", p))
	}
	sb.WriteString("]\n")
	sb.WriteString(fmt.Sprintf("\tdebounce_ms: %d\n", cfg.Watch.DebounceMs))
	sb.WriteString("}\n")

	// Restart
	sb.WriteString("\nrestart: {\n")
	sb.WriteString("\tprocess_names: [")
	for i, n := range cfg.Restart.ProcessNames {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", n))
	}
	sb.WriteString("]\n")
	sb.WriteString(fmt.Sprintf("\tgrace_seconds: %d\n", cfg.Restart.Grace))
	sb.WriteString("\tpurge_dirs: [")
	for i, d := range cfg.Restart.PurgeDirs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", d))
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	// UI config
	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString(fmt.Sprintf("\tinteractive: %v\n", cfg.UI.Interactive))
	sb.WriteString("}\n")

	return sb.String()
}
