// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"runway-cli/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidInterpreterPath is returned when an InterpreterPath value is whitespace-only.
	ErrInvalidInterpreterPath = errors.New("invalid interpreter path")
	// ErrInvalidCacheDirPath is returned when a CacheDirPath value is whitespace-only.
	ErrInvalidCacheDirPath = errors.New("invalid cache dir path")
	// ErrInvalidVariantPath is the sentinel error wrapped by InvalidVariantPathError.
	ErrInvalidVariantPath = errors.New("invalid variant path")
	// ErrInvalidMirrorURL is the sentinel error wrapped by InvalidMirrorURLError.
	ErrInvalidMirrorURL = errors.New("invalid mirror url")
	// ErrInvalidGracePeriod is returned when a GraceSeconds value is negative.
	ErrInvalidGracePeriod = errors.New("invalid grace period")
	// ErrInvalidRuntimeConfig is the sentinel error wrapped by InvalidRuntimeConfigError.
	ErrInvalidRuntimeConfig = errors.New("invalid runtime config")
	// ErrInvalidInstallConfig is the sentinel error wrapped by InvalidInstallConfigError.
	ErrInvalidInstallConfig = errors.New("invalid install config")
	// ErrInvalidBrowserConfig is the sentinel error wrapped by InvalidBrowserConfigError.
	ErrInvalidBrowserConfig = errors.New("invalid browser config")
	// ErrInvalidRestartConfig is the sentinel error wrapped by InvalidRestartConfigError.
	ErrInvalidRestartConfig = errors.New("invalid restart config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InterpreterPath represents a filesystem path to a Python interpreter executable.
	// The zero value ("") is valid and means "locate the bundled runtime".
	InterpreterPath string

	// InvalidInterpreterPathError is returned when an InterpreterPath value is
	// non-empty but whitespace-only.
	InvalidInterpreterPathError struct {
		Value InterpreterPath
	}

	// CacheDirPath represents a filesystem path to the browser cache directory.
	// The zero value ("") is valid and means "use the default cache directory".
	// Non-zero values must not be whitespace-only.
	CacheDirPath string

	// InvalidCacheDirPathError is returned when a CacheDirPath value is
	// non-empty but whitespace-only.
	InvalidCacheDirPathError struct {
		Value CacheDirPath
	}

	// VariantPath represents a candidate browser-binary sub-path beneath the cache
	// directory, checked in priority order by the probe. A valid variant must be
	// non-empty and relative (it is joined onto the cache directory).
	VariantPath string

	// InvalidVariantPathError is returned when a VariantPath value is empty,
	// whitespace-only, or absolute. It wraps ErrInvalidVariantPath for errors.Is().
	InvalidVariantPathError struct {
		Value  VariantPath
		Reason string
	}

	// MirrorURL represents a download mirror or package index URL.
	// The zero value ("") is valid and means "use the tool's default host".
	// Non-zero values must use the http or https scheme.
	MirrorURL string

	// InvalidMirrorURLError is returned when a MirrorURL value is non-empty but
	// not an http(s) URL. It wraps ErrInvalidMirrorURL for errors.Is().
	InvalidMirrorURLError struct {
		Value MirrorURL
	}

	// GraceSeconds is the number of seconds the restart flow waits after killing
	// processes before purging cache artifacts. Must not be negative.
	GraceSeconds int

	// InvalidGracePeriodError is returned when a GraceSeconds value is negative.
	// It wraps ErrInvalidGracePeriod for errors.Is() compatibility.
	InvalidGracePeriodError struct {
		Value GraceSeconds
	}

	// InvalidRuntimeConfigError is returned when a RuntimeConfig has invalid fields.
	// It wraps ErrInvalidRuntimeConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidRuntimeConfigError struct {
		FieldErrors []error
	}

	// InvalidInstallConfigError is returned when an InstallConfig has invalid fields.
	// It wraps ErrInvalidInstallConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidInstallConfigError struct {
		FieldErrors []error
	}

	// InvalidBrowserConfigError is returned when a BrowserConfig has invalid fields.
	// It wraps ErrInvalidBrowserConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidBrowserConfigError struct {
		FieldErrors []error
	}

	// InvalidRestartConfigError is returned when a RestartConfig has invalid fields.
	// It wraps ErrInvalidRestartConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidRestartConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Runtime configures where the Python runtime is found.
		Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime"`
		// Env configures the virtual environment.
		Env EnvConfig `json:"env" mapstructure:"env"`
		// Install configures dependency installation.
		Install InstallConfig `json:"install" mapstructure:"install"`
		// Browser configures the browser cache and binary probing.
		Browser BrowserConfig `json:"browser" mapstructure:"browser"`
		// Checker configures the pre-launch environment checker.
		Checker CheckerConfig `json:"checker" mapstructure:"checker"`
		// App configures the application launch.
		App AppConfig `json:"app" mapstructure:"app"`
		// Hooks configures shell snippets run around the launch.
		Hooks HooksConfig `json:"hooks" mapstructure:"hooks"`
		// Watch configures watch-mode relaunching.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// Restart configures the clean-slate restart flow.
		Restart RestartConfig `json:"restart" mapstructure:"restart"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RuntimeConfig configures where the Python runtime is found.
	RuntimeConfig struct {
		// Path overrides runtime discovery with an explicit interpreter path.
		Path InterpreterPath `json:"path" mapstructure:"path"`
		// Dir is the bundled runtime directory searched relative to the project root.
		Dir string `json:"dir" mapstructure:"dir"`
	}

	// EnvConfig configures the virtual environment.
	EnvConfig struct {
		// Dir is the virtual environment directory relative to the project root.
		Dir string `json:"dir" mapstructure:"dir"`
	}

	// InstallConfig configures dependency installation.
	InstallConfig struct {
		// Manifests are candidate dependency manifests checked in order; the first
		// one present drives the install step.
		Manifests []string `json:"manifests" mapstructure:"manifests"`
		// IndexURL overrides the package index used by the installer.
		IndexURL MirrorURL `json:"index_url" mapstructure:"index_url"`
	}

	// BrowserConfig configures the browser cache and binary probing.
	BrowserConfig struct {
		// CacheDir is the browser cache directory relative to the project root.
		CacheDir CacheDirPath `json:"cache_dir" mapstructure:"cache_dir"`
		// DownloadHost overrides the browser download host for all attempts.
		DownloadHost MirrorURL `json:"download_host" mapstructure:"download_host"`
		// Mirrors are download hosts tried in order before the default host.
		Mirrors []MirrorURL `json:"mirrors" mapstructure:"mirrors"`
		// Variants are candidate binary sub-paths beneath CacheDir, probed in order.
		Variants []VariantPath `json:"variants" mapstructure:"variants"`
	}

	// CheckerConfig configures the pre-launch environment checker.
	CheckerConfig struct {
		// Script is the checker script path relative to the project root.
		Script string `json:"script" mapstructure:"script"`
		// Enabled toggles the checker step (default: true).
		Enabled bool `json:"enabled" mapstructure:"enabled"`
	}

	// AppConfig configures the application launch.
	AppConfig struct {
		// Entry is the application entry point relative to the project root.
		Entry string `json:"entry" mapstructure:"entry"`
		// LogDir is where session capture logs are written, relative to the project root.
		LogDir string `json:"log_dir" mapstructure:"log_dir"`
		// PauseOnExit waits for operator acknowledgment after the application exits.
		// Skipped automatically when stdin is not a terminal.
		PauseOnExit bool `json:"pause_on_exit" mapstructure:"pause_on_exit"`
	}

	// HooksConfig configures shell snippets run around the launch. Hooks execute
	// in the embedded POSIX interpreter so they behave identically across OSes.
	HooksConfig struct {
		// PreLaunch runs after setup succeeds, immediately before the application starts.
		PreLaunch string `json:"pre_launch" mapstructure:"pre_launch"`
		// PostExit runs after the application exits.
		PostExit string `json:"post_exit" mapstructure:"post_exit"`
	}

	// WatchConfig configures watch-mode relaunching.
	WatchConfig struct {
		// Patterns are doublestar globs selecting files that trigger a relaunch.
		Patterns []string `json:"patterns" mapstructure:"patterns"`
		// DebounceMs coalesces bursts of filesystem events.
		DebounceMs int `json:"debounce_ms" mapstructure:"debounce_ms"`
	}

	// RestartConfig configures the clean-slate restart flow.
	RestartConfig struct {
		// ProcessNames are executable names whose processes are terminated.
		ProcessNames []string `json:"process_names" mapstructure:"process_names"`
		// Grace is how long to wait after killing before purging caches.
		Grace GraceSeconds `json:"grace_seconds" mapstructure:"grace_seconds"`
		// PurgeDirs are bytecode-cache locations deleted recursively, relative to
		// the project root. Absence is ignored.
		PurgeDirs []string `json:"purge_dirs" mapstructure:"purge_dirs"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Interactive enables the operator acknowledgment prompt even when PauseOnExit is off
		Interactive bool `json:"interactive" mapstructure:"interactive"`
	}
)

// IsValid returns whether the RuntimeConfig has valid fields.
// It delegates to Path.IsValid(); Dir needs no validation (zero means default).
func (c RuntimeConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRuntimeConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRuntimeConfigError.
func (e *InvalidRuntimeConfigError) Error() string {
	return fmt.Sprintf("invalid runtime config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRuntimeConfig for errors.Is() compatibility.
func (e *InvalidRuntimeConfigError) Unwrap() error { return ErrInvalidRuntimeConfig }

// IsValid returns whether the InstallConfig has valid fields.
// It delegates to IndexURL.IsValid(); the manifest list needs no validation
// (entries are checked for existence at install time).
func (c InstallConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.IndexURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidInstallConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInstallConfigError.
func (e *InvalidInstallConfigError) Error() string {
	return fmt.Sprintf("invalid install config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidInstallConfig for errors.Is() compatibility.
func (e *InvalidInstallConfigError) Unwrap() error { return ErrInvalidInstallConfig }

// IsValid returns whether the BrowserConfig has valid fields.
// It delegates to CacheDir.IsValid(), DownloadHost.IsValid(), each mirror's
// IsValid(), and each variant's IsValid().
func (c BrowserConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.CacheDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.DownloadHost.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, m := range c.Mirrors {
		if m == "" {
			errs = append(errs, &InvalidMirrorURLError{Value: m})
			continue
		}
		if valid, fieldErrs := m.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, v := range c.Variants {
		if valid, fieldErrs := v.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBrowserConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBrowserConfigError.
func (e *InvalidBrowserConfigError) Error() string {
	return fmt.Sprintf("invalid browser config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBrowserConfig for errors.Is() compatibility.
func (e *InvalidBrowserConfigError) Unwrap() error { return ErrInvalidBrowserConfig }

// IsValid returns whether the RestartConfig has valid fields.
// It delegates to Grace.IsValid(); name and purge lists need no validation.
func (c RestartConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Grace.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRestartConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRestartConfigError.
func (e *InvalidRestartConfigError) Error() string {
	return fmt.Sprintf("invalid restart config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRestartConfig for errors.Is() compatibility.
func (e *InvalidRestartConfigError) Unwrap() error { return ErrInvalidRestartConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Runtime.IsValid(), Install.IsValid(), Browser.IsValid(),
// Restart.IsValid(), and UI.IsValid(). The remaining sections carry only
// free-form strings and bools and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runtime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Install.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Browser.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Restart.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the InterpreterPath.
func (p InterpreterPath) String() string { return string(p) }

// IsValid returns whether the InterpreterPath is valid.
// The zero value ("") is valid (means "locate the bundled runtime").
// Non-zero values must not be whitespace-only.
func (p InterpreterPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidInterpreterPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInterpreterPathError.
func (e *InvalidInterpreterPathError) Error() string {
	return fmt.Sprintf("invalid interpreter path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidInterpreterPath for errors.Is() compatibility.
func (e *InvalidInterpreterPathError) Unwrap() error { return ErrInvalidInterpreterPath }

// String returns the string representation of the CacheDirPath.
func (p CacheDirPath) String() string { return string(p) }

// IsValid returns whether the CacheDirPath is valid.
// The zero value ("") is valid (means "use the default cache directory").
// Non-zero values must not be whitespace-only.
func (p CacheDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCacheDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCacheDirPathError.
func (e *InvalidCacheDirPathError) Error() string {
	return fmt.Sprintf("invalid cache dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidCacheDirPath for errors.Is() compatibility.
func (e *InvalidCacheDirPathError) Unwrap() error { return ErrInvalidCacheDirPath }

// String returns the string representation of the VariantPath.
func (p VariantPath) String() string { return string(p) }

// IsValid returns whether the VariantPath is valid.
// A valid variant must be non-empty, not whitespace-only, and relative
// (it is joined onto the cache directory by the probe).
func (p VariantPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidVariantPathError{Value: p, Reason: "must be non-empty"}}
	}
	if filepath.IsAbs(string(p)) {
		return false, []error{&InvalidVariantPathError{Value: p, Reason: "must be relative to the cache directory"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVariantPathError.
func (e *InvalidVariantPathError) Error() string {
	return fmt.Sprintf("invalid variant path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVariantPath for errors.Is() compatibility.
func (e *InvalidVariantPathError) Unwrap() error { return ErrInvalidVariantPath }

// String returns the string representation of the MirrorURL.
func (u MirrorURL) String() string { return string(u) }

// IsValid returns whether the MirrorURL is valid.
// The zero value ("") is valid (means "use the tool's default host").
// Non-zero values must use the http or https scheme.
func (u MirrorURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	s := string(u)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false, []error{&InvalidMirrorURLError{Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMirrorURLError.
func (e *InvalidMirrorURLError) Error() string {
	return fmt.Sprintf("invalid mirror url %q: must use http or https", e.Value)
}

// Unwrap returns ErrInvalidMirrorURL for errors.Is() compatibility.
func (e *InvalidMirrorURLError) Unwrap() error { return ErrInvalidMirrorURL }

// Int returns the GraceSeconds as a plain int.
func (g GraceSeconds) Int() int { return int(g) }

// IsValid returns whether the GraceSeconds is valid (non-negative).
func (g GraceSeconds) IsValid() (bool, []error) {
	if g < 0 {
		return false, []error{&InvalidGracePeriodError{Value: g}}
	}
	return true, nil
}

// Error implements the error interface for InvalidGracePeriodError.
func (e *InvalidGracePeriodError) Error() string {
	return fmt.Sprintf("invalid grace period %d: must not be negative", e.Value)
}

// Unwrap returns ErrInvalidGracePeriod for errors.Is() compatibility.
func (e *InvalidGracePeriodError) Unwrap() error { return ErrInvalidGracePeriod }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Path: "", // Will locate the bundled runtime if empty
			Dir:  "runtime",
		},
		Env: EnvConfig{
			Dir: ".venv",
		},
		Install: InstallConfig{
			Manifests: []string{"requirements.txt", "pyproject.toml"},
			IndexURL:  "",
		},
		Browser: BrowserConfig{
			CacheDir:     "browsers",
			DownloadHost: "",
			Mirrors: []MirrorURL{
				"https://mirrors.cloud.tencent.com/playwright/",
				"https://mirrors.huaweicloud.com/playwright/",
			},
			Variants: DefaultVariants(runtime.GOOS),
		},
		Checker: CheckerConfig{
			Script:  "check_playwright.py",
			Enabled: true,
		},
		App: AppConfig{
			Entry:       "main.py",
			LogDir:      "logs",
			PauseOnExit: true,
		},
		Hooks: HooksConfig{
			PreLaunch: "",
			PostExit:  "",
		},
		Watch: WatchConfig{
			Patterns:   []string{"**/*.py"},
			DebounceMs: 300,
		},
		Restart: RestartConfig{
			ProcessNames: DefaultProcessNames(runtime.GOOS),
			Grace:        3,
			PurgeDirs:    []string{"__pycache__", "src/__pycache__"},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Interactive: false,
		},
	}
}

// DefaultVariants returns the browser-binary sub-paths probed beneath the cache
// directory for the given OS, in priority order. Paths use forward slashes and
// are normalized by the probe.
func DefaultVariants(goos string) []VariantPath {
	switch goos {
	case platform.Windows:
		return []VariantPath{
			"chromium-1208/chrome-win/chrome.exe",
			"chromium_headless_shell-1208/chrome-win/headless_shell.exe",
		}
	case platform.Darwin:
		return []VariantPath{
			"chromium-1208/chrome-mac/Chromium.app/Contents/MacOS/Chromium",
			"chromium_headless_shell-1208/chrome-mac/headless_shell",
		}
	default:
		return []VariantPath{
			"chromium-1208/chrome-linux/chrome",
			"chromium_headless_shell-1208/chrome-linux/headless_shell",
		}
	}
}

// DefaultProcessNames returns the runtime executable names the restart flow
// terminates on the given OS.
func DefaultProcessNames(goos string) []string {
	if goos == platform.Windows {
		return []string{"python.exe"}
	}
	return []string{"python3", "python"}
}
