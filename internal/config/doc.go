// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ./runway.cue in the project root when present, falling back
// to ~/.config/runway/config.cue (or XDG equivalent on Linux, ~/Library/Application Support/
// runway/config.cue on macOS, %APPDATA%\runway\config.cue on Windows). The package provides
// type-safe configuration access covering the runtime location, virtual environment,
// dependency installation, browser cache, checker script, application launch, hooks, watch
// mode, restart behavior, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
