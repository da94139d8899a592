// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for runway.
//
// This package implements the Cobra command hierarchy: up (the launch
// sequence), restart, doctor, deps, config, and explain, plus the
// shared App wiring, style palette, and the ExitError type that maps
// command results to process exit codes.
package cmd
