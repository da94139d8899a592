// SPDX-License-Identifier: MPL-2.0

// Package bootstrap drives the launch sequence: locate the bundled
// Python runtime, create or reuse the virtual environment, activate it,
// install dependencies, point Playwright at the project-local browser
// cache, probe for a browser, run the checker, launch the application
// with the caller's arguments, and report the outcome.
//
// The sequence is a fixed, ordered list of typed steps. A step result
// is ok, skipped, warned, or failed; the driver stops at the first
// failure and continues past everything else. Only setup failures
// (missing runtime, environment create or activation failure) are
// fatal. The application's own exit code is reported but never becomes
// the launcher's.
//
// State flows between steps through explicit values on the run, never
// through the launcher's process environment.
package bootstrap
