// SPDX-License-Identifier: MPL-2.0

// Package python locates the bundled CPython runtime, manages the
// project virtual environment, and runs interpreter commands inside it.
//
// Nothing here mutates the launcher's own process environment.
// Activation produces a value (ActiveEnv) whose overlay is applied to
// each child process, so every command sees the same explicit state.
package python
