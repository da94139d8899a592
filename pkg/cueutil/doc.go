// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluation flow used for configuration files:
// compile an embedded schema, unify it with user data, validate, and decode.
// It also formats CUE errors with JSON-path prefixes so operators see
// "browser.variants[2]: ..." instead of raw CUE diagnostics.
package cueutil
