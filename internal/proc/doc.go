// SPDX-License-Identifier: MPL-2.0

// Package proc handles operating system process concerns for the
// launcher: terminating stale app processes by executable name and
// running capture sessions that record child output.
package proc
