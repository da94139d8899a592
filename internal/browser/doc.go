// SPDX-License-Identifier: MPL-2.0

// Package browser manages the project-local Playwright browser cache:
// resolving the cache directory, probing it for a usable Chromium
// variant, downloading the bundle through rotating mirrors, and
// verifying that a found binary actually launches.
//
// Everything in this package is best-effort from the launch sequence's
// point of view. A missing or broken browser disables session capture
// in the app; it never blocks the app from starting.
package browser
