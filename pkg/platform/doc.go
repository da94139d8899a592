// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes the small amount of OS-specific knowledge the
// bootstrapper needs: GOOS name constants and executable-name conventions.
package platform
