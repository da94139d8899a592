// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExeName returns name with the ".exe" suffix appended on Windows.
// Names that already carry the suffix are returned unchanged.
func ExeName(name string) string {
	if runtime.GOOS == Windows && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// BareExeName strips a trailing ".exe" suffix (any case) from name.
// Process names reported by the OS differ across platforms; comparing
// bare names makes matching uniform.
func BareExeName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".exe") {
		return name[:len(name)-len(".exe")]
	}
	return name
}
