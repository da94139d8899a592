// SPDX-License-Identifier: MPL-2.0

// Package doctor inspects a project and reports whether a launch would
// succeed: the bundled runtime, the virtual environment, the dependency
// manifest, installed packages against the pin catalog, the browser
// cache, hooks, the watch configuration, and the session log directory.
//
// Each check yields a Result. Failures that have a known repair carry a
// fix closure; Run applies those when asked and re-checks until the
// tree settles or the iteration cap is hit. Checks never modify the
// project on their own.
package doctor
