// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"os"
	"path/filepath"
)

// ProbeResult reports the outcome of scanning the cache for a usable
// browser binary.
type ProbeResult struct {
	// Found is true when a variant matched.
	Found bool
	// Variant is the matching variant exactly as configured, so reports
	// can name which layout was picked.
	Variant string
	// Path is the executable path that matched.
	Path string
	// Searched lists every path probed, in order, up to and including
	// the match.
	Searched []string
}

// Probe scans cacheDir for the first variant whose executable exists.
// Variants are slash-separated paths relative to the cache directory
// and are converted to the platform's separators before probing. The
// scan is ordered: the first hit wins.
func Probe(cacheDir string, variants []string) ProbeResult {
	var searched []string
	for _, v := range variants {
		p := filepath.Join(cacheDir, filepath.FromSlash(v))
		searched = append(searched, p)
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		return ProbeResult{Found: true, Variant: v, Path: p, Searched: searched}
	}
	return ProbeResult{Searched: searched}
}
