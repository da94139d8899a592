// SPDX-License-Identifier: MPL-2.0

package browser

import "path/filepath"

const (
	// BrowsersPathEnv tells Playwright where its browser bundles live.
	BrowsersPathEnv = "PLAYWRIGHT_BROWSERS_PATH"

	// DownloadHostEnv points Playwright's installer at a mirror.
	DownloadHostEnv = "PLAYWRIGHT_DOWNLOAD_HOST"

	// DefaultCacheDirName is the cache directory used when configuration
	// leaves browser.cache_dir empty.
	DefaultCacheDirName = "browsers"
)

// CacheDir resolves the browser cache directory for a project. A
// relative configured value lands under root; empty falls back to the
// default name. The cache always resolves to the same place for the
// same inputs, keeping the app and the launcher in agreement.
func CacheDir(root, configured string) string {
	dir := configured
	if dir == "" {
		dir = DefaultCacheDirName
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

// CacheEnv returns the environment entry that pins Playwright to the
// project cache. It is applied to every child process of the launch
// sequence, found browser or not, so a later manual install lands in
// the project cache too.
func CacheEnv(cacheDir string) map[string]string {
	return map[string]string{BrowsersPathEnv: cacheDir}
}
