// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Parallel()

	abs := t.TempDir()
	tests := []struct {
		name       string
		root       string
		configured string
		want       string
	}{
		{
			name:       "empty uses default name",
			root:       "proj",
			configured: "",
			want:       filepath.Join("proj", DefaultCacheDirName),
		},
		{
			name:       "relative joins root",
			root:       "proj",
			configured: filepath.Join("cache", "browsers"),
			want:       filepath.Join("proj", "cache", "browsers"),
		},
		{
			name:       "absolute kept",
			root:       "proj",
			configured: abs,
			want:       abs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CacheDir(tt.root, tt.configured); got != tt.want {
				t.Errorf("CacheDir(%q, %q) = %q, want %q", tt.root, tt.configured, got, tt.want)
			}
		})
	}
}

func TestCacheEnv(t *testing.T) {
	t.Parallel()

	env := CacheEnv("/proj/browsers")
	if got := env[BrowsersPathEnv]; got != "/proj/browsers" {
		t.Errorf("env[%s] = %q, want %q", BrowsersPathEnv, got, "/proj/browsers")
	}
	if len(env) != 1 {
		t.Errorf("CacheEnv() has %d entries, want 1", len(env))
	}
}
