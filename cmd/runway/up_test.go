// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"slices"
	"testing"

	"runway-cli/internal/config"
)

func TestLauncherIgnores(t *testing.T) {
	t.Parallel()

	t.Run("covers every launcher directory", func(t *testing.T) {
		t.Parallel()
		got := launcherIgnores(config.DefaultConfig())
		want := []string{"runtime/**", ".venv/**", "browsers/**", "logs/**"}
		if !slices.Equal(got, want) {
			t.Errorf("launcherIgnores() = %v, want %v", got, want)
		}
	})

	t.Run("skips unset directories", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.App.LogDir = ""
		got := launcherIgnores(cfg)
		if slices.Contains(got, "/**") || len(got) != 3 {
			t.Errorf("launcherIgnores() = %v, want three globs and no empty pattern", got)
		}
	})

	t.Run("normalizes trailing separators", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Env.Dir = ".venv/"
		got := launcherIgnores(cfg)
		if !slices.Contains(got, ".venv/**") {
			t.Errorf("launcherIgnores() = %v, want a clean .venv/** glob", got)
		}
	})
}
