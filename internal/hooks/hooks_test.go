// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRun_ExecutesInWorkingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := Hook{Name: "pre_launch", Script: ": > marker"}

	if err := Run(context.Background(), h, Options{Dir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("hook did not run in its working dir: %v", err)
	}
}

func TestRun_SeesProvidedEnviron(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := Hook{Name: "pre_launch", Script: `printf '%s' "$APP_MODE"`}
	opts := Options{
		Dir:     t.TempDir(),
		Environ: []string{"APP_MODE=maintenance"},
		Stdout:  &out,
	}

	if err := Run(context.Background(), h, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "maintenance" {
		t.Errorf("hook saw APP_MODE = %q, want %q", got, "maintenance")
	}
}

func TestRun_UnsetHookIsNoop(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Hook{Name: "post_exit"}, Options{}); err != nil {
		t.Fatalf("Run of unset hook: %v", err)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Hook{Name: "post_exit", Script: "exit 7"}, Options{Dir: t.TempDir()})
	if !errors.Is(err, ErrHookFailed) {
		t.Fatalf("err = %v, want ErrHookFailed", err)
	}
	hookErr, ok := errors.AsType[*HookError](err)
	if !ok {
		t.Fatalf("err = %T, want *HookError", err)
	}
	if hookErr.Code != 7 {
		t.Errorf("Code = %d, want 7", hookErr.Code)
	}
	if hookErr.Name != "post_exit" {
		t.Errorf("Name = %q, want %q", hookErr.Name, "post_exit")
	}
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Hook{Name: "pre_launch", Script: "if then ("}, Options{Dir: t.TempDir()})
	hookErr, ok := errors.AsType[*HookError](err)
	if !ok {
		t.Fatalf("err = %T, want *HookError", err)
	}
	if hookErr.Code != -1 {
		t.Errorf("Code = %d, want -1 for a script that never ran", hookErr.Code)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", `echo ok && printf 'done\n'`, false},
		{"unclosed quote", `echo "oops`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(Hook{Name: "pre_launch", Script: tc.script})
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %t", tc.script, err, tc.wantErr)
			}
		})
	}
}
