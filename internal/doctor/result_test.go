// SPDX-License-Identifier: MPL-2.0

package doctor

import (
	"context"
	"testing"
)

func TestCheckStatusIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status CheckStatus
		want   bool
	}{
		{StatusPass, true},
		{StatusWarn, true},
		{StatusFail, true},
		{StatusSkip, true},
		{CheckStatus(""), false},
		{CheckStatus("broken"), false},
	}
	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("CheckStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestResultFixable(t *testing.T) {
	t.Parallel()

	fixable := FailFixable("x", "detail", "hint", func(context.Context) error { return nil })
	if !fixable.Fixable() {
		t.Error("FailFixable result reports no fix")
	}
	for _, r := range []Result{
		Pass("x", "detail"),
		Warn("x", "detail"),
		Skip("x", "detail"),
		Fail("x", "detail", "hint"),
	} {
		if r.Fixable() {
			t.Errorf("%s result reports a fix", r.Status)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	repaired := Pass("fixed-check", "detail")
	repaired.Repaired = true

	results := []Result{
		Pass("a", ""),
		repaired,
		Warn("b", ""),
		Fail("c", "", ""),
		Fail("d", "", ""),
		Skip("e", ""),
	}

	s := Summarize(results)
	want := Summary{Pass: 2, Warn: 1, Fail: 2, Skip: 1, Fixed: 1}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}

	if !Failed(results) {
		t.Error("Failed() = false with failures present")
	}
	if Failed(results[:3]) {
		t.Error("Failed() = true with no failures")
	}
}
