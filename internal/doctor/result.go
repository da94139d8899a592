// SPDX-License-Identifier: MPL-2.0

package doctor

import "context"

// CheckStatus is the outcome class of a single check.
type CheckStatus string

const (
	// StatusPass means the check found nothing wrong.
	StatusPass CheckStatus = "pass"
	// StatusWarn means something is off but a launch would still work.
	StatusWarn CheckStatus = "warn"
	// StatusFail means a launch would degrade or stop here.
	StatusFail CheckStatus = "fail"
	// StatusSkip means a prerequisite was missing, so the check did not
	// run.
	StatusSkip CheckStatus = "skip"
)

// IsValid reports whether s is a known status.
func (s CheckStatus) IsValid() bool {
	switch s {
	case StatusPass, StatusWarn, StatusFail, StatusSkip:
		return true
	default:
		return false
	}
}

type (
	// FixFunc repairs the condition its Result reported. It runs only
	// when the operator asked for fixes.
	FixFunc func(ctx context.Context) error

	// Result is the outcome of one check.
	Result struct {
		// Name identifies the check, stable across runs so repairs can
		// be matched to the failure they cured.
		Name string
		// Status classifies the outcome.
		Status CheckStatus
		// Detail is a one-line human explanation.
		Detail string
		// FixHint names the manual remedy when one exists, whether or
		// not an automatic fix is attached.
		FixHint string
		// Repaired is set by Run when a fix for this check was applied
		// and the re-check passed.
		Repaired bool

		fix FixFunc
	}

	// Summary counts results by status.
	Summary struct {
		Pass  int
		Warn  int
		Fail  int
		Skip  int
		Fixed int
	}
)

// Fixable reports whether the result carries an automatic fix.
func (r Result) Fixable() bool { return r.fix != nil }

// Pass returns a passing result.
func Pass(name, detail string) Result {
	return Result{Name: name, Status: StatusPass, Detail: detail}
}

// Warn returns a warning result.
func Warn(name, detail string) Result {
	return Result{Name: name, Status: StatusWarn, Detail: detail}
}

// Skip returns a skipped result.
func Skip(name, detail string) Result {
	return Result{Name: name, Status: StatusSkip, Detail: detail}
}

// Fail returns a failure with a manual hint and no automatic fix.
func Fail(name, detail, hint string) Result {
	return Result{Name: name, Status: StatusFail, Detail: detail, FixHint: hint}
}

// FailFixable returns a failure carrying an automatic repair.
func FailFixable(name, detail, hint string, fix FixFunc) Result {
	return Result{Name: name, Status: StatusFail, Detail: detail, FixHint: hint, fix: fix}
}

// Summarize tallies results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Pass++
		case StatusWarn:
			s.Warn++
		case StatusFail:
			s.Fail++
		case StatusSkip:
			s.Skip++
		}
		if r.Repaired {
			s.Fixed++
		}
	}
	return s
}

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
