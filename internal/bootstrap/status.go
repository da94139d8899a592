// SPDX-License-Identifier: MPL-2.0

package bootstrap

const (
	// StatusOK means the step did its work.
	StatusOK StepStatus = "ok"
	// StatusSkipped means the step had nothing to do; not an error.
	StatusSkipped StepStatus = "skipped"
	// StatusWarned means the step failed in a tolerated way and the
	// sequence continued.
	StatusWarned StepStatus = "warned"
	// StatusFailed means a fatal setup failure; nothing after it runs.
	StatusFailed StepStatus = "failed"
)

// Step names, in launch order.
const (
	StepLocateRuntime StepName = "locate runtime"
	StepEnsureEnv     StepName = "prepare environment"
	StepActivateEnv   StepName = "activate environment"
	StepInstallDeps   StepName = "install dependencies"
	StepBrowserCache  StepName = "configure browser cache"
	StepProbeBrowser  StepName = "probe browser"
	StepRunChecker    StepName = "run checker"
	StepLaunchApp     StepName = "launch application"
	StepReport        StepName = "report outcome"
)

type (
	// StepName identifies a step of the launch sequence.
	StepName string

	// StepStatus is the outcome class of a single step.
	StepStatus string

	// StepResult records what one step did. The driver stamps Step; the
	// step itself fills the rest.
	StepResult struct {
		// Step is the step this result belongs to.
		Step StepName
		// Status classifies the outcome.
		Status StepStatus
		// Detail is a one-line human summary ("reused existing
		// environment at .venv", "found chromium-1208/...").
		Detail string
		// Err carries the cause for warned and failed results.
		Err error
	}
)

// IsValid reports whether s is one of the defined statuses.
func (s StepStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusSkipped, StatusWarned, StatusFailed:
		return true
	}
	return false
}

// String returns the status as a plain word.
func (s StepStatus) String() string { return string(s) }

// String returns the step name.
func (n StepName) String() string { return string(n) }

// Fatal reports whether this result stops the sequence.
func (r StepResult) Fatal() bool { return r.Status == StatusFailed }

func okResult(detail string) StepResult {
	return StepResult{Status: StatusOK, Detail: detail}
}

func skipResult(detail string) StepResult {
	return StepResult{Status: StatusSkipped, Detail: detail}
}

func warnResult(detail string, err error) StepResult {
	return StepResult{Status: StatusWarned, Detail: detail, Err: err}
}

func failResult(err error) StepResult {
	return StepResult{Status: StatusFailed, Err: err}
}
