// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidWatchConfig marks a Config that cannot drive a watcher.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

// InvalidWatchConfigError aggregates every invalid field so the
// operator can fix the whole config in one pass.
type InvalidWatchConfigError struct {
	FieldErrors []error
}

func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("watch config has %d invalid field(s): %v",
		len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate checks the globs and base dir without constructing a
// watcher. New runs it, and doctor runs it so a broken watch section
// surfaces before watch mode ever starts.
func (c Config) Validate() error {
	var fieldErrs []error
	for _, pat := range c.Patterns {
		if err := validateGlob(pat, "watch"); err != nil {
			fieldErrs = append(fieldErrs, err)
		}
	}
	for _, pat := range c.Ignore {
		if err := validateGlob(pat, "ignore"); err != nil {
			fieldErrs = append(fieldErrs, err)
		}
	}
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		fieldErrs = append(fieldErrs, errors.New("base dir is blank"))
	}
	if len(fieldErrs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

func validateGlob(pat, label string) error {
	if strings.TrimSpace(pat) == "" {
		return fmt.Errorf("invalid %s pattern: empty glob", label)
	}
	if _, err := doublestar.Match(pat, ""); err != nil {
		return fmt.Errorf("invalid %s pattern %q: %w", label, pat, err)
	}
	return nil
}
