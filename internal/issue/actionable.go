// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError carries what the launcher was doing when it failed,
	// the path or entity it was touching, and concrete suggestions the
	// operator can act on. The launch sequence builds one for every fatal
	// step so the console shows a fix, not just a cause.
	//
	// Construct via ErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("locate python runtime").
	//		WithResource("runtime/python.exe").
	//		WithSuggestion("Re-run the installer to restore the bundled runtime").
	//		Wrap(originalErr).
	//		Build()
	ActionableError struct {
		// Operation is the verb phrase that failed, e.g. "create virtual environment".
		Operation string

		// Resource is the file, directory or entity involved, when there is one.
		Resource string

		// Suggestions are operator-facing fixes, printed as bullets.
		Suggestions []string

		// Cause is the wrapped underlying error, reachable via errors.Is/As.
		Cause error
	}

	// ErrorContext accumulates error context field by field. A step can
	// prepare one up front (operation, resource, suggestions) and wrap
	// whichever error actually occurs later:
	//
	//	ctx := issue.NewErrorContext().
	//		WithOperation("load config").
	//		WithResource("./runway.cue")
	//
	//	return ctx.WithSuggestion("Check CUE syntax").Wrap(err).BuildError()
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewActionableError returns an ActionableError with only the operation
// set. For anything richer, use ErrorContext.
func NewActionableError(operation string) *ActionableError {
	return &ActionableError{Operation: operation}
}

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation attaches an operation to err. Returns nil for a nil
// err so call sites can wrap unconditionally.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// WrapWithContext attaches an operation and a resource to err. Nil err
// passes through as nil.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns the one-line form: operation, then resource, then cause,
// colon-separated. This is what non-verbose output shows.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for the console. The plain form is the
// one-line message followed by suggestion bullets:
//
//	failed to <operation>: <resource>: <cause>
//	  • <suggestion>
//
// Verbose adds the numbered unwrap chain underneath, which is what
// --verbose prints.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, c := 1, e.Cause; c != nil; depth, c = depth+1, errors.Unwrap(c) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, c.Error())
		}
	}

	return b.String()
}

// HasSuggestions reports whether Format would print any bullets.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the failing verb phrase, e.g. "install dependencies"
// or "probe browser binary".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file, path or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one operator-facing fix. Call repeatedly to
// stack suggestions in order.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions in one call.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// Wrap records the underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build materializes the ActionableError. The operation is mandatory;
// without one Build returns nil.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build returning the error interface, for direct use in
// return statements. A nil Build stays a nil interface value here rather
// than a typed nil.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
