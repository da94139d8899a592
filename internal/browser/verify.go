// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// ErrVerifyFailed indicates a browser binary exists but did not survive
// a headless launch check.
var ErrVerifyFailed = errors.New("browser verification failed")

// DefaultVerifyTimeout bounds the whole launch check. The check loads
// nothing but a blank page; anything slower than this is broken.
const DefaultVerifyTimeout = 10 * time.Second

// VerifyOptions shapes the post-probe launch check.
type VerifyOptions struct {
	// Timeout bounds the whole check; zero means DefaultVerifyTimeout.
	Timeout time.Duration
}

// Verify launches the binary headless and loads a blank page to prove
// the bundle actually runs on this machine. Presence on disk is not
// enough: a missing system library only shows up at launch.
func Verify(ctx context.Context, binPath string, opts VerifyOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l := launcher.New().
		Bin(binPath).
		Headless(true).
		Set(flags.NoSandbox).
		Set("disable-dev-shm-usage")
	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return fmt.Errorf("%w: launching %s: %v", ErrVerifyFailed, binPath, err)
	}
	defer l.Kill()

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("%w: connecting debugger: %v", ErrVerifyFailed, err)
	}
	defer b.Close()

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: opening page: %v", ErrVerifyFailed, err)
	}
	defer page.Close()

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: loading blank page: %v", ErrVerifyFailed, err)
	}
	return nil
}
