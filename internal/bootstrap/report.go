// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

func (p *Pipeline) report(_ context.Context, st *state) StepResult {
	switch {
	case st.appExit < 0:
		fmt.Fprintln(p.stdout, "\napplication could not start (see warnings above)")
	case st.appExit > 0:
		fmt.Fprintf(p.stdout, "\napplication exited with code %d (diagnostic only, the launcher still exits 0)\n", st.appExit)
	default:
		fmt.Fprintln(p.stdout, "\napplication exited normally")
	}
	if st.captureLog != "" {
		fmt.Fprintf(p.stdout, "session log: %s\n", st.captureLog)
	}

	if !p.shouldPause() {
		return okResult("reported")
	}
	Acknowledge(p.stdin, p.stdout)
	return okResult("reported, operator acknowledged")
}

func (p *Pipeline) shouldPause() bool {
	if p.opts.SkipPause {
		return false
	}
	return p.cfg.App.PauseOnExit || p.cfg.UI.Interactive
}

// Acknowledge prints a close prompt and blocks until the operator
// presses Enter, keeping the console open long enough to read the
// outcome. When in is not a terminal the prompt would hang an
// unattended run, so it returns immediately.
func Acknowledge(in io.Reader, out io.Writer) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	fmt.Fprint(out, "\nPress Enter to close... ")
	_, _ = bufio.NewReader(f).ReadString('\n')
}
