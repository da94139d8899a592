// SPDX-License-Identifier: EPL-2.0

//go:build windows

package proc

import (
	"io"
	"os"
)

// start runs the command with plain pipes - Windows has no pty to
// preserve the child's console behavior.
func (s *Session) start(sink io.Writer) error {
	s.cmd.Stdin = os.Stdin
	s.cmd.Stdout = sink
	s.cmd.Stderr = sink
	return s.cmd.Start()
}
