//go:build !windows

package proc

import (
	"io"
	"time"

	"github.com/creack/pty"
)

// start runs the command under a pseudo-terminal and drains the master
// side into sink until the child exits.
func (s *Session) start(sink io.Writer) error {
	tty, err := pty.Start(s.cmd)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		// The copy ends with EIO once the child exits and the buffer
		// drains; that is the normal pty shutdown path.
		_, _ = io.Copy(sink, tty)
		close(done)
	}()
	s.cleanup = func() {
		// Let the copy drain the last buffered output before closing.
		// Not every platform delivers EIO after exit, so don't wait
		// forever for it.
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
		_ = tty.Close()
	}
	return nil
}
