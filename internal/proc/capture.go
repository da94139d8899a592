// SPDX-License-Identifier: MPL-2.0

package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Session is a running child whose combined output is mirrored to the
// caller and recorded in a capture file.
type Session struct {
	cmd     *exec.Cmd
	file    *os.File
	cleanup func()
}

// StartCapture launches cmd with its output teed to mirror and to a
// capture file at logPath. On Unix the child runs under a
// pseudo-terminal so it keeps the line buffering and color it would
// use on a real console; Windows falls back to plain pipes. The
// command must not have stdio attached already.
func StartCapture(cmd *exec.Cmd, logPath string, mirror io.Writer) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating capture dir: %w", err)
	}
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating capture file: %w", err)
	}

	var sink io.Writer = f
	if mirror != nil {
		sink = io.MultiWriter(mirror, f)
	}

	s := &Session{cmd: cmd, file: f}
	if err := s.start(sink); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("starting %s: %w", cmd.Path, err)
	}
	return s, nil
}

// LogPath returns the capture file location.
func (s *Session) LogPath() string {
	return s.file.Name()
}

// Wait blocks until the child exits and the capture file holds all of
// its output. The exit code comes back as data, same as python.Run:
// err is non-nil only when waiting itself failed.
func (s *Session) Wait() (int, error) {
	err := s.cmd.Wait()
	if s.cleanup != nil {
		s.cleanup()
	}
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		return 0, fmt.Errorf("closing capture file: %w", closeErr)
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("waiting for %s: %w", s.cmd.Path, err)
	}
	return 0, nil
}

// SessionLogName returns the capture file name for a session started
// at ts, e.g. "session-20260822-153000-1a2b3c4d.log". runID keeps two
// sessions started within the same second apart.
func SessionLogName(ts time.Time, runID string) string {
	return "session-" + ts.Format("20060102-150405") + "-" + runID + ".log"
}
