// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"runway-cli/internal/config"
	"runway-cli/internal/testutil"
)

// stubInterpreter is the POSIX body of the fixture's fake python. It
// answers the exact invocations the launch sequence makes: a version
// query, venv creation (which clones itself into the new environment so
// the in-env interpreter keeps working), pip installs, and script runs
// dispatched by basename. Record paths and exit codes are baked in per
// fixture, so parallel tests never share state.
const stubInterpreter = `if [ "$1" = "--version" ]; then
	echo "Python 3.11.9"
	exit 0
fi
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
	if [ %[4]d -ne 0 ]; then
		echo "venv: cannot create" >&2
		exit %[4]d
	fi
	mkdir -p "$3/bin"
	printf 'home = fixture\n' > "$3/pyvenv.cfg"
	cp "$0" "$3/bin/python"
	exit 0
fi
if [ "$1" = "-m" ] && [ "$2" = "pip" ]; then
	shift 2
	printf 'pip %%s\n' "$*" >> %[1]q
	exit %[5]d
fi
case "$(basename "$1")" in
main.py)
	base="$(basename "$1")"
	shift
	printf '%%s\n' "$base" > %[2]q
	for a in "$@"; do printf '%%s\n' "$a" >> %[2]q; done
	echo "app running"
	exit %[6]d
	;;
*)
	printf '%%s\n' "$PLAYWRIGHT_BROWSERS_PATH" > %[3]q
	exit %[7]d
	;;
esac`

// fixtureOpts tunes the stub interpreter's behavior per scenario.
type fixtureOpts struct {
	noRuntime   bool
	manifest    bool
	checker     bool
	venvExit    int
	pipExit     int
	appExit     int
	checkerExit int
}

type fixture struct {
	root          string
	cfg           *config.Config
	stdout        *bytes.Buffer
	stderr        *bytes.Buffer
	pipRecord     string
	launchRecord  string
	checkerRecord string
}

func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()
	testutil.RequireUnixShell(t)

	root := t.TempDir()
	f := &fixture{
		root:          root,
		stdout:        &bytes.Buffer{},
		stderr:        &bytes.Buffer{},
		pipRecord:     filepath.Join(root, "pip-record.txt"),
		launchRecord:  filepath.Join(root, "launch-record.txt"),
		checkerRecord: filepath.Join(root, "checker-record.txt"),
	}

	if !opts.noRuntime {
		body := fmt.Sprintf(stubInterpreter,
			f.pipRecord, f.launchRecord, f.checkerRecord,
			opts.venvExit, opts.pipExit, opts.appExit, opts.checkerExit)
		testutil.MustWriteScript(t, filepath.Join(root, "runtime", "bin", "python3"), body)
	}
	if opts.manifest {
		testutil.MustWriteFile(t, filepath.Join(root, "requirements.txt"),
			[]byte("requests==2.31.0\n"), 0o644)
	}

	cfg := config.DefaultConfig()
	cfg.App.PauseOnExit = false
	cfg.Checker.Enabled = opts.checker
	// Pinned so the probe behaves the same on every host OS.
	cfg.Browser.Variants = []config.VariantPath{
		"chromium-1208/chrome-linux/chrome",
		"chromium_headless_shell-1208/chrome-linux/headless_shell",
	}
	if opts.checker {
		testutil.MustWriteFile(t, filepath.Join(root, cfg.Checker.Script),
			[]byte("# dispatched by the stub interpreter\n"), 0o644)
	}
	f.cfg = cfg
	return f
}

func (f *fixture) options() Options {
	return Options{
		Logger: charmlog.New(io.Discard),
		Stdin:  strings.NewReader(""),
		Stdout: f.stdout,
		Stderr: f.stderr,
	}
}

func (f *fixture) run(t *testing.T, args []string) (*Outcome, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return New(f.cfg, f.root, f.options()).Run(ctx, args)
}

func stepResult(t *testing.T, out *Outcome, name StepName) StepResult {
	t.Helper()
	for _, res := range out.Steps {
		if res.Step == name {
			return res
		}
	}
	t.Fatalf("no result recorded for step %q", name)
	return StepResult{}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
