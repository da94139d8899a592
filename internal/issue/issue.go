// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RuntimeNotFoundId Id = iota + 1
	EnvCreateFailedId
	EnvActivateFailedId
	DependencyInstallFailedId
	BrowserNotFoundId
	BrowserFetchFailedId
	CheckerFailedId
	AppLaunchFailedId
	ConfigLoadFailedId
	ManifestInvalidId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	slug     Slug        // stable name used by 'runway explain <slug>'
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

// Slug is the kebab-case name an issue is addressed by on the command line.
type Slug string

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Slug() Slug {
	return i.slug
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	runtimeNotFoundIssue = &Issue{
		id:   RuntimeNotFoundId,
		slug: "runtime-not-found",
		mdMsg: `
# Python runtime not found!

The bundled Python runtime is missing, so nothing can be prepared or launched.

## Expected locations (relative to the install root):
- Windows: runtime\python.exe
- Linux/macOS: runtime/bin/python3

## Things you can try:
- Re-run the product installer to restore the bundled runtime
- Point runway at a different interpreter in runway.cue:
~~~cue
runtime: {
  path: "/usr/bin/python3"
}
~~~

- Verify the interpreter actually runs:
~~~
$ runway doctor
~~~`,
	}

	envCreateFailedIssue = &Issue{
		id:   EnvCreateFailedId,
		slug: "env-create-failed",
		mdMsg: `
# Failed to create the virtual environment!

The isolated environment could not be created, so the launch was aborted.

## Common causes:
- Not enough free disk space
- Antivirus software blocking file creation
- No write permission on the install directory
- A broken half-created environment from an earlier interrupted run

## Things you can try:
- Delete the environment directory and let runway recreate it:
~~~
$ runway restart
~~~

- Check free disk space and directory permissions
- Run with verbose mode for the interpreter's own output:
~~~
$ runway --verbose up
~~~`,
	}

	envActivateFailedIssue = &Issue{
		id:   EnvActivateFailedId,
		slug: "env-activate-failed",
		mdMsg: `
# Failed to activate the virtual environment!

The environment directory exists but its interpreter is missing or broken.

## Things you can try:
- Remove the environment and recreate it from scratch:
~~~
$ runway restart
~~~

- Check that the environment was not partially deleted by cleanup tools
- Inspect the environment health report:
~~~
$ runway doctor
~~~`,
	}

	dependencyInstallFailedIssue = &Issue{
		id:   DependencyInstallFailedId,
		slug: "deps-install-failed",
		mdMsg: `
# Dependency installation failed!

Installing Python packages did not succeed. The launch continues with whatever
packages are already present, so some features may be missing or outdated.

## Common causes:
- No network connection or a blocking proxy
- The configured package index is unreachable
- A pinned package version no longer exists

## Things you can try:
- Retry the installation on its own:
~~~
$ runway deps sync
~~~

- Compare installed packages against the pinned versions:
~~~
$ runway deps check
~~~

- Configure a reachable package index in runway.cue:
~~~cue
install: {
  index_url: "https://pypi.org/simple"
}
~~~`,
	}

	browserNotFoundIssue = &Issue{
		id:   BrowserNotFoundId,
		slug: "browser-not-found",
		mdMsg: `
# Browser binary not found!

No Chromium build was found under the browser cache directory. Pages that need
a real browser will fail until one is installed.

## Things you can try:
- Let runway download one, rotating through the configured mirrors:
~~~
$ runway doctor --fix
~~~

- Or install it manually with the environment's own interpreter:
~~~
$ python -m playwright install chromium
~~~

- If downloads keep failing, set a download mirror in runway.cue:
~~~cue
browser: {
  download_host: "https://mirrors.cloud.tencent.com/playwright/"
}
~~~`,
		extLinks: []HttpLink{
			"https://playwright.dev/python/docs/browsers",
		},
	}

	browserFetchFailedIssue = &Issue{
		id:   BrowserFetchFailedId,
		slug: "browser-fetch-failed",
		mdMsg: `
# Browser download failed!

Every configured download source was tried and none of them worked.

## Sources tried (in order):
1. Tencent mirror
2. Huawei mirror
3. The default Playwright CDN

## Things you can try:
- Check your network connection and proxy settings
- Retry later; mirrors occasionally lag behind the CDN
- Install the browser manually on a machine with access and copy the
  cache directory over
- Run with verbose mode to see each attempt's output:
~~~
$ runway --verbose doctor --fix
~~~`,
		extLinks: []HttpLink{
			"https://playwright.dev/python/docs/browsers",
		},
	}

	checkerFailedIssue = &Issue{
		id:   CheckerFailedId,
		slug: "checker-failed",
		mdMsg: `
# Environment checker reported problems!

The pre-launch checker found issues. The launch continues anyway, this check
is advisory only.

## Things you can try:
- Run the full diagnosis for details on each check:
~~~
$ runway doctor
~~~

- Apply automatic fixes where available:
~~~
$ runway doctor --fix
~~~`,
	}

	appLaunchFailedIssue = &Issue{
		id:   AppLaunchFailedId,
		slug: "app-launch-failed",
		mdMsg: `
# Application failed to launch!

The application entry point could not be started, or exited immediately.

## Common causes:
- The entry point file is missing from the install directory
- A dependency failed to import (often after a skipped installation)
- The configured port is already in use

## Things you can try:
- Check the application's own output above for the actual error
- Reinstall dependencies and relaunch:
~~~
$ runway restart
~~~

- Capture a full session log:
~~~
$ runway up --capture
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		slug: "config-load-failed",
		mdMsg: `
# Failed to load configuration!

Could not load the runway configuration file.

## Configuration file locations:
- Project: ./runway.cue
- Linux: ~/.config/runway/config.cue
- macOS: ~/Library/Application Support/runway/config.cue
- Windows: %APPDATA%\runway\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ runway config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ./runway.cue
~~~

## Example configuration:
~~~cue
env: {
  dir: ".venv"
}

browser: {
  cache_dir: "pw-browsers"
}

app: {
  entry: "main.py"
}
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id:   ManifestInvalidId,
		slug: "manifest-invalid",
		mdMsg: `
# Dependency manifest could not be read!

A requirements file or pyproject.toml exists but could not be parsed.

## Things you can try:
- Check the file for syntax errors (stray characters, bad TOML)
- Regenerate the pinned requirements file:
~~~
$ runway deps list --pins > requirements.txt
~~~

- Delete the broken manifest to fall back to the built-in pins`,
	}

	issues = map[Id]*Issue{
		runtimeNotFoundIssue.Id():         runtimeNotFoundIssue,
		envCreateFailedIssue.Id():         envCreateFailedIssue,
		envActivateFailedIssue.Id():       envActivateFailedIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
		browserNotFoundIssue.Id():         browserNotFoundIssue,
		browserFetchFailedIssue.Id():      browserFetchFailedIssue,
		checkerFailedIssue.Id():           checkerFailedIssue,
		appLaunchFailedIssue.Id():         appLaunchFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		manifestInvalidIssue.Id():         manifestInvalidIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

// BySlug returns the issue registered under the given slug, or nil.
func BySlug(s Slug) *Issue {
	for _, i := range issues {
		if i.slug == s {
			return i
		}
	}
	return nil
}

// Slugs returns all registered slugs in sorted order.
func Slugs() []Slug {
	out := make([]Slug, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.slug)
	}
	slices.Sort(out)
	return out
}
