// SPDX-License-Identifier: MPL-2.0

package python

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ManifestKind distinguishes the supported dependency manifest formats.
type ManifestKind string

const (
	// ManifestRequirements is a pip requirements file.
	ManifestRequirements ManifestKind = "requirements"
	// ManifestPyproject is a PEP 621 pyproject.toml.
	ManifestPyproject ManifestKind = "pyproject"
)

// Manifest is a dependency manifest found in the project.
type Manifest struct {
	Path string
	Kind ManifestKind
}

// DetectManifest probes root for the named manifests in order and
// returns the first that exists. ok is false when none do, which is a
// normal state: projects without a manifest simply skip installation.
func DetectManifest(root string, names []string) (m *Manifest, ok bool) {
	for _, name := range names {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		return &Manifest{Path: p, Kind: kindOf(name)}, true
	}
	return nil, false
}

func kindOf(name string) ManifestKind {
	if strings.EqualFold(filepath.Base(name), "pyproject.toml") {
		return ManifestPyproject
	}
	return ManifestRequirements
}

// Requirement is one dependency specification from a manifest.
type Requirement struct {
	// Name is the distribution name exactly as written, including any
	// extras suffix.
	Name string
	// Constraint is the version portion with its operator, such as
	// "==0.40.0" or ">=4.12.0". Empty means any version.
	Constraint string
}

// String returns the requirement in pip specifier form.
func (r Requirement) String() string {
	return r.Name + r.Constraint
}

var constraintOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// ParseRequirement splits a single specifier into name and constraint.
func ParseRequirement(spec string) Requirement {
	spec = strings.TrimSpace(spec)
	cut := len(spec)
	for _, op := range constraintOps {
		if i := strings.Index(spec, op); i >= 0 && i < cut {
			cut = i
		}
	}
	return Requirement{
		Name:       strings.TrimSpace(spec[:cut]),
		Constraint: strings.TrimSpace(spec[cut:]),
	}
}

// ParseRequirements reads a pip requirements listing. Comments, blank
// lines, and pip option lines are skipped.
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		reqs = append(reqs, ParseRequirement(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// LoadRequirements parses the requirements file at path.
func LoadRequirements(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reqs, err := ParseRequirements(f)
	if err != nil {
		return nil, &InvalidManifestError{Path: path, Err: err}
	}
	return reqs, nil
}

// Pyproject is the subset of pyproject.toml the launcher reads.
type Pyproject struct {
	Project struct {
		Name           string   `toml:"name"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
}

// LoadPyproject parses the pyproject.toml at path.
func LoadPyproject(path string) (*Pyproject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, &InvalidManifestError{Path: path, Err: err}
	}
	return &p, nil
}

// Requirements returns the project dependencies as parsed requirements.
func (p *Pyproject) Requirements() []Requirement {
	reqs := make([]Requirement, 0, len(p.Project.Dependencies))
	for _, d := range p.Project.Dependencies {
		reqs = append(reqs, ParseRequirement(d))
	}
	return reqs
}

// Requirements loads and parses the manifest's requirement list,
// whichever format it uses.
func (m *Manifest) Requirements() ([]Requirement, error) {
	switch m.Kind {
	case ManifestPyproject:
		p, err := LoadPyproject(m.Path)
		if err != nil {
			return nil, err
		}
		return p.Requirements(), nil
	default:
		return LoadRequirements(m.Path)
	}
}
