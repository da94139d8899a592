// SPDX-License-Identifier: MPL-2.0

package python

import (
	"fmt"
	"strings"
)

// Drift is the difference between what the catalog pins and what an
// environment actually holds.
type Drift struct {
	// Missing are pins with no installed distribution.
	Missing []Pin
	// Mismatched are exact pins whose installed version differs.
	Mismatched []PinDiff
}

// PinDiff pairs a violated pin with the requirement actually installed.
type PinDiff struct {
	Pin       Pin
	Installed Requirement
}

// Clean reports whether the environment satisfies every pin.
func (d Drift) Clean() bool {
	return len(d.Missing) == 0 && len(d.Mismatched) == 0
}

// Summary renders the drift as a short operator-facing count.
func (d Drift) Summary() string {
	if d.Clean() {
		return "in sync"
	}
	var parts []string
	if len(d.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", len(d.Missing)))
	}
	if len(d.Mismatched) > 0 {
		parts = append(parts, fmt.Sprintf("%d mismatched", len(d.Mismatched)))
	}
	return strings.Join(parts, ", ")
}

// DiffPins compares an installed set (pip freeze form) against a pin
// list. Exact pins must match the installed version; ranged and
// unversioned pins are satisfied by presence alone, since evaluating a
// range would need a full specifier engine.
func DiffPins(installed []Requirement, pins []Pin) Drift {
	byName := make(map[string]Requirement, len(installed))
	for _, r := range installed {
		byName[NormalizeDistName(r.Name)] = r
	}

	var d Drift
	for _, p := range pins {
		got, ok := byName[NormalizeDistName(p.Name)]
		if !ok {
			d.Missing = append(d.Missing, p)
			continue
		}
		if !strings.HasPrefix(p.Constraint, "==") {
			continue
		}
		if got.Constraint != p.Constraint {
			d.Mismatched = append(d.Mismatched, PinDiff{Pin: p, Installed: got})
		}
	}
	return d
}
