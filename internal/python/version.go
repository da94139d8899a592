// SPDX-License-Identifier: MPL-2.0

package python

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an interpreter version as reported by `python --version`.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the version in dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is at or above the given major.minor floor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// ParseVersion extracts a Version from interpreter output such as
// "Python 3.11.4". A bare "3.11" is accepted; the patch defaults to
// zero. Pre-release suffixes like "3.13.0rc1" are tolerated.
func ParseVersion(s string) (Version, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return Version{}, fmt.Errorf("empty version string")
	}
	raw := fields[len(fields)-1]
	parts := strings.SplitN(raw, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unrecognized version %q", raw)
	}
	var nums [3]int
	for i, part := range parts {
		digits := part
		for j, r := range part {
			if r < '0' || r > '9' {
				digits = part[:j]
				break
			}
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Version{}, fmt.Errorf("unrecognized version %q", raw)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
