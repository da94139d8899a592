// SPDX-License-Identifier: MPL-2.0

package doctor

import "context"

// maxFixIterations caps the check-fix-recheck loop. Repairs unlock
// each other in sequence (a rebuilt environment lets the package and
// browser fixes run on the next pass), so a few rounds settle any
// project a fix can help at all.
const maxFixIterations = 3

// Run performs the checks and, when applyFixes is set, repairs what it
// can. Each iteration applies every available fix, then re-checks the
// whole project, because one repair often changes what later checks
// see. The loop ends when nothing fails, nothing more was fixable, or
// the iteration cap is hit.
//
// Results from the final pass carry Repaired on checks that failed
// earlier, had their fix applied, and now pass.
func (c *Checker) Run(ctx context.Context, applyFixes bool) []Result {
	results := c.Check(ctx)
	if !applyFixes {
		return results
	}

	repaired := make(map[string]bool)
	for iter := 0; iter < maxFixIterations && Failed(results); iter++ {
		fixed := 0
		for _, r := range results {
			if r.Status != StatusFail || !r.Fixable() {
				continue
			}
			c.logger.Info("applying fix", "check", r.Name)
			if err := r.fix(ctx); err != nil {
				c.logger.Warn("fix failed", "check", r.Name, "err", err)
				continue
			}
			repaired[r.Name] = true
			fixed++
		}
		if fixed == 0 {
			break
		}
		results = c.Check(ctx)
	}

	for i := range results {
		if repaired[results[i].Name] && results[i].Status == StatusPass {
			results[i].Repaired = true
		}
	}
	return results
}
