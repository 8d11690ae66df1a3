package duplicate

import (
	"context"
	"fmt"

	"github.com/nox-hq/codeguard/internal/violations"
)

const (
	// defaultThreshold is the minimum similarity score for two functions to
	// be reported as duplicates, matching the reference implementation's
	// default.
	defaultThreshold = 0.85

	ruleID = "DUP001"

	// minBodyLines guards against flagging trivial one- or two-line
	// functions (getters, simple wrappers) as duplicates: their normalized
	// fingerprints collide constantly and carry no signal.
	minBodyLines = 4
)

// File is a single source file to be scanned for cross-file duplication.
type File struct {
	Path    string
	Content []byte
}

// Detector finds near-duplicate functions across a set of files.
type Detector struct {
	threshold float64
}

// New returns a Detector using the default similarity threshold. Pass a
// policy-configured threshold via WithThreshold to override it.
func New() *Detector {
	return &Detector{threshold: defaultThreshold}
}

// WithThreshold overrides the similarity threshold used to flag duplicates.
func (d *Detector) WithThreshold(threshold float64) *Detector {
	if threshold > 0 {
		d.threshold = threshold
	}
	return d
}

type fingerprinted struct {
	fn Function
	fp string
}

// Detect extracts functions from every file and reports one violation per
// cross-file pair whose normalized-body similarity meets the configured
// threshold. It never compares two functions from the same file — that is
// within-file duplication, a different concern this detector doesn't cover.
func (d *Detector) Detect(ctx context.Context, files []File) []violations.Violation {
	var all []fingerprinted
	for _, f := range files {
		for _, fn := range ExtractFunctions(ctx, f.Path, f.Content) {
			if fn.EndLine-fn.StartLine+1 < minBodyLines {
				continue
			}
			all = append(all, fingerprinted{fn: fn, fp: Fingerprint(fn.Body)})
		}
	}

	var out []violations.Violation
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.fn.FilePath == b.fn.FilePath {
				continue
			}
			score := Similarity(a.fp, b.fp)
			if score < d.threshold {
				continue
			}
			out = append(out, violations.Violation{
				RuleID:   ruleID,
				RuleName: "Duplicate Code Detected",
				Category: violations.CategoryCodeQuality,
				Severity: violations.SeverityMedium,
				Location: violations.Location{
					FilePath:   b.fn.FilePath,
					LineNumber: b.fn.StartLine,
				},
				Message: fmt.Sprintf("function at %s:%d is %.0f%% similar to %s:%d",
					b.fn.FilePath, b.fn.StartLine, score*100, a.fn.FilePath, a.fn.StartLine),
				Explanation:   "Near-identical logic duplicated across files increases maintenance cost and the risk of divergent bug fixes.",
				FixSuggestion: "Extract the shared logic into a common function or module.",
			})
		}
	}
	return out
}
