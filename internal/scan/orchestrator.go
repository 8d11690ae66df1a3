package scan

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	aianalyzer "github.com/nox-hq/codeguard/internal/analyzers/ai"
	"github.com/nox-hq/codeguard/internal/analyzers/copilot"
	"github.com/nox-hq/codeguard/internal/analyzers/duplicate"
	"github.com/nox-hq/codeguard/internal/analyzers/license"
	"github.com/nox-hq/codeguard/internal/analyzers/standards"
	"github.com/nox-hq/codeguard/internal/analyzers/static"
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/suppress"
	"github.com/nox-hq/codeguard/internal/violations"
)

// maxConcurrentFiles bounds how many files are analyzed at once, so a scan
// of a very large changeset doesn't spawn unbounded goroutines or overwhelm
// the AI provider's rate limit.
const maxConcurrentFiles = 8

// Scanner orchestrates every analyzer engine and the policy engine into a
// single scan operation. A Scanner is safe for concurrent use; all state it
// holds is either read-only after construction or owned by the components
// it wraps.
type Scanner struct {
	static    *static.Analyzer
	standards *standards.Analyzer
	license   *license.Analyzer
	copilot   *copilot.Detector
	duplicate *duplicate.Detector
	ai        *aianalyzer.Analyzer

	policies  *policy.Store
	rulePacks *policy.PackRegistry
}

// New returns a Scanner. aiAnalyzer may be nil to disable AI-assisted
// analysis and fix-suggestion enhancement entirely.
func New(policies *policy.Store, rulePacks *policy.PackRegistry, aiAnalyzer *aianalyzer.Analyzer) *Scanner {
	return &Scanner{
		static:    static.New(),
		standards: standards.New(),
		license:   license.New(),
		copilot:   copilot.New(),
		duplicate: duplicate.New(),
		ai:        aiAnalyzer,
		policies:  policies,
		rulePacks: rulePacks,
	}
}

// Scan runs every analyzer over req.Files, applies policy filtering and rule
// packs, determines the enforcement action, and returns the full result. No
// single file's or engine's failure aborts the scan: each is recovered and
// logged, and the file simply contributes whatever violations the other
// engines found for it.
func (s *Scanner) Scan(ctx context.Context, req Request) Result {
	start := time.Now()

	cfg := s.policies.Resolve(req.Repository, req.PolicyOverride)

	var (
		mu              sync.Mutex
		all             []violations.Violation
		copilotDetected bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for _, f := range req.Files {
		f := f
		if f.Path == "" {
			slog.Warn("skipping file with no path")
			continue
		}

		g.Go(func() error {
			fileViolations, isCopilot := s.scanFile(gctx, f, req.DetectCopilot)

			mu.Lock()
			all = append(all, fileViolations...)
			if isCopilot {
				copilotDetected = true
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // per-file errors are already recovered inside scanFile

	all = append(all, s.detectDuplicates(ctx, req.Files)...)

	filtered := policy.FilterViolations(all, cfg)
	for _, packName := range cfg.RulePacks {
		// Rule packs need raw content to re-scan, which filtered violations
		// no longer carry per-file; apply per file instead of in bulk.
		filtered = s.applyRulePackAcrossFiles(filtered, packName, req.Files)
	}
	// Rule-pack violations bypass the initial filter pass, so re-filter to
	// keep them subject to the same severity_threshold/enabled_rules/
	// disabled_rules policy as everything else.
	filtered = policy.FilterViolations(filtered, cfg)

	decision := policy.DetermineEnforcement(filtered, cfg, req.OverrideBlocking)

	return Result{
		ScanID:            uuid.New().String(),
		Repository:        req.Repository,
		Violations:        filtered,
		Summary:           buildSummary(filtered),
		EnforcementAction: decision.Mode,
		CanMerge:          decision.CanMerge,
		CopilotDetected:   copilotDetected,
		ProcessingTimeMs:  float64(time.Since(start).Microseconds()) / 1000.0,
	}
}

// scanFile runs the fixed per-file analyzer order: Copilot-origin detection,
// static pattern analysis, AI analysis (plus AI-enhanced fix suggestions for
// weak static ones), license checking, and coding-standards checking. Inline
// codeguard:ignore suppressions are applied last, after every engine has had
// a chance to report.
func (s *Scanner) scanFile(ctx context.Context, f FileInput, detectCopilot bool) ([]violations.Violation, bool) {
	content := []byte(f.Content)

	isCopilot := false
	if detectCopilot {
		isCopilot = s.copilot.Detect(f.Content, f.Metadata)
	}

	var fileViolations []violations.Violation

	staticViolations, err := s.static.AnalyzeFile(f.Path, content, isCopilot)
	if err != nil {
		slog.Error("static analysis failed", "file", f.Path, "error", err)
	} else {
		fileViolations = append(fileViolations, staticViolations...)
	}

	if s.ai != nil {
		aiViolations := s.ai.AnalyzeFile(ctx, f.Path, f.Content, isCopilot)
		fileViolations = append(fileViolations, aiViolations...)
		s.enhanceWithAIFixes(ctx, staticViolations, f.Content)
	}

	licenseViolations := s.license.CheckFile(f.Path, f.Content)
	fileViolations = append(fileViolations, licenseViolations...)

	standardsViolations := s.standards.AnalyzeFile(f.Path, content, isCopilot, nil)
	fileViolations = append(fileViolations, standardsViolations...)

	return applySuppressions(fileViolations, content, f.Path), isCopilot
}

// enhanceWithAIFixes asks the AI adapter for a better fix suggestion on any
// static violation whose existing suggestion is empty or too generic to be
// actionable, matching it back by rule ID and line since staticViolations
// and the slice appended into fileViolations share the same backing values.
func (s *Scanner) enhanceWithAIFixes(ctx context.Context, staticViolations []violations.Violation, content string) {
	lines := strings.Split(content, "\n")

	for i := range staticViolations {
		v := &staticViolations[i]
		if !aianalyzer.NeedsFixSuggestion(v.FixSuggestion) {
			continue
		}

		start := v.Location.LineNumber - 5
		if start < 0 {
			start = 0
		}
		end := v.Location.LineNumber + 5
		if end > len(lines) {
			end = len(lines)
		}
		if start >= end {
			continue
		}
		codeContext := strings.Join(lines[start:end], "\n")

		if fix := s.ai.SuggestFix(ctx, v.RuleName, v.Message, codeContext); fix != "" {
			v.FixSuggestion = fix
		}
	}
}

func applySuppressions(vs []violations.Violation, content []byte, filePath string) []violations.Violation {
	supps := suppress.ScanForSuppressions(content, filePath)
	if len(supps) == 0 {
		return vs
	}

	now := time.Now()
	out := make([]violations.Violation, 0, len(vs))
	for _, v := range vs {
		suppressed := false
		for _, supp := range supps {
			if supp.MatchesViolation(v.RuleID, v.Location.LineNumber, now) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			out = append(out, v)
		}
	}
	return out
}

func (s *Scanner) applyRulePackAcrossFiles(vs []violations.Violation, packName string, files []FileInput) []violations.Violation {
	for _, f := range files {
		vs = s.rulePacks.ApplyRulePack(vs, packName, f.Path, f.Content)
	}
	return vs
}

// detectDuplicates runs the cross-file duplicate detector over the whole
// file set. It runs once per scan rather than per-file: duplication is a
// property of the file set as a whole, not of any single file, so it can't
// be folded into the per-file fan-out above.
func (s *Scanner) detectDuplicates(ctx context.Context, files []FileInput) []violations.Violation {
	fs := make([]duplicate.File, 0, len(files))
	for _, f := range files {
		fs = append(fs, duplicate.File{Path: f.Path, Content: []byte(f.Content)})
	}
	return s.duplicate.Detect(ctx, fs)
}
