package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"sync"
)

// MatchResult describes a single match of a rule pattern within file content.
// Line and Column are 1-based.
type MatchResult struct {
	Line      int
	Column    int
	MatchText string
}

// Matcher is the interface that all pattern-matching strategies satisfy.
type Matcher interface {
	Match(content []byte, rule Rule) []MatchResult
}

// RegexMatcher implements Matcher with compiled, cached regular expressions.
type RegexMatcher struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

// NewRegexMatcher returns a RegexMatcher with an initialised pattern cache.
func NewRegexMatcher() *RegexMatcher {
	return &RegexMatcher{cache: make(map[string]*regexp.Regexp)}
}

func (m *RegexMatcher) compile(pattern string) (*regexp.Regexp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok := m.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	m.cache[pattern] = re
	return re, nil
}

// Match finds all occurrences of the rule pattern in content, scanning line
// by line so line/column bookkeeping stays exact even for multiline files.
func (m *RegexMatcher) Match(content []byte, rule Rule) []MatchResult {
	re, err := m.compile(rule.Pattern)
	if err != nil {
		return nil
	}

	var results []MatchResult
	lines := bytes.Split(content, []byte("\n"))
	for i, line := range lines {
		locs := re.FindAllIndex(line, -1)
		for _, loc := range locs {
			results = append(results, MatchResult{
				Line:      i + 1,
				Column:    loc[0] + 1,
				MatchText: string(line[loc[0]:loc[1]]),
			})
		}
	}
	return results
}

// MatcherRegistry maps matcher type strings to Matcher implementations.
type MatcherRegistry struct {
	matchers map[string]Matcher
}

// NewMatcherRegistry returns an empty registry.
func NewMatcherRegistry() *MatcherRegistry {
	return &MatcherRegistry{matchers: make(map[string]Matcher)}
}

// Register associates a matcher type string with an implementation.
func (r *MatcherRegistry) Register(matcherType string, m Matcher) {
	r.matchers[matcherType] = m
}

// Get returns the Matcher for the given type, or nil if none is registered.
func (r *MatcherRegistry) Get(matcherType string) Matcher {
	return r.matchers[matcherType]
}

// NewDefaultMatcherRegistry returns a registry pre-populated with the
// built-in "regex" and "entropy" matchers.
func NewDefaultMatcherRegistry() *MatcherRegistry {
	r := NewMatcherRegistry()
	r.Register("regex", NewRegexMatcher())
	r.Register("entropy", &EntropyMatcher{})
	return r
}
