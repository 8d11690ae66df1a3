package rules

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// defaultEntropyThreshold is the minimum Shannon entropy for a candidate
// string to be flagged as a potential generic secret, absent a rule override.
const defaultEntropyThreshold = 4.5

// contextBoostReduction lowers the entropy threshold when the line containing
// a candidate also carries a secret-suggestive variable name.
const contextBoostReduction = 0.5

// minCandidateLen is the minimum length for any candidate string.
const minCandidateLen = 8

var secretHints = []string{
	"password", "secret", "key", "token", "credential", "api_key", "private",
}

var base64Re = regexp.MustCompile(`[A-Za-z0-9+/=]{20,}`)
var hexRe = regexp.MustCompile(`[0-9a-fA-F]{16,}`)

// EntropyMatcher flags generic high-entropy strings that don't match a known
// vendor secret pattern — a supplemental, lower-confidence signal alongside
// the named SEC* regex rules.
type EntropyMatcher struct{}

// Match scans content line by line, extracts candidate strings via several
// tokenizers (quoted strings, assignment RHS, base64/hex blobs), and returns
// those whose Shannon entropy exceeds the threshold.
func (m *EntropyMatcher) Match(content []byte, rule Rule) []MatchResult {
	threshold := defaultEntropyThreshold
	if v, ok := rule.Metadata["entropy_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = parsed
		}
	}

	lines := bytes.Split(content, []byte("\n"))
	var results []MatchResult

	for lineIdx, line := range lines {
		lineStr := string(line)
		lineLower := strings.ToLower(lineStr)

		effective := threshold
		if hasSecretContext(lineLower) {
			effective -= contextBoostReduction
		}

		type candidate struct {
			col  int
			text string
		}
		seen := make(map[string]struct{})
		var candidates []candidate
		addCandidate := func(col int, text string) {
			key := strconv.Itoa(col) + ":" + text
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			candidates = append(candidates, candidate{col: col, text: text})
		}

		extractQuoted(lineStr, addCandidate)
		extractAssignmentRHS(lineStr, addCandidate)
		extractRegexCandidates(lineStr, base64Re, 20, addCandidate)
		extractRegexCandidates(lineStr, hexRe, 16, addCandidate)

		for _, c := range candidates {
			if len(c.text) < minCandidateLen || isLikelyNotSecret(c.text) {
				continue
			}
			if entropy := ShannonEntropy(c.text); entropy >= effective {
				results = append(results, MatchResult{Line: lineIdx + 1, Column: c.col, MatchText: c.text})
			}
		}
	}

	return results
}

// ShannonEntropy calculates the Shannon entropy of s in bits per character.
func ShannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0.0
	}
	freq := make(map[rune]float64)
	for _, c := range s {
		freq[c]++
	}
	length := float64(len([]rune(s)))
	var entropy float64
	for _, count := range freq {
		if p := count / length; p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

func hasSecretContext(lineLower string) bool {
	for _, hint := range secretHints {
		if strings.Contains(lineLower, hint) {
			return true
		}
	}
	return false
}

func extractQuoted(line string, addFn func(col int, text string)) {
	for _, quote := range []byte{'"', '\''} {
		i := 0
		for i < len(line) {
			start := strings.IndexByte(line[i:], quote)
			if start == -1 {
				break
			}
			start += i
			end := strings.IndexByte(line[start+1:], quote)
			if end == -1 {
				break
			}
			end += start + 1
			value := line[start+1 : end]
			if len(value) >= minCandidateLen {
				addFn(start+2, value)
			}
			i = end + 1
		}
	}
}

func extractAssignmentRHS(line string, addFn func(col int, text string)) {
	for i := 0; i < len(line); i++ {
		var rhsStart int
		switch {
		case i+1 < len(line) && line[i] == '=' && line[i+1] == '>':
			rhsStart = i + 2
		case line[i] == '=' && (i == 0 || (line[i-1] != '!' && line[i-1] != '<' && line[i-1] != '>')):
			if i+1 < len(line) && line[i+1] == '=' {
				i++
				continue
			}
			rhsStart = i + 1
		case line[i] == ':' && (i+1 >= len(line) || line[i+1] != ':'):
			rhsStart = i + 1
		default:
			continue
		}

		for rhsStart < len(line) && (line[rhsStart] == ' ' || line[rhsStart] == '\t') {
			rhsStart++
		}

		if rhsStart < len(line) && (line[rhsStart] == '"' || line[rhsStart] == '\'') {
			i = rhsStart
			continue
		}

		rhsEnd := rhsStart
		for rhsEnd < len(line) && isTokenChar(line[rhsEnd]) {
			rhsEnd++
		}

		if token := line[rhsStart:rhsEnd]; len(token) >= 16 {
			addFn(rhsStart+1, token)
		}

		i = rhsEnd
	}
}

func isTokenChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '+' || c == '/' || c == '=' || c == '-' || c == '_' || c == '.'
}

func extractRegexCandidates(line string, re *regexp.Regexp, minLen int, addFn func(col int, text string)) {
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if text := line[loc[0]:loc[1]]; len(text) >= minLen {
			addFn(loc[0]+1, text)
		}
	}
}

// isLikelyNotSecret filters out strings that commonly cause false positives:
// URLs and all-lowercase dictionary-like words.
func isLikelyNotSecret(s string) bool {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}

	allLower := true
	for _, r := range s {
		if !unicode.IsLetter(r) || !unicode.IsLower(r) {
			allLower = false
			break
		}
	}
	return allLower
}
