package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadIgnoreFiles reads .gitignore and .codeguardignore from root and
// returns the combined parsed patterns. Missing files are not an error.
func LoadIgnoreFiles(root string) ([]string, error) {
	patterns, err := loadIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil, err
	}

	extra, err := loadIgnoreFile(filepath.Join(root, ".codeguardignore"))
	if err != nil {
		return nil, err
	}

	return append(patterns, extra...), nil
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// IsIgnored reports whether a relative path matches any of patterns, using
// gitignore semantics: exact/wildcard name matches, directory-only patterns
// (trailing "/"), and negation (leading "!"). The .git directory is always
// ignored regardless of patterns.
func IsIgnored(path string, patterns []string) bool {
	if isGitPath(path) {
		return true
	}

	ignored := false
	for _, pattern := range patterns {
		neg := false
		p := pattern
		if strings.HasPrefix(p, "!") {
			neg = true
			p = strings.TrimPrefix(p, "!")
		}
		if matchPattern(path, p) {
			ignored = !neg
		}
	}
	return ignored
}

func isGitPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

func matchPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	dirOnly := strings.HasSuffix(pattern, "/")
	if dirOnly {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	parts := strings.Split(path, "/")

	if strings.HasPrefix(pattern, "/") {
		pattern = strings.TrimPrefix(pattern, "/")
		if dirOnly {
			return strings.HasPrefix(path, pattern+"/") || path == pattern
		}
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	if strings.Contains(pattern, "/") {
		if dirOnly {
			return strings.HasPrefix(path, pattern+"/") || path == pattern
		}
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	for i, part := range parts {
		matched, _ := filepath.Match(pattern, part)
		if !matched {
			continue
		}
		if dirOnly && i == len(parts)-1 {
			continue
		}
		return true
	}
	return false
}
