package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalk_SkipsGitignoredAndGitDir(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, filepath.Join(dir, ".gitignore"), "*.log\nvendor/\n")
	mustWrite(t, filepath.Join(dir, "main.go"), "package main\n")
	mustWrite(t, filepath.Join(dir, "debug.log"), "noise\n")
	if err := os.MkdirAll(filepath.Join(dir, "vendor"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, "vendor", "dep.go"), "package dep\n")
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")

	files, err := NewWalker(dir).Walk()
	if err != nil {
		t.Fatal(err)
	}

	paths := make(map[string]bool)
	for _, f := range files {
		paths[f.Path] = true
	}

	if !paths["main.go"] {
		t.Error("expected main.go to be discovered")
	}
	if paths["debug.log"] {
		t.Error("expected debug.log to be gitignored")
	}
	if paths["vendor/dep.go"] {
		t.Error("expected vendor/ to be gitignored")
	}
	for p := range paths {
		if filepath.Dir(p) == ".git" {
			t.Errorf("expected .git contents to be skipped, found %s", p)
		}
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
