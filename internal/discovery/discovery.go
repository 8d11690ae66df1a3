// Package discovery walks a project directory and builds the scan.FileInput
// list a local scan submits to the orchestrator, respecting .gitignore and
// .codeguardignore patterns the same way a CI job would only see tracked,
// non-ignored files.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
)

// maxFileBytes caps how large a single file's content is read into memory
// for scanning; larger files are skipped rather than risking huge allocations
// on an accidentally-included binary or data file.
const maxFileBytes = 2 << 20 // 2 MiB

// skipExtensions lists binary/generated extensions never worth scanning.
var skipExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".zip": true, ".tar": true, ".gz": true, ".exe": true, ".bin": true,
	".so": true, ".dylib": true, ".dll": true, ".pdf": true,
}

// File is a single discovered file, relative to the walked root.
type File struct {
	Path    string
	AbsPath string
	Size    int64
}

// Walker recursively discovers scannable files under Root.
type Walker struct {
	Root           string
	IgnorePatterns []string
}

// NewWalker creates a Walker rooted at root, loading .gitignore and
// .codeguardignore patterns from root if present.
func NewWalker(root string) *Walker {
	patterns, _ := LoadIgnoreFiles(root)
	return &Walker{Root: root, IgnorePatterns: patterns}
}

// Walk traverses Root and returns every scannable file, sorted by path.
// Directories matching ignore patterns or named .git are skipped entirely.
func (w *Walker) Walk() ([]File, error) {
	absRoot, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, err
	}

	var files []File

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if info.IsDir() && info.Name() == ".git" {
			return filepath.SkipDir
		}
		if IsIgnored(rel, w.IgnorePatterns) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if skipExtensions[filepath.Ext(info.Name())] {
			return nil
		}
		if info.Size() > maxFileBytes {
			return nil
		}

		files = append(files, File{
			Path:    filepath.ToSlash(rel),
			AbsPath: path,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ReadFileInputs reads the content of every discovered file into a
// scan.FileInput-shaped pair of path and content. It's kept decoupled from
// the scan package's type so discovery never imports it; callers assemble
// scan.FileInput themselves.
func ReadFileInputs(files []File) (map[string]string, error) {
	contents := make(map[string]string, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.AbsPath)
		if err != nil {
			return nil, err
		}
		contents[f.Path] = string(data)
	}
	return contents, nil
}
