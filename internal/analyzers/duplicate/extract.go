// Package duplicate implements cross-file duplicate-code detection: function
// boundary extraction (tree-sitter where a grammar is available, a regex
// fallback otherwise), content normalization, and fingerprint-based
// similarity scoring.
package duplicate

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Function is an extracted function/method body with its source location.
type Function struct {
	Name      string
	FilePath  string
	StartLine int
	EndLine   int
	Body      string
}

// functionNodeTypes lists the tree-sitter node type names that represent a
// function-like declaration for each supported grammar.
var functionNodeTypes = map[string]map[string]bool{
	"go":         {"function_declaration": true, "method_declaration": true},
	"python":     {"function_definition": true},
	"typescript": {"function_declaration": true, "method_definition": true},
	"tsx":        {"function_declaration": true, "method_definition": true},
	"bash":       {"function_definition": true},
	"html":       {"element": true},
}

var languageByExt = map[string]string{
	".go":   "go",
	".py":   "python",
	".ts":   "typescript",
	".tsx":  "tsx",
	".sh":   "bash",
	".bash": "bash",
	".html": "html",
	".htm":  "html",
}

func grammarFor(lang string) *sitter.Language {
	switch lang {
	case "go":
		return golang.GetLanguage()
	case "python":
		return python.GetLanguage()
	case "typescript":
		return typescript.GetLanguage()
	case "tsx":
		return tsx.GetLanguage()
	case "bash":
		return bash.GetLanguage()
	case "html":
		return html.GetLanguage()
	default:
		return nil
	}
}

// fallbackFuncRe matches a loose set of function-like declarations for
// languages without a wired tree-sitter grammar (sql, yaml, markdown, and any
// unrecognized extension), bounding the body to a fixed line window since the
// true closing boundary can't be determined without a parser.
var fallbackFuncRe = regexp.MustCompile(`(?m)^\s*(?:def|function|const|let|var)\s+(\w+)\s*[\(\[]`)

const fallbackWindowLines = 20

// ExtractFunctions returns every function-like declaration found in content.
// It uses tree-sitter when filePath's extension maps to a supported grammar,
// and falls back to a regex + fixed-window heuristic otherwise.
func ExtractFunctions(ctx context.Context, filePath string, content []byte) []Function {
	ext := strings.ToLower(filepath.Ext(filePath))
	lang, ok := languageByExt[ext]
	if !ok {
		return extractFallback(filePath, content)
	}

	grammar := grammarFor(lang)
	if grammar == nil {
		return extractFallback(filePath, content)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil || tree == nil {
		return extractFallback(filePath, content)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return extractFallback(filePath, content)
	}

	wanted := functionNodeTypes[lang]
	var out []Function
	walk(root, func(n *sitter.Node) {
		if !wanted[n.Type()] {
			return
		}
		out = append(out, Function{
			Name:      nodeName(n, content),
			FilePath:  filePath,
			StartLine: int(n.StartPoint().Row) + 1,
			EndLine:   int(n.EndPoint().Row) + 1,
			Body:      string(content[n.StartByte():n.EndByte()]),
		})
	})
	return out
}

func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// nodeName looks for the first identifier-like child to use as a label; it
// is best-effort and only used for diagnostics, never for matching.
func nodeName(n *sitter.Node, content []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "identifier", "field_identifier", "property_identifier", "type_identifier":
			return string(content[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

func extractFallback(filePath string, content []byte) []Function {
	lines := strings.Split(string(content), "\n")
	var out []Function
	for i, line := range lines {
		m := fallbackFuncRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		end := i + fallbackWindowLines
		if end > len(lines) {
			end = len(lines)
		}
		out = append(out, Function{
			Name:      m[1],
			FilePath:  filePath,
			StartLine: i + 1,
			EndLine:   end,
			Body:      strings.Join(lines[i:end], "\n"),
		})
	}
	return out
}
