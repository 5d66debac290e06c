package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/parser"
	"github.com/metro-lang/metro/internal/source"
)

// expandPaths turns the CLI's positional arguments into a flat list of
// `.metro` file paths: a plain file passes through, a directory is
// walked for every `.metro` file under it, and a glob pattern
// (supporting doublestar's `**`) is expanded against the filesystem.
// This is driver bookkeeping for the command line rather than a core
// pipeline component; `import` statements are resolved separately, by
// resolveImports.
func expandPaths(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err == nil && info.IsDir() {
			matches, err := doublestar.Glob(os.DirFS(a), "**/*.metro")
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				out = append(out, filepath.Join(a, m))
			}
			continue
		}
		if strings.ContainsAny(a, "*?[") {
			matches, err := doublestar.FilepathGlob(a)
			if err != nil {
				return nil, err
			}
			out = append(out, matches...)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// parseSource lexes and parses one piece of source text into an
// *ast.File, then resolves and inlines its `import` statements,
// de-duplicated against store (spec.md §6.2, SPEC_FULL.md §C).
func parseSource(store *source.Store, sink *diag.Sink, path, text string) *ast.File {
	f, _ := store.Load(path, text)
	l := lexer.New(f, sink)
	p := parser.New(l, sink, path)
	file := p.ParseFile()
	file.Items = resolveImports(store, sink, filepath.Dir(path), file.Items, map[string]bool{path: true})
	return file
}

// resolveImports walks items depth-first, replacing each `import`
// statement with the imported file's own top-level items (imports
// transitively resolved the same way), skipping any path already in
// seen — the source store is the canonical de-dup point, seen guards
// against the same path appearing twice in one resolution chain.
func resolveImports(store *source.Store, sink *diag.Sink, baseDir string, items []ast.Stmt, seen map[string]bool) []ast.Stmt {
	var out []ast.Stmt
	for _, it := range items {
		relPath, ok := parser.ImportPath(it)
		if !ok {
			out = append(out, it)
			continue
		}
		full := filepath.Join(baseDir, relPath+".metro")
		canonical, err := filepath.Abs(full)
		if err != nil {
			canonical = full
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		if _, loaded := store.Get(canonical); loaded {
			continue
		}
		data, err := os.ReadFile(canonical)
		if err != nil {
			sink.Errorf(diag.Undefined, source.Span{}, "cannot import %q: %v", relPath, err)
			continue
		}
		f, _ := store.Load(canonical, string(data))
		l := lexer.New(f, sink)
		p := parser.New(l, sink, canonical)
		imported := p.ParseFile()
		out = append(out, resolveImports(store, sink, filepath.Dir(canonical), imported.Items, seen)...)
	}
	return out
}
