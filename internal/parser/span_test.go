package parser_test

import (
	"testing"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/parser"
	"github.com/metro-lang/metro/internal/source"
)

// Property 2 (spec.md §8): every node's span encloses its descendants'
// spans, and a node's end never precedes its start.
func TestNodeSpanEnclosesDescendants(t *testing.T) {
	src := `fn sum(a: Int, b: Int) -> Int {
    let total = a + b;
    total
}
`
	store := source.NewStore()
	sink := diag.NewSink()
	f, _ := store.Load("<test>", src)
	l := lexer.New(f, sink)
	p := parser.New(l, sink, "<test>")
	file := p.ParseFile()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", sink.Format(false))
	}
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 top-level item, got %d", len(file.Items))
	}

	fn, ok := file.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", file.Items[0])
	}

	fileSpan := ast.Span(file)
	fnSpan := ast.Span(fn)
	bodySpan := ast.Span(fn.Body)

	assertEncloses(t, fileSpan, fnSpan, "file", "function")
	assertEncloses(t, fnSpan, bodySpan, "function", "body")

	if len(fn.Body.Items) == 0 {
		t.Fatalf("expected the body to contain statements")
	}
	for _, item := range fn.Body.Items {
		assertEncloses(t, bodySpan, ast.Span(item), "body", "statement")
	}
}

func assertEncloses(t *testing.T, outer, inner source.Span, outerName, innerName string) {
	t.Helper()
	if inner.Offset < outer.Offset || inner.Offset+inner.Length > outer.Offset+outer.Length {
		t.Errorf("%s span [%d,%d) does not enclose %s span [%d,%d)",
			outerName, outer.Offset, outer.Offset+outer.Length,
			innerName, inner.Offset, inner.Offset+inner.Length)
	}
	if inner.Length < 0 {
		t.Errorf("%s span has negative length", innerName)
	}
}
