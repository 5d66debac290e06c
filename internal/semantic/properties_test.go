package semantic

import (
	"testing"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/parser"
	"github.com/metro-lang/metro/internal/source"
)

func parseOK(t *testing.T, src string) (*ast.File, *diag.Sink) {
	t.Helper()
	store := source.NewStore()
	sink := diag.NewSink()
	f, _ := store.Load("<test>", src)
	l := lexer.New(f, sink)
	p := parser.New(l, sink, "<test>")
	file := p.ParseFile()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", sink.Format(false))
	}
	return file, sink
}

// Property 3: checkScope must leave the scope stack exactly as deep
// as it found it, win or lose.
func TestScopeStackDiscipline(t *testing.T) {
	file, sink := parseOK(t, `fn f() {
    let a = 1;
    if a > 0 {
        let b = a + 1;
        b
    } else {
        0
    }
}
`)
	a := New(sink)
	a.preRegister(file.Items)
	a.checkRecursiveTypes()

	a.pushScope()
	before := len(a.scopes)
	for _, item := range file.Items {
		a.checkTopItem(item)
	}
	after := len(a.scopes)
	a.popScope()

	if before != after {
		t.Errorf("scope stack depth changed: before=%d after=%d", before, after)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected analysis diagnostics: %s", sink.Format(false))
	}
}

// Property 4: checkExpr caches the resolved type on the node; calling
// it twice on the same slot must not change the identity of the
// returned *types.Type.
func TestTypeCacheIdempotence(t *testing.T) {
	file, sink := parseOK(t, `let x = (1 + 2) * 3;`)
	a := New(sink)
	a.preRegister(file.Items)
	a.checkRecursiveTypes()

	decl, ok := file.Items[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", file.Items[0])
	}

	a.pushScope()
	t1 := a.checkExpr(&decl.Init)
	t2 := a.checkExpr(&decl.Init)
	a.popScope()

	if t1 != t2 {
		t.Errorf("checkExpr returned different *types.Type across calls: %p vs %p", t1, t2)
	}
	if decl.Init.ResolvedType() != t1 {
		t.Errorf("node's cached ResolvedType() does not match checkExpr's return")
	}
}

// Property 7: a function whose body and declared result type disagree
// is rejected; one whose every path agrees is accepted.
func TestReturnTypeConsistency(t *testing.T) {
	file, sink := parseOK(t, `fn f() -> Int { true }`)
	a := New(sink)
	if a.Analyze(file) {
		t.Fatalf("expected analysis to fail on a body/result type mismatch")
	}

	file2, sink2 := parseOK(t, `fn g() -> Int { 1 + 1 }`)
	a2 := New(sink2)
	if !a2.Analyze(file2) {
		t.Fatalf("unexpected diagnostics: %s", sink2.Format(false))
	}
}

// Property 8: after Sema, every call site has resolved to exactly one
// of a user function (Callee) or a builtin (IsBuiltin).
func TestCallTargetBinding(t *testing.T) {
	file, sink := parseOK(t, `fn double(x: Int) -> Int { x * 2 }
let a = double(21);
let b = to_string(a);
`)
	a := New(sink)
	if !a.Analyze(file) {
		t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
	}

	var calls []*ast.CallFunc
	var walk func(ast.Stmt)
	var walkExpr func(ast.Expr)
	walkExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		if call, ok := e.(*ast.CallFunc); ok {
			calls = append(calls, call)
			for _, arg := range call.Args {
				walkExpr(arg)
			}
		}
	}
	walk = func(s ast.Stmt) {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			walkExpr(n.Init)
		case *ast.Function:
			for _, item := range n.Body.Items {
				walk(item)
			}
		}
	}
	for _, item := range file.Items {
		walk(item)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 call sites (double, to_string), found %d", len(calls))
	}
	for _, c := range calls {
		if c.IsBuiltin == (c.Callee != nil) {
			t.Errorf("call site has inconsistent target binding: IsBuiltin=%v Callee=%v", c.IsBuiltin, c.Callee)
		}
	}
}

// Property 9: a struct that recursively contains itself, directly or
// through another struct, is rejected before any evaluation happens.
func TestRecursiveTypeDetection(t *testing.T) {
	file, sink := parseOK(t, `struct A { b: B }
struct B { a: A }
`)
	a := New(sink)
	if a.Analyze(file) {
		t.Fatalf("expected a recursive-type diagnostic for mutually recursive structs")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diag.RecursiveType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected diag.RecursiveType, got: %s", sink.Format(false))
	}
}
