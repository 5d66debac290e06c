// Package semantic implements Sema (component C4 of spec.md §4.3):
// name resolution, type inference/checking, call-target binding, and
// the side-annotations later read by the evaluator.
package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/types"
)

// funcCtx is the active function context while checking its body:
// the function and its declared result type. Each Return in the body
// is checked against resultType when it is reached; return types are
// not collected into a list.
type funcCtx struct {
	fn         *ast.Function
	resultType *types.Type
}

// Analyzer runs Sema over one *ast.File's root scope. Analyzer is not
// safe for concurrent or repeated use across unrelated files; the
// driver constructs a fresh one per file (spec.md §5, "Reentrancy").
type Analyzer struct {
	sink *diag.Sink

	funcs     map[string]*ast.Function
	implFuncs map[string]map[string]*ast.Function
	structs   map[string]*ast.Struct
	enums     map[string]*ast.Enum
	builtins  map[string]*builtinSig

	scopes    []*scopeFrame
	funcStack []*funcCtx
	loopDepth int
}

// New creates an Analyzer reporting to sink, pre-loaded with the
// built-in library of spec.md §6.3.
func New(sink *diag.Sink) *Analyzer {
	return &Analyzer{
		sink:      sink,
		funcs:     map[string]*ast.Function{},
		implFuncs: map[string]map[string]*ast.Function{},
		structs:   map[string]*ast.Struct{},
		enums:     map[string]*ast.Enum{},
		builtins:  builtinSignatures(),
	}
}

// Analyze runs the full Sema pass over file in three ordered steps
// (declaration pre-registration, then the recursion guard over the
// registered structs and enums, then the tree check), and reports
// whether the file is free of Error diagnostics.
func (a *Analyzer) Analyze(file *ast.File) bool {
	a.preRegister(file.Items)
	a.checkRecursiveTypes()

	a.pushScope()
	for _, item := range file.Items {
		a.checkTopItem(item)
	}
	a.popScope()

	return !a.sink.HasErrors()
}

// preRegister indexes every top-level Function/Struct/Enum/Impl so
// forward references resolve (spec.md §4.3 step 2).
func (a *Analyzer) preRegister(items []ast.Stmt) {
	for _, it := range items {
		switch n := it.(type) {
		case *ast.Function:
			if _, dup := a.funcs[n.Name]; dup {
				a.sink.Errorf(diag.MultipleDefined, ast.Span(n), "function %q is already defined", n.Name)
				continue
			}
			a.funcs[n.Name] = n
		case *ast.Struct:
			if len(n.Members) == 0 {
				a.sink.Errorf(diag.EmptyStruct, ast.Span(n), "struct %q has no members", n.Name)
			}
			if _, dup := a.structs[n.Name]; dup {
				a.sink.Errorf(diag.MultipleDefined, ast.Span(n), "type %q is already defined", n.Name)
				continue
			}
			a.structs[n.Name] = n
		case *ast.Enum:
			if len(n.Enumerators) == 0 {
				a.sink.Errorf(diag.EmptyEnum, ast.Span(n), "enum %q has no enumerators", n.Name)
			}
			if _, dup := a.enums[n.Name]; dup {
				a.sink.Errorf(diag.MultipleDefined, ast.Span(n), "type %q is already defined", n.Name)
				continue
			}
			a.enums[n.Name] = n
		case *ast.Impl:
			for _, fn := range n.Functions {
				methods := a.implFuncs[n.TargetName]
				if methods == nil {
					methods = map[string]*ast.Function{}
					a.implFuncs[n.TargetName] = methods
				}
				if _, dup := methods[fn.Name]; dup {
					a.sink.Errorf(diag.MultipleDefined, ast.Span(fn), "method %q is already defined on %q", fn.Name, n.TargetName)
					continue
				}
				methods[fn.Name] = fn
			}
		}
	}
}

// checkTopItem dispatches one top-level item: declarations are
// checked as such, everything else is a bare statement evaluated in
// the file's root scope (spec.md §6.1's `-c` inline-program mode and
// SPEC_FULL.md §C both rely on bare top-level statements being legal).
func (a *Analyzer) checkTopItem(item ast.Stmt) {
	switch n := item.(type) {
	case *ast.Function:
		a.checkFunctionDecl(n)
	case *ast.Struct, *ast.Enum:
		// Already fully described by TypeDescriptor/EnumeratorType;
		// member/enumerator types are resolved lazily wherever they're
		// referenced, so there is nothing further to check here.
	case *ast.Impl:
		for _, fn := range n.Functions {
			a.checkFunctionDecl(fn)
		}
	default:
		a.checkStmt(item)
	}
}

func (a *Analyzer) checkFunctionDecl(fn *ast.Function) {
	resultType := a.resolveType(fn.ResultType)
	fctx := &funcCtx{fn: fn, resultType: resultType}
	a.funcStack = append(a.funcStack, fctx)

	a.pushScope()
	if fn.HaveSelf {
		a.declare("self", a.implTargetType(fn.ImplTarget), false)
	}
	for _, p := range fn.Params {
		a.declare(p.Name, a.resolveType(p.Type), false)
	}
	bodyType := a.checkScope(fn.Body)
	a.popScope()

	a.funcStack = a.funcStack[:len(a.funcStack)-1]

	if fn.Body.ReturnLastExpr {
		if !a.accepts(bodyType, resultType) {
			a.sink.Errorf(diag.ReturnMismatch, ast.Span(fn.Body), "function %q's body produces %s, expected result type %s", fn.Name, bodyType, resultType)
		}
	} else if resultType.Kind != types.None && !alwaysReturns(fn.Body) {
		a.sink.Errorf(diag.ReturnMismatch, ast.Span(fn), "function %q must return a value of type %s on every path", fn.Name, resultType)
	}
}

func (a *Analyzer) implTargetType(name string) *types.Type {
	if s, ok := a.structs[name]; ok {
		return s.TypeDescriptor()
	}
	if e, ok := a.enums[name]; ok {
		return e.TypeDescriptor()
	}
	return types.NoneType
}

func (a *Analyzer) inLoop() bool { return a.loopDepth > 0 }
