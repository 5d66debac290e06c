package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/source"
	"github.com/metro-lang/metro/internal/types"
)

// Interp runs the tree-walking evaluator of spec.md §4.4 over one
// Sema-checked *ast.File. Not safe for concurrent use — spec.md §5
// describes a single cooperative, single-threaded context.
type Interp struct {
	sink *diag.Sink

	funcs     map[string]*ast.Function
	implFuncs map[string]map[string]*ast.Function
	structs   map[string]*ast.Struct
	enums     map[string]*ast.Enum

	frames []*Frame

	Stdout io.Writer
	Stdin  *bufio.Reader
}

// haltSignal unwinds the evaluator after a fatal runtime diagnostic
// (spec.md §4.4.3: "emit runtime diagnostic ... terminate with a
// non-zero exit code") or a built-in `exit` call.
type haltSignal struct{ code int }

func (h haltSignal) Error() string { return "metro: halted" }

// New creates an Interp reporting runtime diagnostics to sink, with
// stdout/stdin wired to the process streams (overridable for tests).
func New(sink *diag.Sink) *Interp {
	return &Interp{
		sink:      sink,
		funcs:     map[string]*ast.Function{},
		implFuncs: map[string]map[string]*ast.Function{},
		structs:   map[string]*ast.Struct{},
		enums:     map[string]*ast.Enum{},
		Stdout:    os.Stdout,
		Stdin:     bufio.NewReader(os.Stdin),
	}
}

// Run executes file's top-level items in a single root frame (spec.md
// §3.6: "Declared functions, enums, structs, and impl blocks are
// looked up by name across the root scope"), returning the process
// exit code: 0 on a clean finish, whatever `exit(code)` requested, or
// 1 after a runtime diagnostic.
//
// A node reaching the evaluator without the annotations Sema is
// supposed to have attached (an unresolved call target, a missing
// member index) is a "can't happen" programmer error, not a user
// mistake — runLoop panics in that case, and Run recovers it into a
// clean diagnostic instead of crashing the process.
func (in *Interp) Run(file *ast.File) (code int) {
	defer func() {
		if r := recover(); r != nil {
			in.sink.Errorf(diag.InternalError, source.Span{}, "internal error: %v", r)
			code = 1
		}
	}()
	return in.runLoop(file)
}

func (in *Interp) runLoop(file *ast.File) int {
	in.register(file.Items)

	in.pushFrame()
	defer in.popFrame()

	for _, item := range file.Items {
		switch item.(type) {
		case *ast.Function, *ast.Struct, *ast.Enum, *ast.Impl:
			continue
		}
		fl, err := in.execStmt(item)
		if err != nil {
			if h, ok := err.(haltSignal); ok {
				return h.code
			}
			return 1
		}
		if fl.kind != flowNone {
			break
		}
	}
	return 0
}

func (in *Interp) register(items []ast.Stmt) {
	for _, it := range items {
		switch n := it.(type) {
		case *ast.Function:
			in.funcs[n.Name] = n
		case *ast.Struct:
			in.structs[n.Name] = n
		case *ast.Enum:
			in.enums[n.Name] = n
		case *ast.Impl:
			methods := in.implFuncs[n.TargetName]
			if methods == nil {
				methods = map[string]*ast.Function{}
				in.implFuncs[n.TargetName] = methods
			}
			for _, fn := range n.Functions {
				methods[fn.Name] = fn
			}
		}
	}
}

// resolveType mirrors semantic.Analyzer.resolveType closely enough to
// turn a declared struct member's *ast.TypeExpr into a *types.Type at
// default-construction time (value.go's DefaultValue). Sema has
// already validated every type name by the time the evaluator runs,
// so this never needs to emit a diagnostic.
func (in *Interp) resolveType(te *ast.TypeExpr) *types.Type {
	if te == nil {
		return types.NoneType
	}
	switch te.Name {
	case "None":
		return types.NoneType
	case "Int":
		return types.IntType
	case "USize":
		return types.USizeType
	case "Float":
		return types.FloatType
	case "Bool":
		return types.BoolType
	case "Char":
		return types.CharType
	case "String":
		return types.StringType
	case "Range":
		return types.NewRange()
	case "Vector":
		elem := types.NoneType
		if len(te.TypeArgs) > 0 {
			elem = in.resolveType(te.TypeArgs[0])
		}
		return types.NewVector(elem)
	case "Dict":
		key, val := types.NoneType, types.NoneType
		if len(te.TypeArgs) > 1 {
			key = in.resolveType(te.TypeArgs[0])
			val = in.resolveType(te.TypeArgs[1])
		}
		return types.NewDict(key, val)
	default:
		if s, ok := in.structs[te.Name]; ok {
			return s.TypeDescriptor()
		}
		if e, ok := in.enums[te.Name]; ok {
			return e.TypeDescriptor()
		}
		return types.NoneType
	}
}

func (in *Interp) defaultValue(t *types.Type) Value {
	return DefaultValue(t, in.resolveType)
}

// coerce applies an accepted expression's widening: when Sema set
// UseDefault on the source expression, the evaluated value is adapted
// to the expected type (spec.md §4.3.3).
func (in *Interp) coerce(v Value, want *types.Type, useDefault bool) Value {
	if !useDefault {
		return v
	}
	switch want.Kind {
	case types.USize:
		if iv, ok := v.(*IntVal); ok {
			return &USizeVal{N: uint64(iv.N)}
		}
	case types.Vector, types.Dict, types.UserDef:
		return v
	}
	return v
}
