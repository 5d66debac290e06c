package interp

import (
	"fmt"
	"os"
	"strings"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
)

// evalCallFunc resolves and invokes a bare `name(args)` call, per
// spec.md §4.4.5.
func (in *Interp) evalCallFunc(n *ast.CallFunc) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if n.Callee != nil {
		return in.callUserFunction(n.Callee, nil, args)
	}
	return in.runBuiltin(n.BuiltinName, n.NameTok, args)
}

// evalMemberCall resolves and invokes a `.name(args)` subscript
// against an already-evaluated receiver.
func (in *Interp) evalMemberCall(sub *ast.Subscript, receiver Value) (Value, error) {
	args := make([]Value, len(sub.CallArgs))
	for i, a := range sub.CallArgs {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if sub.IsMemberCall {
		s := receiver.(*StructVal)
		fn := in.implFuncs[s.Decl.Name][sub.CalleeName]
		return in.callUserFunction(fn, receiver, args)
	}
	full := append([]Value{receiver}, args...)
	return in.runBuiltin(sub.BuiltinName, sub.Tok, full)
}

// callUserFunction mirrors semantic.checkFunctionDecl's two-frame
// shape: an outer frame for self+params, then execScope pushes its
// own frame for the body's locals (spec.md §4.4.1, §4.4.5).
func (in *Interp) callUserFunction(fn *ast.Function, self Value, args []Value) (Value, error) {
	in.pushFrame()
	defer in.popFrame()

	idx := 0
	if fn.HaveSelf {
		in.frame(0).set(0, self)
		idx = 1
	}
	for i := range fn.Params {
		in.frame(0).set(idx+i, args[i])
	}

	tail, fl, err := in.execScope(fn.Body)
	if err != nil {
		return nil, err
	}
	if fl.kind == flowReturn {
		return fl.value, nil
	}
	if fn.Body.ReturnLastExpr {
		return tail, nil
	}
	return None, nil
}

// runBuiltin implements the built-in library of spec.md §6.3. Name
// resolution against the signature table lives in
// internal/semantic/call_resolve.go; this is the evaluator's half.
func (in *Interp) runBuiltin(name string, tok lexer.Token, args []Value) (Value, error) {
	switch name {
	case "print":
		return &IntVal{N: int64(in.writeArgs(args, ""))}, nil
	case "println":
		return &IntVal{N: int64(in.writeArgs(args, "\n"))}, nil
	case "id":
		return NewStringVal(args[0].Identity()), nil
	case "type":
		return NewStringVal(args[0].TypeOf().String()), nil
	case "to_string":
		return NewStringVal(args[0].String()), nil
	case "length":
		s := args[0].(*StringVal)
		return &IntVal{N: int64(len(s.Chars))}, nil
	case "push":
		v := args[0].(*VectorVal)
		v.Items = append(v.Items, args[1])
		return None, nil
	case "substr":
		s := args[0].(*StringVal)
		begin := int(asInt(args[1]))
		if begin < 0 {
			begin = 0
		}
		if begin > len(s.Chars) {
			begin = len(s.Chars)
		}
		out := make([]uint16, len(s.Chars)-begin)
		copy(out, s.Chars[begin:])
		return &StringVal{Chars: out}, nil
	case "replace":
		s := args[0].(*StringVal).String()
		old := args[1].(*StringVal).String()
		new := args[2].(*StringVal).String()
		return NewStringVal(strings.ReplaceAll(s, old, new)), nil
	case "input":
		line, _ := in.Stdin.ReadString('\n')
		return NewStringVal(strings.TrimRight(line, "\r\n")), nil
	case "open":
		path := args[0].(*StringVal).String()
		data, err := os.ReadFile(path)
		if err != nil {
			in.sink.Errorf(diag.FileOpenFailure, tok.Span, "cannot open %q: %v", path, err)
			return nil, haltSignal{code: 1}
		}
		return NewStringVal(string(data)), nil
	case "exit":
		code := int(asInt(args[0]))
		return None, haltSignal{code: code}
	default:
		return None, nil
	}
}

// writeArgs joins args' string forms with a space, writes the result
// plus suffix to stdout, and returns the number of bytes written, per
// spec.md §6.3's `print`/`println` contract.
func (in *Interp) writeArgs(args []Value, suffix string) int {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	n, _ := fmt.Fprint(in.Stdout, strings.Join(parts, " ")+suffix)
	return n
}
