package interp

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/types"
)

// execStmt runs one statement, returning the control-flow signal it
// produced (if any) and a non-nil error only when a fatal runtime
// diagnostic halted the program (spec.md §4.4.3).
func (in *Interp) execStmt(s ast.Stmt) (flow, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := in.evalExpr(n.X)
		return noFlow, err
	case *ast.VariableDeclaration:
		return noFlow, in.execVarDecl(n)
	case *ast.Return:
		return in.execReturn(n)
	case *ast.Break:
		return flow{kind: flowBreak}, nil
	case *ast.Continue:
		return flow{kind: flowContinue}, nil
	case *ast.If:
		return in.execIf(n)
	case *ast.Switch:
		return in.execSwitch(n)
	case *ast.Loop:
		return in.execLoop(n)
	case *ast.For:
		return in.execFor(n)
	case *ast.While:
		return in.execWhile(n)
	case *ast.DoWhile:
		return in.execDoWhile(n)
	case *ast.Scope:
		_, fl, err := in.execScope(n)
		return fl, err
	default:
		return noFlow, nil
	}
}

// execScope pushes a frame, runs every item in order, and returns the
// scope's tail value when ReturnLastExpr is set (spec.md §4.2, §4.4.1).
func (in *Interp) execScope(sc *ast.Scope) (Value, flow, error) {
	in.pushFrame()
	defer in.popFrame()

	for i, item := range sc.Items {
		if es, ok := item.(*ast.ExprStmt); ok && sc.ReturnLastExpr && i == len(sc.Items)-1 {
			v, err := in.evalExpr(es.X)
			if err != nil {
				return nil, noFlow, err
			}
			return v, noFlow, nil
		}
		fl, err := in.execStmt(item)
		if err != nil {
			return nil, noFlow, err
		}
		if fl.kind != flowNone {
			return nil, fl, nil
		}
	}
	return None, noFlow, nil
}

func (in *Interp) execVarDecl(n *ast.VariableDeclaration) error {
	var v Value
	if n.Init != nil {
		val, err := in.evalExpr(n.Init)
		if err != nil {
			return err
		}
		want := in.declaredLocalType(n)
		v = in.coerce(val, want, n.Init.UseDefault())
	} else {
		v = in.defaultValue(in.declaredLocalType(n))
	}
	in.frame(0).set(n.Index, v)
	return nil
}

// declaredLocalType recovers the local's static type from whichever
// expression Sema resolved, since VariableDeclaration itself only
// stores the syntactic declared type (which may be absent).
func (in *Interp) declaredLocalType(n *ast.VariableDeclaration) *types.Type {
	if n.DeclaredTyp != nil {
		return in.resolveType(n.DeclaredTyp)
	}
	if n.Init != nil {
		return n.Init.ResolvedType()
	}
	return nil
}

func (in *Interp) execReturn(n *ast.Return) (flow, error) {
	if n.Value == nil {
		return flow{kind: flowReturn, value: None}, nil
	}
	v, err := in.evalExpr(n.Value)
	if err != nil {
		return noFlow, err
	}
	return flow{kind: flowReturn, value: v}, nil
}

func (in *Interp) execIf(n *ast.If) (flow, error) {
	cond, err := in.evalExpr(n.Cond)
	if err != nil {
		return noFlow, err
	}
	if cond.(*BoolVal).B {
		_, fl, err := in.execScope(n.Then)
		return fl, err
	}
	switch e := n.Else.(type) {
	case *ast.Scope:
		_, fl, err := in.execScope(e)
		return fl, err
	case *ast.If:
		return in.execIf(e)
	default:
		return noFlow, nil
	}
}

func (in *Interp) execSwitch(n *ast.Switch) (flow, error) {
	subject, err := in.evalExpr(n.Subject)
	if err != nil {
		return noFlow, err
	}
	for _, c := range n.Cases {
		cv, err := in.evalExpr(c.Cond)
		if err != nil {
			return noFlow, err
		}
		matched := false
		if bv, ok := cv.(*BoolVal); ok && c.Cond.ResolvedType().Kind == types.Bool {
			matched = bv.B
		} else {
			matched = ValuesEqual(cv, subject)
		}
		if matched {
			_, fl, err := in.execScope(c.Body)
			return fl, err
		}
	}
	if n.Default != nil {
		_, fl, err := in.execScope(n.Default)
		return fl, err
	}
	return noFlow, nil
}

func (in *Interp) execLoop(n *ast.Loop) (flow, error) {
	for {
		_, fl, err := in.execScope(n.Body)
		if err != nil {
			return noFlow, err
		}
		switch fl.kind {
		case flowBreak:
			return noFlow, nil
		case flowReturn:
			return fl, nil
		}
	}
}

func (in *Interp) execWhile(n *ast.While) (flow, error) {
	for {
		cond, err := in.evalExpr(n.Cond)
		if err != nil {
			return noFlow, err
		}
		if !cond.(*BoolVal).B {
			return noFlow, nil
		}
		_, fl, err := in.execScope(n.Body)
		if err != nil {
			return noFlow, err
		}
		switch fl.kind {
		case flowBreak:
			return noFlow, nil
		case flowReturn:
			return fl, nil
		}
	}
}

func (in *Interp) execDoWhile(n *ast.DoWhile) (flow, error) {
	for {
		_, fl, err := in.execScope(n.Body)
		if err != nil {
			return noFlow, err
		}
		switch fl.kind {
		case flowBreak:
			return noFlow, nil
		case flowReturn:
			return fl, nil
		}
		cond, err := in.evalExpr(n.Cond)
		if err != nil {
			return noFlow, err
		}
		if !cond.(*BoolVal).B {
			return noFlow, nil
		}
	}
}

// execFor mirrors semantic.checkFor's single-frame shape: the
// iterator variable is declared in the same frame the body's
// statements run in, rather than in a nested scope (spec.md §4.4.4).
func (in *Interp) execFor(n *ast.For) (flow, error) {
	iterable, err := in.evalExpr(n.Iterable)
	if err != nil {
		return noFlow, err
	}

	in.pushFrame()
	defer in.popFrame()

	v, ok := n.Iterator.(*ast.Variable)
	setIter := func(val Value) error {
		if ok {
			in.frame(0).set(v.Index, val)
			return nil
		}
		return in.assignTo(n.Iterator, val)
	}

	runBody := func() (flow, error) {
		for _, item := range n.Body.Items {
			fl, err := in.execStmt(item)
			if err != nil {
				return noFlow, err
			}
			if fl.kind != flowNone {
				return fl, nil
			}
		}
		return noFlow, nil
	}

	switch it := iterable.(type) {
	case *RangeVal:
		for i := it.Begin; i < it.End; i++ {
			if err := setIter(&IntVal{N: i}); err != nil {
				return noFlow, err
			}
			fl, err := runBody()
			if err != nil {
				return noFlow, err
			}
			if fl.kind == flowBreak {
				return noFlow, nil
			}
			if fl.kind == flowReturn {
				return fl, nil
			}
		}
	case *VectorVal:
		for _, item := range it.Items {
			if err := setIter(item); err != nil {
				return noFlow, err
			}
			fl, err := runBody()
			if err != nil {
				return noFlow, err
			}
			if fl.kind == flowBreak {
				return noFlow, nil
			}
			if fl.kind == flowReturn {
				return fl, nil
			}
		}
	case *DictVal:
		for _, e := range it.Entries {
			if err := setIter(e.Key); err != nil {
				return noFlow, err
			}
			fl, err := runBody()
			if err != nil {
				return noFlow, err
			}
			if fl.kind == flowBreak {
				return noFlow, nil
			}
			if fl.kind == flowReturn {
				return fl, nil
			}
		}
	case *StringVal:
		for _, c := range it.Chars {
			if err := setIter(&CharVal{C: c}); err != nil {
				return noFlow, err
			}
			fl, err := runBody()
			if err != nil {
				return noFlow, err
			}
			if fl.kind == flowBreak {
				return noFlow, nil
			}
			if fl.kind == flowReturn {
				return fl, nil
			}
		}
	}
	return noFlow, nil
}
