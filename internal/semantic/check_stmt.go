package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/types"
)

// checkStmt checks one statement for side effects: diagnostics and
// annotations on its children. Statements never produce a type.
func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		a.checkExpr(&n.X)
	case *ast.VariableDeclaration:
		a.checkVarDecl(n)
	case *ast.Return:
		a.checkReturn(n)
	case *ast.Break:
		if !a.inLoop() {
			a.sink.Errorf(diag.InvalidSyntax, ast.Span(n), "break outside of a loop")
		}
	case *ast.Continue:
		if !a.inLoop() {
			a.sink.Errorf(diag.InvalidSyntax, ast.Span(n), "continue outside of a loop")
		}
	case *ast.If:
		a.checkIf(n)
	case *ast.Switch:
		a.checkSwitch(n)
	case *ast.Loop:
		a.loopDepth++
		a.checkScope(n.Body)
		a.loopDepth--
	case *ast.For:
		a.checkFor(n)
	case *ast.While:
		a.checkCondLoop(&n.Cond, n.Body)
	case *ast.DoWhile:
		a.checkCondLoop(&n.Cond, n.Body)
	case *ast.Scope:
		a.checkScope(n)
	default:
		// importStmt and other driver-level markers carry no Sema work.
	}
}

// checkScope pushes a fresh scope frame, checks every item in order,
// and returns the scope's value type: None unless the last item is a
// trailing expression-statement (spec.md §4.2's `return_last_expr`).
func (a *Analyzer) checkScope(sc *ast.Scope) *types.Type {
	a.pushScope()
	result := types.NoneType
	for i, item := range sc.Items {
		if es, ok := item.(*ast.ExprStmt); ok && sc.ReturnLastExpr && i == len(sc.Items)-1 {
			result = a.checkExpr(&es.X)
			continue
		}
		a.checkStmt(item)
	}
	sc.Typ = result
	a.popScope()
	return result
}

func (a *Analyzer) checkVarDecl(n *ast.VariableDeclaration) {
	var declared *types.Type
	if n.DeclaredTyp != nil {
		declared = a.resolveType(n.DeclaredTyp)
	}

	initT := types.NoneType
	if n.Init != nil {
		initT = a.checkExpr(&n.Init)
	} else {
		n.IgnoreInitializer = true
	}

	finalType := initT
	if declared != nil {
		finalType = declared
		if n.Init != nil {
			if !a.accepts(initT, declared) {
				a.sink.Errorf(diag.InvalidInitializer, ast.Span(n), "cannot initialize %q of type %s with value of type %s", n.Name, declared, initT)
			} else if !types.Equal(initT, declared) {
				n.Init.SetUseDefault(true)
			}
		}
	}

	if _, found := a.resolveLocalInCurrentScope(n.Name); found {
		n.IsShadowing = true
	}
	n.Index = a.declare(n.Name, finalType, n.IsConst)
}

func (a *Analyzer) checkReturn(n *ast.Return) {
	if len(a.funcStack) == 0 {
		a.sink.Errorf(diag.ReturnOutside, ast.Span(n), "return outside of a function")
		if n.Value != nil {
			a.checkExpr(&n.Value)
		}
		return
	}
	fctx := a.funcStack[len(a.funcStack)-1]

	valueType := types.NoneType
	if n.Value != nil {
		valueType = a.checkExpr(&n.Value)
	}
	if !a.accepts(valueType, fctx.resultType) {
		a.sink.Errorf(diag.ReturnMismatch, ast.Span(n), "return type %s does not match declared result type %s", valueType, fctx.resultType)
	} else if n.Value != nil && !types.Equal(valueType, fctx.resultType) {
		n.Value.SetUseDefault(true)
	}
}

func (a *Analyzer) checkIf(n *ast.If) {
	condT := a.checkExpr(&n.Cond)
	if condT.Kind != types.Bool {
		a.sink.Errorf(diag.TypeMismatch, ast.Span(n.Cond), "if condition must be Bool, found %s", condT)
	}

	thenT := a.checkScope(n.Then)
	var elseT *types.Type
	switch e := n.Else.(type) {
	case *ast.Scope:
		elseT = a.checkScope(e)
	case *ast.If:
		a.checkIf(e)
		elseT = e.Typ
	}

	if elseT != nil {
		if !types.Equal(thenT, elseT) {
			a.sink.Errorf(diag.TypeMismatch, ast.Span(n), "if branches produce different types: %s vs %s", thenT, elseT)
		}
		n.Typ = thenT
	} else {
		n.Typ = types.NoneType
	}
}

func (a *Analyzer) checkSwitch(n *ast.Switch) {
	subjectT := a.checkExpr(&n.Subject)
	if len(n.Cases) == 0 {
		a.sink.Errorf(diag.EmptySwitch, ast.Span(n), "switch has no cases")
	}

	resultT := types.NoneType
	haveResult := false
	for _, c := range n.Cases {
		condT := a.checkExpr(&c.Cond)
		if condT.Kind != types.Bool && !a.accepts(condT, subjectT) {
			a.sink.Errorf(diag.TypeMismatch, ast.Span(c.Cond), "case condition type %s is neither Bool nor %s", condT, subjectT)
		}
		bodyT := a.checkScope(c.Body)
		if !haveResult {
			resultT, haveResult = bodyT, true
		} else if !(resultT.Kind == types.None && bodyT.Kind == types.None) && !types.Equal(resultT, bodyT) {
			a.sink.Errorf(diag.TypeMismatch, ast.Span(c.Body), "switch case produces %s, expected %s", bodyT, resultT)
		}
	}

	if n.Default != nil {
		bodyT := a.checkScope(n.Default)
		if !haveResult {
			resultT, haveResult = bodyT, true
		} else if !(resultT.Kind == types.None && bodyT.Kind == types.None) && !types.Equal(resultT, bodyT) {
			a.sink.Errorf(diag.TypeMismatch, ast.Span(n.Default), "switch default produces %s, expected %s", bodyT, resultT)
		}
	}
	n.Typ = resultT
}

func (a *Analyzer) checkFor(n *ast.For) {
	iterableT := a.checkExpr(&n.Iterable)
	if !types.IsIterable(iterableT.Kind) {
		a.sink.Errorf(diag.TypeMismatch, ast.Span(n.Iterable), "value of type %s is not iterable", iterableT)
	}

	elemT := types.NoneType
	switch iterableT.Kind {
	case types.Range:
		elemT = types.IntType
	case types.Vector, types.Dict:
		if len(iterableT.Params) > 0 {
			elemT = iterableT.Params[0]
		}
	case types.String:
		elemT = types.CharType
	}

	a.loopDepth++
	a.pushScope()
	if v, ok := n.Iterator.(*ast.Variable); ok {
		v.Step = 0
		v.Index = a.declare(v.Name, elemT, false)
	} else {
		t := a.checkExpr(&n.Iterator)
		if !a.accepts(t, elemT) {
			a.sink.Errorf(diag.TypeMismatch, ast.Span(n.Iterator), "for-loop target type %s does not match element type %s", t, elemT)
		}
	}
	for _, item := range n.Body.Items {
		a.checkStmt(item)
	}
	a.popScope()
	a.loopDepth--
}

func (a *Analyzer) checkCondLoop(cond *ast.Expr, body *ast.Scope) {
	condT := a.checkExpr(cond)
	if condT.Kind != types.Bool {
		a.sink.Errorf(diag.TypeMismatch, (*cond).Start().Span, "loop condition must be Bool, found %s", condT)
	}
	a.loopDepth++
	a.checkScope(body)
	a.loopDepth--
}
