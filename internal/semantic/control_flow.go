package semantic

import "github.com/metro-lang/metro/internal/ast"

// alwaysReturns reports whether every execution path through sc is
// guaranteed to hit a Return statement before falling off the end,
// replacing a single "a Return exists somewhere in the body" flag
// with the exhaustive per-path check spec.md §4.3.2 actually asks
// for. Scope.ReturnLastExpr plays no part here: only the function's
// own outer body scope turns a tail expression into a return value
// (callUserFunction), so a tail expression inside a nested if/switch
// branch is just a discarded statement, not a path that returns.
func alwaysReturns(sc *ast.Scope) bool {
	for _, item := range sc.Items {
		if stmtAlwaysReturns(item) {
			return true
		}
	}
	return false
}

func stmtAlwaysReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if n.Else == nil {
			return false
		}
		if !alwaysReturns(n.Then) {
			return false
		}
		switch e := n.Else.(type) {
		case *ast.Scope:
			return alwaysReturns(e)
		case *ast.If:
			return stmtAlwaysReturns(e)
		default:
			return false
		}
	case *ast.Switch:
		if n.Default == nil || !alwaysReturns(n.Default) {
			return false
		}
		for _, c := range n.Cases {
			if !alwaysReturns(c.Body) {
				return false
			}
		}
		return true
	case *ast.Scope:
		return alwaysReturns(n)
	case *ast.Loop:
		// An unconditional loop with no break of its own either runs
		// forever or exits only via return: either way control never
		// falls through it (spec.md §4.4.1's loop stack).
		return !loopBodyHasOwnBreak(n.Body)
	default:
		return false
	}
}

// loopBodyHasOwnBreak reports whether sc contains a break targeting
// its nearest enclosing loop, stopping at any nested Loop/For/While/
// DoWhile since a break there targets that inner loop instead.
func loopBodyHasOwnBreak(sc *ast.Scope) bool {
	for _, item := range sc.Items {
		if stmtHasOwnBreak(item) {
			return true
		}
	}
	return false
}

func stmtHasOwnBreak(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Break:
		return true
	case *ast.If:
		if loopBodyHasOwnBreak(n.Then) {
			return true
		}
		switch e := n.Else.(type) {
		case *ast.Scope:
			return loopBodyHasOwnBreak(e)
		case *ast.If:
			return stmtHasOwnBreak(e)
		default:
			return false
		}
	case *ast.Switch:
		for _, c := range n.Cases {
			if loopBodyHasOwnBreak(c.Body) {
				return true
			}
		}
		return n.Default != nil && loopBodyHasOwnBreak(n.Default)
	case *ast.Scope:
		return loopBodyHasOwnBreak(n)
	default:
		return false
	}
}
