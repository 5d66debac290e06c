package semantic

import "github.com/metro-lang/metro/internal/types"

// local is one variable slot in a scopeFrame, per spec.md §3.4's
// LocalVar.
type local struct {
	name    string
	typ     *types.Type
	isConst bool
}

// scopeFrame is one lexical scope entry (spec.md §3.4): an ordered
// list of locals, pushed on Scope entry and popped on exit.
type scopeFrame struct {
	locals []local
}

func (a *Analyzer) pushScope() {
	a.scopes = append(a.scopes, &scopeFrame{})
}

func (a *Analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// declare appends a new local to the innermost scope frame and
// returns its index within that frame.
func (a *Analyzer) declare(name string, typ *types.Type, isConst bool) int {
	frame := a.scopes[len(a.scopes)-1]
	idx := len(frame.locals)
	frame.locals = append(frame.locals, local{name: name, typ: typ, isConst: isConst})
	return idx
}

// resolveVar searches scopes outward from the innermost, per spec.md
// §4.3.1: the first match fills step (number of frames walked out)
// and index (position within that frame).
func (a *Analyzer) resolveVar(name string) (step, index int, loc *local, found bool) {
	for s := len(a.scopes) - 1; s >= 0; s-- {
		frame := a.scopes[s]
		for i := len(frame.locals) - 1; i >= 0; i-- {
			if frame.locals[i].name == name {
				return len(a.scopes) - 1 - s, i, &frame.locals[i], true
			}
		}
	}
	return 0, 0, nil, false
}

func (a *Analyzer) lookupLocal(name string) *local {
	_, _, loc, found := a.resolveVar(name)
	if !found {
		return nil
	}
	return loc
}

// resolveLocalInCurrentScope looks up name only in the innermost
// frame, used to detect same-scope shadowing (spec.md §4.3.2, "Let").
func (a *Analyzer) resolveLocalInCurrentScope(name string) (*types.Type, bool) {
	frame := a.scopes[len(a.scopes)-1]
	for i := range frame.locals {
		if frame.locals[i].name == name {
			return frame.locals[i].typ, true
		}
	}
	return nil, false
}
