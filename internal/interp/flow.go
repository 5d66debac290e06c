package interp

// flowKind reports why statement execution stopped early, propagated
// up through nested scopes until the construct that handles it (loop
// or function body) consumes it (spec.md §4.4.1's loop stack / call
// stack break-flag, continue-flag, returned-flag).
type flowKind int

const (
	flowNone flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

type flow struct {
	kind  flowKind
	value Value // set only for flowReturn
}

var noFlow = flow{kind: flowNone}
