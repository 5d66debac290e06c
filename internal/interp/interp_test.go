package interp_test

import (
	"bytes"
	"testing"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/interp"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/parser"
	"github.com/metro-lang/metro/internal/semantic"
	"github.com/metro-lang/metro/internal/source"
)

// run drives src through the full pipeline (lexer -> parser -> Sema ->
// evaluator) and returns stdout, the process exit code, and the
// diagnostic sink every stage shares.
func run(t *testing.T, src string) (string, int, *diag.Sink) {
	t.Helper()
	store := source.NewStore()
	sink := diag.NewSink()
	f, _ := store.Load("<test>", src)
	l := lexer.New(f, sink)
	p := parser.New(l, sink, "<test>")
	file := p.ParseFile()
	if sink.HasErrors() {
		return "", 1, sink
	}

	analyzer := semantic.New(sink)
	if !analyzer.Analyze(file) {
		return "", 1, sink
	}

	var buf bytes.Buffer
	in := interp.New(sink)
	in.Stdout = &buf
	code := in.Run(file)
	return buf.String(), code, sink
}

// Scenarios S1-S8 of spec.md §8.
func TestScenarios(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantOut  string
		wantCode int
	}{
		{
			name:     "S1_hello",
			src:      `fn main() -> Int { println("hello"); 0 } main();`,
			wantOut:  "hello\n",
			wantCode: 0,
		},
		{
			name:     "S2_arithmetic",
			src:      `let x: Int = (1 + 2) * 3 - 4; println(to_string(x));`,
			wantOut:  "5\n",
			wantCode: 0,
		},
		{
			name:     "S3_for_range",
			src:      `let s = 0; for i in 0..5 { s = s + i; } println(to_string(s));`,
			wantOut:  "10\n",
			wantCode: 0,
		},
		{
			name: "S5_struct_impl_method",
			src: `struct P { x: Int, y: Int }
impl P { fn sum(self) -> Int { self.x + self.y } }
let p = new P(x: 3, y: 4);
println(to_string(p.sum()));`,
			wantOut:  "7\n",
			wantCode: 0,
		},
		{
			name: "S6_enum_match_by_switch",
			src: `enum E { A, B(Int) }
let v = E.B(9);
switch v {
case E.A: println("a");
case E.B(9): println("b");
}`,
			wantOut:  "b\n",
			wantCode: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, code, sink := run(t, tc.src)
			if sink.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
			}
			if out != tc.wantOut {
				t.Errorf("stdout = %q, want %q", out, tc.wantOut)
			}
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d", code, tc.wantCode)
			}
		})
	}
}

// S4 (dict): literal insertion order is preserved and a later index
// assignment appends in place, matching property 6's "deterministic
// iteration" requirement.
func TestDictInsertionOrder(t *testing.T) {
	src := `let d = dict<String, Int>{"a": 1, "b": 2};
d["c"] = 3;
println(to_string(d));`
	out, code, sink := run(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "{a: 1, b: 2, c: 3}\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

// S7: a struct that recursively contains itself is a static error, not
// a runtime stack overflow.
func TestRecursiveStructIsStaticError(t *testing.T) {
	src := `struct N { n: N }`
	_, code, sink := run(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a recursive-type diagnostic, got none")
	}
	if code == 0 {
		t.Errorf("exit code = 0, want non-zero")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diag.RecursiveType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a RecursiveType diagnostic, got: %s", sink.Format(false))
	}
}

// S8: division by zero is a runtime diagnostic naming the operator,
// not a panic or a silently wrong value.
func TestDivisionByZero(t *testing.T) {
	src := `let x = 1 / 0;`
	_, code, sink := run(t, src)
	if code == 0 {
		t.Fatalf("exit code = 0, want non-zero")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diag.DivisionByZero {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a DivisionByZero diagnostic, got: %s", sink.Format(false))
	}
}

// Determinism (property 6): running the same program twice must
// produce byte-identical stdout.
func TestDeterministicRerun(t *testing.T) {
	src := `let s = 0; for i in 0..20 { s = s + i * 2; } println(to_string(s));`
	out1, _, _ := run(t, src)
	out2, _, _ := run(t, src)
	if out1 != out2 {
		t.Errorf("non-deterministic output: %q vs %q", out1, out2)
	}
}

// spec.md §6.3: print/println return the total bytes written.
func TestPrintReturnsByteCount(t *testing.T) {
	src := `let n = println("hi"); println(to_string(n));`
	out, code, sink := run(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "hi\n3\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

// spec.md §6.3: substr(self: String, USize) -> String returns the
// suffix starting at the given index.
func TestSubstrSuffixFromIndex(t *testing.T) {
	src := `let s = "hello"; println(s.substr(2));`
	out, code, sink := run(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out != "llo\n" {
		t.Errorf("stdout = %q, want %q", out, "llo\n")
	}
}

// push is only callable on a Vector receiver; a String receiver must
// be rejected at Sema, not reach the evaluator and panic on a failed
// type assertion.
func TestPushRejectsNonVectorReceiver(t *testing.T) {
	src := `let s = "hello"; s.push(1);`
	_, _, sink := run(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic rejecting push on a String receiver, got none")
	}
}

// push's second argument must match the vector's own element type.
func TestPushRejectsMismatchedElementType(t *testing.T) {
	src := `let v = [1, 2]; v.push("nope");`
	_, _, sink := run(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic rejecting a mismatched push element type, got none")
	}
}

// length only accepts a String receiver per spec.md §6.3's (String) ->
// Int signature; a Vector argument must be rejected at Sema.
func TestLengthRejectsNonStringArgument(t *testing.T) {
	src := `let v = [1, 2]; length(v);`
	_, _, sink := run(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic rejecting length(Vector), got none")
	}
}

// spec.md §4.3.2: every path through a non-tail-expr function body
// must return a value of the declared result type. A return nested
// under an if with no else does not cover the fallthrough path.
func TestMissingReturnOnFallthroughPathIsRejected(t *testing.T) {
	src := `fn f(cond: Bool) -> Int {
    if cond {
        return 1;
    }
    println("whoops");
}
f(false);`
	_, _, sink := run(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a ReturnMismatch diagnostic for the missing fallthrough return, got none")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diag.ReturnMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("expected diag.ReturnMismatch, got: %s", sink.Format(false))
	}
}

// An if/else where both branches return is accepted, even though no
// bare Return statement exists at the function's own top level.
func TestReturnInEveryBranchIsAccepted(t *testing.T) {
	src := `fn f(cond: Bool) -> Int {
    if cond {
        return 1;
    } else {
        return 2;
    }
}
println(to_string(f(true)));`
	out, code, sink := run(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", sink.Format(false))
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n")
	}
}
