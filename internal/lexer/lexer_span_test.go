package lexer_test

import (
	"testing"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/source"
)

// Property 1 (spec.md §8): every non-End token's span must enclose
// exactly the source text recorded in Text. The source below holds no
// string or char literals: for those, Text holds the unescaped value,
// not the raw quoted source, so the two differ whenever an escape
// appears.
func TestTokenSpanClosure(t *testing.T) {
	src := `fn main() -> Int {
    let x: Int = (1 + 2) * 3 - 4;
    for i in 0..5 { x = x + i; }
    0
}
`
	store := source.NewStore()
	sink := diag.NewSink()
	f, _ := store.Load("<test>", src)
	l := lexer.New(f, sink)

	count := 0
	for {
		tok := l.NextToken()
		if tok.Kind == lexer.End {
			break
		}
		count++
		got := src[tok.Span.Offset : tok.Span.Offset+tok.Span.Length]
		if got != tok.Text {
			t.Errorf("token %v: span covers %q, Text is %q", tok.Kind, got, tok.Text)
		}
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected lexer diagnostics: %s", sink.Format(false))
	}
	if count == 0 {
		t.Fatal("expected at least one token")
	}
}
