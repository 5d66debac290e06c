package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/semantic"
	"github.com/metro-lang/metro/internal/source"
)

// TestDiagnosticRendering snapshots the rendered text of a handful of
// representative parse- and semantic-time diagnostics, so a change to
// diag.Diagnostic.Format's header/locator/snippet/caret layout is
// caught even though nothing else in the CLI asserts on byte-for-byte
// output.
func TestDiagnosticRendering(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_semicolon", "let x = 1\n"},
		{"undefined_variable", "println(y);\n"},
		{"type_mismatch", "let x: Int = \"hi\";\n"},
		{"division_by_zero_is_static_ok", "let x = 1 / 0;\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := source.NewStore()
			sink := diag.NewSink()
			file := parseSource(store, sink, tc.name+".metro", tc.src)
			if !sink.HasErrors() {
				analyzer := semantic.New(sink)
				analyzer.Analyze(file)
			}
			snaps.MatchSnapshot(t, sink.Format(false))
		})
	}
}
