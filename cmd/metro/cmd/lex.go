package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/source"
)

var (
	lexEval       string
	showPos       bool
	showKind      bool
	onlyErrors    bool
	diffGoldenLex string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Metro file or expression",
	Long: `Tokenize (lex) Metro source and print the resulting tokens, for
debugging the lexer.

Examples:
  metro lex script.metro
  metro lex -c "let x = 42;"
  metro lex --show-kind --show-pos script.metro`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "c", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only lexer diagnostics, not tokens")
	lexCmd.Flags().StringVar(&diffGoldenLex, "diff-golden", "", "diff the token dump against a golden file instead of printing it")
}

func lexScript(_ *cobra.Command, args []string) error {
	path, text, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	store := source.NewStore()
	sink := diag.NewSink()
	f, _ := store.Load(path, text)
	l := lexer.New(f, sink)

	var buf bytes.Buffer
	tokenCount := 0
	for {
		tok := l.NextToken()
		tokenCount++
		if !onlyErrors {
			fmt.Fprintln(&buf, formatToken(tok))
		}
		if tok.Kind == lexer.End {
			break
		}
	}

	if sink.HasErrors() {
		fmt.Fprint(os.Stderr, sink.Format(isTTY()))
	}

	if diffGoldenLex != "" {
		return diffAgainstGolden(diffGoldenLex, buf.String())
	}
	fmt.Print(buf.String())

	if verbose {
		fmt.Fprintf(os.Stderr, "tokens: %d\n", tokenCount)
	}
	if sink.HasErrors() {
		return fmt.Errorf("lexing failed with %d error(s)", sink.Count())
	}
	return nil
}

func formatToken(tok lexer.Token) string {
	out := ""
	if showKind {
		out += fmt.Sprintf("[%-11s]", tok.Kind.String())
	}
	if tok.Kind == lexer.End {
		out += " End"
	} else {
		out += fmt.Sprintf(" %q", tok.Text)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Span.Line, tok.Span.Column())
	}
	return out
}

// readInput resolves the -c/--eval flag vs. a positional file path
// into (displayName, text), reading stdin when neither is given.
func readInput(eval string, args []string) (string, string, error) {
	if eval != "" {
		return "<eval>", eval, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return args[0], string(data), nil
	}
	return "", "", fmt.Errorf("provide a file path or use -c for inline source")
}

// diffAgainstGolden compares got against the contents of goldenPath
// using a unified diff (the `lex`/`parse` debug subcommands'
// `--diff-golden` developer flag, SPEC_FULL.md §B).
func diffAgainstGolden(goldenPath, got string) error {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return fmt.Errorf("failed to read golden file %s: %w", goldenPath, err)
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(got),
		FromFile: goldenPath,
		ToFile:   "actual",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Println("no differences")
		return nil
	}
	fmt.Print(text)
	return fmt.Errorf("output differs from golden file %s", goldenPath)
}
