package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/source"
)

var (
	parseEval       string
	diffGoldenParse string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Metro source and display its AST",
	Long: `Parse Metro source code and display the shape of its Abstract
Syntax Tree, for debugging the parser and semantic analyzer.

Examples:
  metro parse script.metro
  metro parse -c "let x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "c", "", "parse inline source instead of reading a file")
	parseCmd.Flags().StringVar(&diffGoldenParse, "diff-golden", "", "diff the AST dump against a golden file instead of printing it")
}

func runParse(_ *cobra.Command, args []string) error {
	path, text, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	store := source.NewStore()
	sink := diag.NewSink()
	file := parseSource(store, sink, path, text)

	if sink.HasErrors() {
		fmt.Fprint(os.Stderr, sink.Format(isTTY()))
		return fmt.Errorf("parsing failed with %d error(s)", sink.Count())
	}

	var buf bytes.Buffer
	dumpFile(&buf, file, 0)

	if diffGoldenParse != "" {
		return diffAgainstGolden(diffGoldenParse, buf.String())
	}
	fmt.Print(buf.String())
	return nil
}
