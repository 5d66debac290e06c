package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/interp"
	"github.com/metro-lang/metro/internal/semantic"
	"github.com/metro-lang/metro/internal/source"
)

var (
	evalExpr    string
	dumpAST     bool
	trace       bool
	noTypeCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run one or more Metro programs",
	Long: `Run lexes, parses, semantically checks, and evaluates one or more
Metro source files (or a directory/glob of them), in argument order.

Examples:
  # Run a script file
  metro run script.metro

  # Evaluate inline source
  metro run -c "println(1 + 1);"

  # Run every *.metro file under a directory
  metro run ./examples`,
	Args: cobra.ArbitraryArgs,
	RunE: runScripts,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "c", "", "evaluate inline source instead of reading files")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace top-level execution")
	runCmd.Flags().BoolVar(&noTypeCheck, "no-type-check", false, "skip semantic analysis (unsafe)")
}

func runScripts(_ *cobra.Command, args []string) error {
	if evalExpr != "" {
		return runOne("<eval>", evalExpr)
	}
	if len(args) == 0 {
		return fmt.Errorf("provide one or more file paths, or use -c for inline source")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", p, err)
		}
		if err := runOne(p, string(data)); err != nil {
			return err
		}
	}
	return nil
}

// runOne drives one compilation unit through the full pipeline
// (spec.md §2: lexer -> parser -> semantic analyzer -> evaluator,
// gated at each stage on the diagnostic sink having no errors).
func runOne(path, text string) error {
	if trace {
		fmt.Fprintf(os.Stderr, "[trace] running %s\n", path)
	}

	store := source.NewStore()
	sink := diag.NewSink()

	file := parseSource(store, sink, path, text)
	if sink.HasErrors() {
		fmt.Fprint(os.Stderr, sink.Format(isTTY()))
		return fmt.Errorf("parsing failed with %d error(s)", sink.Count())
	}

	if !noTypeCheck {
		analyzer := semantic.New(sink)
		if !analyzer.Analyze(file) {
			fmt.Fprint(os.Stderr, sink.Format(isTTY()))
			return fmt.Errorf("semantic analysis failed with %d error(s)", sink.Count())
		}
	}

	if dumpAST {
		fmt.Println("AST:")
		dumpFile(os.Stdout, file, 0)
		fmt.Println()
	}

	runtimeSink := diag.NewSink()
	in := interp.New(runtimeSink)
	code := in.Run(file)
	if runtimeSink.HasErrors() {
		fmt.Fprint(os.Stderr, runtimeSink.Format(isTTY()))
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func isTTY() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}
