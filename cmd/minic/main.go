// Command minic is the Mini-C front end's command-line driver: it
// reads a source file, lexes it, drives the LL(1) parser over the
// token stream, and reports diagnostics, optionally dumping the
// token stream, parse table, parse trace, or final symbol table.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/repr"
	"github.com/fsnotify/fsnotify"

	"github.com/xplshn/minic/pkg/cli"
	"github.com/xplshn/minic/pkg/config"
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/grammar"
	"github.com/xplshn/minic/pkg/lexer"
	"github.com/xplshn/minic/pkg/parser"
	"github.com/xplshn/minic/pkg/parsetable"
	"github.com/xplshn/minic/pkg/source"
	"github.com/xplshn/minic/pkg/stream"
	"github.com/xplshn/minic/pkg/symtab"
	"github.com/xplshn/minic/pkg/token"
)

const testFileContents = `// Sanity program exercising all six end-to-end scenarios.
int main() {
    // Scenario 1: declaration with initializer, then return
    int x = 5;

    // Scenario 2: a while loop opens a nested scope
    int i = 0;
    while (i < 10) {
        i = i + 1;
    }

    // Scenario 3: a missing semicolon (deliberate; parsing stops at this error)
    int y = 5
    y = 6;

    // Scenario 4: redeclaration in the same scope
    int x = 6;

    // Scenario 5: use of an undeclared variable
    z = 1;

    // Scenario 6: operator precedence (* binds tighter than +, parens override)
    int a = 5;
    int b = 10;
    int r = a + b * (a - b);

    return 0;
}
`

type options struct {
	showTokens     bool
	showParseTable bool
	showParseSteps bool
	showSymbols    bool
	verbose        bool
	watch          bool
	color          string
	output         string
	toggles        []string
}

func main() {
	opts := &options{}
	app := cli.NewApp("minic")
	app.Synopsis = "[options] [input_file...]"
	app.Description = "LL(1) recognizer and symbol-table builder for the Mini-C subset."
	app.Authors = []string{"the minic project"}

	fs := app.FlagSet
	fs.Bool(&opts.showTokens, "show-tokens", "", false, "Display the lexical token stream")
	fs.Bool(&opts.showParseTable, "show-parse-table", "", false, "Display the LL(1) parse table with its production legend")
	fs.Bool(&opts.showParseSteps, "show-parse-steps", "", false, "Show a verbose parser trace")
	fs.Bool(&opts.showSymbols, "show-symbols", "", false, "Display the final symbol table")
	fs.Bool(&opts.verbose, "verbose", "v", false, "Enable --show-tokens, --show-parse-table, and --show-parse-steps")
	fs.Bool(&opts.watch, "watch", "", false, "Re-run on every save to the input file")
	fs.String(&opts.color, "color", "", "auto", "Colorize diagnostics: auto, always, or never", "auto|always|never")
	fs.String(&opts.output, "output", "o", "", "Write diagnostics to this file instead of stderr", "file")
	fs.Special(&opts.toggles, "F", "Toggle a lexer/parser feature, e.g. -Fpanic-mode-recovery or -Fno-c-comments", "name")
	fs.Special(&opts.toggles, "W", "Toggle a diagnostic warning class, e.g. -Wno-overflow or -Wall", "name")

	app.Action = func(args []string) error {
		return run(opts, args)
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	if opts.verbose {
		opts.showTokens, opts.showParseTable, opts.showParseSteps = true, true, true
	}

	filenames := args
	if len(filenames) == 0 {
		filename := "test_program.c"
		if err := os.WriteFile(filename, []byte(testFileContents), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "minic: failed to create test file: %v\n", err)
			return err
		}
		fmt.Printf("Test file created: %s\n", filename)
		filenames = []string{filename}
	}

	out := os.Stderr
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "minic: cannot create output file: %v\n", err)
			return err
		}
		defer f.Close()
		out = f
	}

	color := opts.color == "always" || (opts.color == "auto" && opts.output == "")

	if opts.watch {
		if len(filenames) > 1 {
			fmt.Fprintln(os.Stderr, "minic: --watch accepts a single input file")
			return fmt.Errorf("--watch accepts a single input file")
		}
		return runWatch(opts, filenames[0], out, color)
	}

	totalErrors := 0
	for _, filename := range filenames {
		errCount, err := compileOnce(opts, filename, out, color)
		if err != nil {
			return err
		}
		totalErrors += errCount
	}
	if totalErrors > 0 {
		os.Exit(1)
	}
	return nil
}

// applyToggles forwards every "-Fname"/"-Wname" occurrence collected
// by the CLI's special-prefix flags to the feature/warning registry.
func applyToggles(cfg *config.Config, toggles []string) {
	for _, t := range toggles {
		cfg.ApplyFlag("-" + t)
	}
}

func runWatch(opts *options, filename string, out *os.File, color bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filename); err != nil {
		return err
	}

	if _, err := compileOnce(opts, filename, out, color); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Printf("\n--- %s changed, re-parsing ---\n", filename)
				if _, err := compileOnce(opts, filename, out, color); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// compileOnce runs the full lex -> parse -> report pipeline once and
// returns the diagnostics error count.
func compileOnce(opts *options, filename string, out *os.File, color bool) (int, error) {
	buf, err := source.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		return 0, err
	}

	reporter := diag.NewReporter(out, color)
	reporter.AddSource(buf)
	cfg := config.New()
	applyToggles(cfg, opts.toggles)

	if opts.showTokens {
		fmt.Println("\n=== LEXICAL ANALYSIS ===")
	}
	toks := lexer.ScanAll(lexer.New(buf, cfg, reporter))

	if opts.showTokens {
		dumpTokens(filename, toks)
	}

	if reporter.ErrorCount() > 0 {
		fmt.Println("\nSkipping parsing due to lexical errors.")
		return reporter.ErrorCount(), nil
	}

	fmt.Println("\n=== SYNTAX ANALYSIS ===")

	tbl := parsetable.Build(reporter)
	if opts.showParseTable {
		dumpParseTable(tbl)
	}

	syms := symtab.New()
	p := parser.New(stream.New(toks), tbl, syms, reporter, cfg)
	p.SetTrace(opts.showParseSteps)

	fmt.Println("\nStarting LL(1) parsing...")
	ok := p.Run()

	if opts.showParseSteps {
		dumpSteps(p.Steps)
	}

	if ok && reporter.ErrorCount() == 0 {
		fmt.Println("\nParsing completed successfully.")
	} else {
		fmt.Printf("\nParsing failed with %d error(s).\n", reporter.ErrorCount())
	}

	if opts.showSymbols {
		dumpSymbols(syms)
	}

	return reporter.ErrorCount(), nil
}

func dumpTokens(filename string, toks []token.Token) {
	fmt.Printf("Tokens in %s:\n", filename)
	fmt.Println("----------------------------------------")
	identifiers, keywords := 0, 0
	for _, t := range toks {
		fmt.Printf("Token: %-12s | Kind: %-14s | Line: %d, Column: %d\n", t.Lexeme, t.Kind, t.Loc.Line, t.Loc.Column)
		switch t.Kind {
		case token.Identifier:
			identifiers++
		case token.Keyword:
			keywords++
		}
	}
	fmt.Println("----------------------------------------")
	fmt.Println("Statistics:")
	fmt.Printf("Identifiers: %d\n", identifiers)
	fmt.Printf("Keywords: %d\n", keywords)
}

func dumpParseTable(tbl *parsetable.Table) {
	fmt.Println("\nProduction legend:")
	for i, p := range grammar.Rules {
		fmt.Printf("  [%2d] %s\n", i, p)
	}

	fmt.Println("\nLL(1) Parsing Table (non-terminal, lookahead -> production):")
	for _, n := range grammar.AllNonTerminals {
		keys := tbl.Keys(n)
		if len(keys) == 0 {
			continue
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, key := range keys {
			p, ok := tbl.Lookup(n, key)
			if !ok {
				continue
			}
			fmt.Printf("  %-16s %-12s -> [%2d] %s\n", n, key, p.Index, p)
		}
	}
}

func dumpSteps(steps []parser.Step) {
	fmt.Println("\nParse trace:")
	for i, s := range steps {
		fmt.Printf("  %4d. pop %-20s %s (lookahead %d:%d)\n", i, s.Popped, s.Action, s.LookaheadAt.Line, s.LookaheadAt.Column)
	}
}

func dumpSymbols(syms *symtab.Table) {
	fmt.Println("\nSymbol table:")
	for _, sym := range syms.AllSymbols() {
		fmt.Println(repr.String(sym))
	}
}
