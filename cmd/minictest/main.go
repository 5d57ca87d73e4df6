// Command minictest is a golden differential test runner for the
// Mini-C front end: for each test source file it lexes and parses the
// file in-process, snapshots the resulting diagnostics and symbol
// table, and diffs that snapshot against a golden .json fixture.
//
// Unlike a dual-compiler differential runner there is no second
// binary to execute here (the front end has no backend); the "target"
// side is always this process's own lex/parse pipeline, run directly
// rather than shelled out to, and the "reference" side is the
// committed golden fixture.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/xplshn/minic/pkg/config"
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/lexer"
	"github.com/xplshn/minic/pkg/parser"
	"github.com/xplshn/minic/pkg/parsetable"
	"github.com/xplshn/minic/pkg/source"
	"github.com/xplshn/minic/pkg/stream"
	"github.com/xplshn/minic/pkg/symtab"
)

// Snapshot is the comparable, JSON-serializable shape of one test
// file's outcome: whether the parse was accepted, the diagnostics it
// produced (formatted the same way the CLI prints them, minus
// coloring), and the final symbol table's bindings.
type Snapshot struct {
	SourceHash  string   `json:"source_hash"`
	Accepted    bool     `json:"accepted"`
	ErrorCount  int      `json:"error_count"`
	Diagnostics []string `json:"diagnostics"`
	Symbols     []string `json:"symbols"`
}

var (
	generateGolden = flag.String("generate-golden", "", "Generate a golden .json fixture for the given source file.")
	testFiles      = flag.String("test-files", "testdata/*.mc", "Glob pattern(s) for test source files (space-separated).")
	goldenDir      = flag.String("dir", "testdata/golden", "Directory holding golden .json fixtures.")
	verbose        = flag.Bool("v", false, "Print each diagnostics and symbol-table line on mismatch.")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *generateGolden != "" {
		if err := writeGolden(*generateGolden); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		return
	}

	runSuite()
}

func hashSource(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

func snapshot(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	buf := source.New(filename, data)

	var diagLines []string
	rep := diag.NewReporter(&lineCollector{lines: &diagLines}, false)
	rep.AddSource(buf)
	cfg := config.New()

	toks := lexer.ScanAll(lexer.New(buf, cfg, rep))
	tbl := parsetable.Build(nil)
	syms := symtab.New()
	p := parser.New(stream.New(toks), tbl, syms, rep, cfg)
	ok := p.Run()

	var symLines []string
	for _, sym := range syms.AllSymbols() {
		symLines = append(symLines, fmt.Sprintf("%s:%s@%d", sym.Name, sym.Type, sym.ScopeLevel))
	}
	sort.Strings(symLines)

	return &Snapshot{
		SourceHash:  hashSource(data),
		Accepted:    ok && rep.ErrorCount() == 0,
		ErrorCount:  rep.ErrorCount(),
		Diagnostics: diagLines,
		Symbols:     symLines,
	}, nil
}

// lineCollector implements io.Writer, splitting whatever the
// Reporter writes into individual lines, used so a golden fixture's
// Diagnostics field captures the same text the CLI would print.
type lineCollector struct {
	lines *[]string
	buf   strings.Builder
}

func (c *lineCollector) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		s := c.buf.String()
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			break
		}
		*c.lines = append(*c.lines, s[:idx])
		c.buf.Reset()
		c.buf.WriteString(s[idx+1:])
	}
	return len(p), nil
}

func goldenPath(sourceFile string) string {
	return filepath.Join(*goldenDir, filepath.Base(sourceFile)+".json")
}

func writeGolden(sourceFile string) error {
	snap, err := snapshot(sourceFile)
	if err != nil {
		return fmt.Errorf("could not snapshot %s: %w", sourceFile, err)
	}
	if err := os.MkdirAll(*goldenDir, 0o755); err != nil {
		return fmt.Errorf("could not create golden dir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal golden fixture: %w", err)
	}
	path := goldenPath(sourceFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write golden fixture %s: %w", path, err)
	}
	fmt.Printf("Golden fixture written to %s\n", path)
	return nil
}

func runSuite() {
	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("[ERROR] invalid glob pattern(s): %v", err)
	}
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return
	}

	passed, failed, skipped := 0, 0, 0
	for _, file := range files {
		status, diff := testFile(file)
		switch status {
		case "PASS":
			passed++
			fmt.Printf("[PASS] %s\n", file)
		case "SKIP":
			skipped++
			fmt.Printf("[SKIP] %s (no golden fixture; run --generate-golden)\n", file)
		default:
			failed++
			fmt.Printf("[FAIL] %s\n", file)
			if *verbose {
				fmt.Println(diff)
			}
		}
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("Test Summary: %d Passed, %d Failed, %d Skipped, %d Total\n", passed, failed, skipped, len(files))

	if failed > 0 {
		os.Exit(1)
	}
}

func testFile(file string) (status string, diff string) {
	golden := goldenPath(file)
	goldenData, err := os.ReadFile(golden)
	if err != nil {
		return "SKIP", ""
	}
	var want Snapshot
	if err := json.Unmarshal(goldenData, &want); err != nil {
		return "FAIL", fmt.Sprintf("could not parse golden fixture %s: %v", golden, err)
	}

	got, err := snapshot(file)
	if err != nil {
		return "FAIL", fmt.Sprintf("could not snapshot %s: %v", file, err)
	}

	if want.SourceHash != got.SourceHash {
		return "FAIL", fmt.Sprintf("source changed since golden fixture was generated (hash %s -> %s); regenerate with --generate-golden", want.SourceHash, got.SourceHash)
	}

	if d := cmp.Diff(want, *got); d != "" {
		return "FAIL", d
	}
	return "PASS", ""
}

func expandGlobPatterns(patterns string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)
	for _, pattern := range strings.Fields(patterns) {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		for _, file := range files {
			abs, err := filepath.Abs(file)
			if err != nil {
				continue
			}
			if !seen[abs] {
				if info, err := os.Stat(abs); err == nil && info.Mode().IsRegular() {
					allFiles = append(allFiles, file)
					seen[abs] = true
				}
			}
		}
	}
	sort.Strings(allFiles)
	return allFiles, nil
}
