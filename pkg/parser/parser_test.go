package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/xplshn/minic/pkg/config"
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/lexer"
	"github.com/xplshn/minic/pkg/parsetable"
	"github.com/xplshn/minic/pkg/source"
	"github.com/xplshn/minic/pkg/stream"
	"github.com/xplshn/minic/pkg/symtab"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func runSource(t *testing.T, src string) (bool, *diag.Reporter, *symtab.Table) {
	t.Helper()
	return runSourceWithConfig(t, src, config.New())
}

func runSourceWithConfig(t *testing.T, src string, cfg *config.Config) (bool, *diag.Reporter, *symtab.Table) {
	t.Helper()
	buf := source.New("test.mc", []byte(src))
	rep := diag.NewReporter(&discard{}, false)
	rep.AddSource(buf)
	toks := lexer.ScanAll(lexer.New(buf, cfg, rep))
	tbl := parsetable.Build(nil)
	syms := symtab.New()
	p := New(stream.New(toks), tbl, syms, rep, cfg)
	ok := p.Run()
	return ok, rep, syms
}

func TestScenario1SimpleDeclarationAndReturn(t *testing.T) {
	ok, rep, _ := runSource(t, "int main() { int x = 5; return 0; }")
	assert.True(t, ok)
	assert.Equal(t, 0, rep.ErrorCount())
}

func TestScenario2WhileLoopOpensNestedScope(t *testing.T) {
	ok, rep, _ := runSource(t, "int main() { int i = 0; int sum = 0; while (i < 10) { sum = sum + i; i++; } return 0; }")
	assert.True(t, ok)
	assert.Equal(t, 0, rep.ErrorCount())
}

func TestScenario3MissingSemicolonFails(t *testing.T) {
	ok, rep, _ := runSource(t, "int main() { int x = 5 return 0; }")
	assert.False(t, ok)
	assert.True(t, rep.ErrorCount() >= 1)
	found := false
	for _, d := range rep.History() {
		if contains(d.Message, `";"`) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenario4RedeclarationReported(t *testing.T) {
	_, rep, _ := runSource(t, "int main() { int x = 5; int x = 6; return 0; }")
	found := false
	for _, d := range rep.History() {
		if contains(d.Message, "redeclaration") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenario5UndeclaredVariableReported(t *testing.T) {
	_, rep, _ := runSource(t, "int main() { y = 1; return 0; }")
	found := false
	for _, d := range rep.History() {
		if contains(d.Message, "undeclared variable") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenario6OperatorPrecedence(t *testing.T) {
	ok, rep, _ := runSource(t, "int main() { int a = 5; int b = 10; int r = a + b * (a - b); return 0; }")
	assert.True(t, ok)
	assert.Equal(t, 0, rep.ErrorCount())
}

func TestDeclarationInitializerIdentifiersAreLookedUpNotRedeclared(t *testing.T) {
	ok, rep, syms := runSource(t, "int main() { int a = 5; int b = a; int c = b; return 0; }")
	assert.True(t, ok)
	assert.Equal(t, 0, rep.ErrorCount())
	for _, name := range []string{"a", "b", "c"} {
		sym := syms.Lookup(name)
		assert.True(t, sym != nil, "expected %s to be declared", name)
	}
}

func TestDeclarationWithoutInitializerAllowedByDefault(t *testing.T) {
	ok, rep, _ := runSource(t, "int main() { int x; return 0; }")
	assert.True(t, ok)
	assert.Equal(t, 0, rep.ErrorCount())
}

func TestDeclarationWithoutInitializerRejectedWhenFeatureDisabled(t *testing.T) {
	cfg := config.New()
	cfg.SetFeature(config.FeatAllowUninitialized, false)
	_, rep, _ := runSourceWithConfig(t, "int main() { int x; return 0; }", cfg)
	found := false
	for _, d := range rep.History() {
		if contains(d.Message, "requires an initializer") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSymbolTableHoldsDeclarationAtFunctionScope(t *testing.T) {
	_, _, syms := runSource(t, "int main() { int x = 5; return 0; }")
	sym := syms.Lookup("x")
	assert.True(t, sym != nil)
	assert.Equal(t, symtab.Int, sym.Type)
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
