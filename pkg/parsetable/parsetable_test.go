package parsetable

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/xplshn/minic/pkg/grammar"
	"github.com/xplshn/minic/pkg/token"
)

func TestBuildHasMainFunctionEntry(t *testing.T) {
	tbl := Build(nil)
	p, ok := tbl.Lookup(grammar.Program, grammar.Lex("int"))
	assert.True(t, ok)
	assert.Equal(t, grammar.Program, p.LHS)
}

func TestStatementListEpsilonOnRBrace(t *testing.T) {
	tbl := Build(nil)
	p, ok := tbl.Lookup(grammar.StatementList, grammar.Lex("}"))
	assert.True(t, ok)
	assert.True(t, len(p.RHS) == 1 && p.RHS[0].IsEpsilon())
}

func TestStatementEntryOnTypeKeyword(t *testing.T) {
	tbl := Build(nil)
	_, ok := tbl.Lookup(grammar.Statement, grammar.Lex("int"))
	assert.True(t, ok)
}

func TestFactorEntryOnIdentifierClass(t *testing.T) {
	tbl := Build(nil)
	_, ok := tbl.Lookup(grammar.Factor, grammar.Class(token.Identifier))
	assert.True(t, ok)
}

func TestNoEntryForUnrelatedTerminal(t *testing.T) {
	tbl := Build(nil)
	_, ok := tbl.Lookup(grammar.RelationalOp, grammar.Lex("int"))
	assert.False(t, ok)
}
