// Package parsetable builds the LL(1) parse table from the grammar's
// FIRST/FOLLOW sets, applying the documented conflict policy: two
// terminal positions are expected to collide and are resolved
// silently by keeping the later production; any other collision is a
// construction-time diagnostic, resolved the same deterministic way
// so table construction stays a pure function of the grammar.
package parsetable

import (
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/grammar"
	"github.com/xplshn/minic/pkg/token"
)

// cellKey is the (non-terminal, terminal) address of one table cell.
type cellKey struct {
	nt  grammar.NonTerminal
	key grammar.TerminalKey
}

// Table is the built parse table: for every (non-terminal,
// terminal-key) pair with a production, the production to push.
// Missing entries mean "no production" (bottom, an error cell).
type Table struct {
	cells map[cellKey]grammar.Production
	sets  *grammar.Sets
}

// Lookup returns the production registered for (n, key), if any.
func (t *Table) Lookup(n grammar.NonTerminal, key grammar.TerminalKey) (grammar.Production, bool) {
	p, ok := t.cells[cellKey{n, key}]
	return p, ok
}

// Keys returns every terminal key with a registered cell for n, used
// to report the expected set on a missing-entry diagnostic and to
// print the table with --show-parse-table.
func (t *Table) Keys(n grammar.NonTerminal) []grammar.TerminalKey {
	var out []grammar.TerminalKey
	for ck := range t.cells {
		if ck.nt == n {
			out = append(out, ck.key)
		}
	}
	return out
}

// Sets exposes the FIRST/FOLLOW tables the builder computed.
func (t *Table) Sets() *grammar.Sets { return t.sets }

// expectedConflict reports whether (n, key) is one of the two
// documented ambiguous cells the grammar's reference description
// calls out: the STATEMENT_LIST / "}" epsilon-vs-continue choice, and
// the STATEMENT lookahead set shared between EXPRESSION-as-statement
// and the specialized statement forms. Both are disambiguated by the
// parser driver itself, not by this table, so a collision here is
// expected rather than a genuine grammar defect.
func expectedConflict(n grammar.NonTerminal, key grammar.TerminalKey) bool {
	if n == grammar.StatementList && key.KeyKind == grammar.KeyLexeme && key.Lexeme == "}" {
		return true
	}
	if n == grammar.Statement {
		switch key.KeyKind {
		case grammar.KeyLexeme:
			switch key.Lexeme {
			case "int", "float", "while", "return", "(":
				return true
			}
		case grammar.KeyClass:
			switch key.Class {
			case token.Identifier, token.IntegerLiteral, token.FloatLiteral:
				return true
			}
		}
	}
	return false
}

// Build runs FIRST/FOLLOW and constructs the table. Any unexpected
// conflict is reported through reporter as a note-level diagnostic (it
// is a builder-time diagnostic, not a parse failure); reporter may be
// nil to suppress this (tests that only care about the resulting
// table shape).
func Build(reporter *diag.Reporter) *Table {
	sets := grammar.ComputeSets()
	t := &Table{cells: make(map[cellKey]grammar.Production), sets: sets}

	set := func(n grammar.NonTerminal, key grammar.TerminalKey, p grammar.Production) {
		ck := cellKey{n, key}
		if _, exists := t.cells[ck]; exists && !expectedConflict(n, key) && reporter != nil {
			reporter.Note(token.Location{}, "parse table conflict at (%s, %s): keeping production %d", n, key, p.Index)
		}
		t.cells[ck] = p
	}

	for _, p := range grammar.Rules {
		keys, nullable := sets.FirstOfRHS(p.RHS)
		for _, k := range keys {
			set(p.LHS, k, p)
		}
		if nullable {
			for _, k := range sets.FollowOf(p.LHS) {
				set(p.LHS, k, p)
			}
		}
	}

	return t
}
