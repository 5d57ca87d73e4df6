// Package parser implements the Parser driver: an explicit-stack,
// table-driven LL(1) predictive parser over the Mini-C grammar, with
// the lookahead-based disambiguation the reference grammar's two
// documented ambiguous cells require and a symbol table threaded
// through declaration/assignment/use sites as they are matched.
package parser

import (
	"github.com/xplshn/minic/pkg/config"
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/grammar"
	"github.com/xplshn/minic/pkg/parsetable"
	"github.com/xplshn/minic/pkg/stream"
	"github.com/xplshn/minic/pkg/symtab"
	"github.com/xplshn/minic/pkg/token"
)

// maxIterations bounds the driver loop against construction bugs in
// the grammar or table (the "watchdog" of the parser driver design).
const maxIterations = 1000

// stackEntry is one element of the explicit parse stack: either the
// bottom-of-stack marker, or a grammar symbol (terminal or
// non-terminal).
type stackEntry struct {
	bottom bool
	sym    grammar.Symbol
}

// Step is one recorded iteration of the driver loop, captured for
// --show-parse-steps.
type Step struct {
	Popped      string
	Action      string
	LookaheadAt token.Location
}

// Parser runs the driver loop over one token stream.
type Parser struct {
	stack    []stackEntry
	toks     *stream.TokenStream
	table    *parsetable.Table
	symtab   *symtab.Table
	reporter *diag.Reporter
	cfg      *config.Config

	currentType            symtab.Type
	currentIdentifier      string
	processingDeclaration  bool

	Steps []Step
	trace bool
}

// New builds a Parser seeded with "$" at the bottom and PROGRAM on
// top, ready to run.
func New(toks *stream.TokenStream, table *parsetable.Table, symbols *symtab.Table, reporter *diag.Reporter, cfg *config.Config) *Parser {
	p := &Parser{
		toks:     toks,
		table:    table,
		symtab:   symbols,
		reporter: reporter,
		cfg:      cfg,
	}
	p.stack = []stackEntry{{bottom: true}, {sym: grammar.NT(grammar.Program)}}
	return p
}

// SetTrace enables --show-parse-steps-style step recording.
func (p *Parser) SetTrace(on bool) { p.trace = on }

func (p *Parser) record(popped, action string) {
	if p.trace {
		p.Steps = append(p.Steps, Step{Popped: popped, Action: action, LookaheadAt: p.toks.Peek().Loc})
	}
}

// Run drives the parser to completion. It returns true iff the input
// was accepted with no structural failure; the caller should still
// consult the reporter's error count, since some accepted parses still
// carry semantic errors (redeclaration, undeclared use) that don't
// abort the drive.
func (p *Parser) Run() bool {
	iterations := 0
	for len(p.stack) > 0 {
		iterations++
		if iterations > maxIterations {
			p.reporter.Error(p.toks.Peek().Loc, "parser watchdog exceeded %d iterations", maxIterations)
			return false
		}

		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		if top.bottom {
			if p.toks.Peek().Kind == token.Eof {
				p.record("$", "accept")
				return true
			}
			p.record("$", "reject: input remains past $")
			p.reporter.Error(p.toks.Peek().Loc, "unexpected tokens after end of program: '%s'", p.toks.Peek().Lexeme)
			return false
		}

		switch top.sym.SymKind {
		case grammar.SymEpsilon:
			p.record("ε", "no-op")
			continue
		case grammar.SymLiteral:
			if !p.stepLiteral(top.sym.Lexeme) {
				return false
			}
		case grammar.SymClass:
			if !p.stepClass(top.sym.Class) {
				return false
			}
		case grammar.SymNonTerminal:
			if !p.stepNonTerminal(top.sym.NT) {
				return false
			}
		}
	}
	return true
}

func (p *Parser) stepLiteral(lexeme string) bool {
	cur := p.toks.Peek()

	switch lexeme {
	case "{":
		if !p.matchLexeme(lexeme) {
			return false
		}
		// The "int" of the "int main" header also sets
		// processingDeclaration; no declaration spans a "{", so clear it.
		p.processingDeclaration = false
		p.symtab.EnterScope()
		return true
	case "}":
		if !p.matchLexeme(lexeme) {
			return false
		}
		p.symtab.ExitScope()
		return true
	case "int", "float":
		if !p.matchLexeme(lexeme) {
			return false
		}
		if lexeme == "int" {
			p.currentType = symtab.Int
		} else {
			p.currentType = symtab.Float
		}
		p.processingDeclaration = true
		return true
	case ";":
		if !p.matchLexeme(lexeme) {
			return false
		}
		if p.currentIdentifier != "" {
			if p.symtab.IsDefined(p.currentIdentifier) {
				p.reporter.Error(cur.Loc, "redeclaration of '%s'", p.currentIdentifier)
			} else {
				p.symtab.Insert(p.currentIdentifier, p.currentType)
			}
		}
		p.processingDeclaration = false
		p.currentType = symtab.Unknown
		p.currentIdentifier = ""
		return true
	default:
		return p.matchLexeme(lexeme)
	}
}

func (p *Parser) matchLexeme(lexeme string) bool {
	cur := p.toks.Peek()
	if cur.Kind != token.Eof && lexemeOf(cur) == lexeme {
		p.record(quote(lexeme), "match")
		p.toks.Advance()
		return true
	}
	p.record(quote(lexeme), "mismatch")
	p.reporter.Error(cur.Loc, "expected '%s', got '%s'", lexeme, displayLexeme(cur))
	p.recover()
	return false
}

func (p *Parser) stepClass(class token.Kind) bool {
	cur := p.toks.Peek()
	if cur.Kind != class {
		p.record(classLabel(class), "mismatch")
		p.reporter.Error(cur.Loc, "expected %s, got '%s'", classLabel(class), displayLexeme(cur))
		p.recover()
		return false
	}
	p.record(classLabel(class), "match")
	p.toks.Advance()

	if class == token.Identifier {
		if p.processingDeclaration {
			// Only the name immediately after TYPE is the declared
			// identifier; clear the flag so any identifier parsed
			// while walking the rest of the declaration (its
			// initializer expression) is looked up instead.
			p.currentIdentifier = cur.Lexeme
			p.processingDeclaration = false
		} else if p.symtab.Lookup(cur.Lexeme) == nil {
			p.reporter.Error(cur.Loc, "use of undeclared variable '%s'", cur.Lexeme)
		}
	}
	return true
}

func (p *Parser) recover() {
	if p.cfg.IsFeatureEnabled(config.FeatPanicModeRecovery) {
		p.toks.Synchronize()
		return
	}
	p.toks.Advance()
}

// stepNonTerminal applies the spec's special-cased lookahead
// disambiguations first (STATEMENT_LIST, STATEMENT, DECLARATION), and
// falls back to a table lookup for everything else.
func (p *Parser) stepNonTerminal(n grammar.NonTerminal) bool {
	switch n {
	case grammar.StatementList:
		return p.stepStatementList()
	case grammar.Statement:
		return p.stepStatement()
	case grammar.Declaration:
		p.processingDeclaration = true
		p.currentType = symtab.Unknown
		p.currentIdentifier = ""
		return p.pushFromTable(n)
	case grammar.DeclarationTail:
		if lexemeOf(p.toks.Peek()) == ";" && !p.cfg.IsFeatureEnabled(config.FeatAllowUninitialized) {
			p.reporter.Error(p.toks.Peek().Loc, "declaration of '%s' requires an initializer", p.currentIdentifier)
		}
		return p.pushFromTable(n)
	default:
		return p.pushFromTable(n)
	}
}

func startsStatement(t token.Token) bool {
	if t.Kind == token.Identifier || t.Kind == token.IntegerLiteral || t.Kind == token.FloatLiteral {
		return true
	}
	if t.Kind == token.Keyword {
		switch t.Subkind {
		case token.KwInt, token.KwFloat, token.KwWhile, token.KwReturn:
			return true
		}
		return false
	}
	switch lexemeOf(t) {
	case "(", "++", "--":
		return true
	}
	return false
}

func (p *Parser) stepStatementList() bool {
	cur := p.toks.Peek()
	if lexemeOf(cur) == "}" {
		p.record("STATEMENT_LIST", "epsilon on '}'")
		return true
	}
	if startsStatement(cur) {
		p.record("STATEMENT_LIST", "push STATEMENT STATEMENT_LIST")
		p.push(grammar.NT(grammar.StatementList))
		p.push(grammar.NT(grammar.Statement))
		return true
	}
	p.record("STATEMENT_LIST", "epsilon (no statement start)")
	return true
}

func (p *Parser) stepStatement() bool {
	cur := p.toks.Peek()

	if cur.Kind == token.Keyword {
		switch cur.Subkind {
		case token.KwInt, token.KwFloat:
			p.record("STATEMENT", "-> DECLARATION")
			p.push(grammar.NT(grammar.Declaration))
			return true
		case token.KwWhile:
			p.record("STATEMENT", "-> LOOP")
			p.push(grammar.NT(grammar.Loop))
			return true
		case token.KwReturn:
			p.record("STATEMENT", "-> RETURN_STMT")
			p.push(grammar.NT(grammar.ReturnStmt))
			return true
		}
	}

	if cur.Kind == token.Identifier {
		next := p.toks.PeekAt(1)
		if next.Kind == token.Operator && next.Subkind == token.OpAssign {
			p.record("STATEMENT", "-> ASSIGNMENT")
			p.push(grammar.NT(grammar.Assignment))
			return true
		}
		p.record("STATEMENT", "-> EXPRESSION ;")
		p.push(grammar.Lit(";"))
		p.push(grammar.NT(grammar.Expression))
		return true
	}

	if cur.Kind == token.IntegerLiteral || cur.Kind == token.FloatLiteral {
		p.record("STATEMENT", "-> EXPRESSION ;")
		p.push(grammar.Lit(";"))
		p.push(grammar.NT(grammar.Expression))
		return true
	}
	switch lexemeOf(cur) {
	case "(", "++", "--":
		p.record("STATEMENT", "-> EXPRESSION ;")
		p.push(grammar.Lit(";"))
		p.push(grammar.NT(grammar.Expression))
		return true
	}

	p.record("STATEMENT", "epsilon")
	return true
}

func (p *Parser) pushFromTable(n grammar.NonTerminal) bool {
	cur := p.toks.Peek()
	key := grammar.KeyOf(cur)
	prod, ok := p.table.Lookup(n, key)
	if !ok {
		p.record(n.String(), "no table entry")
		p.reporter.Error(cur.Loc, "unexpected token '%s' while parsing %s (expected one of %v)", displayLexeme(cur), n, p.table.Keys(n))
		p.recover()
		return false
	}
	p.record(n.String(), "push "+prod.String())
	p.pushRHS(prod.RHS)
	return true
}

func (p *Parser) push(sym grammar.Symbol) {
	p.stack = append(p.stack, stackEntry{sym: sym})
}

func (p *Parser) pushRHS(rhs []grammar.Symbol) {
	if len(rhs) == 1 && rhs[0].IsEpsilon() {
		return
	}
	for i := len(rhs) - 1; i >= 0; i-- {
		p.push(rhs[i])
	}
}

func lexemeOf(t token.Token) string {
	switch t.Kind {
	case token.Keyword, token.Operator, token.Punctuation:
		return token.Lexeme(t.Kind, t.Subkind)
	default:
		return t.Lexeme
	}
}

func displayLexeme(t token.Token) string {
	if t.Kind == token.Eof {
		return "<eof>"
	}
	return t.Lexeme
}

func classLabel(k token.Kind) string {
	switch k {
	case token.Identifier:
		return "an identifier"
	case token.IntegerLiteral:
		return "an integer literal"
	case token.FloatLiteral:
		return "a float literal"
	default:
		return k.String()
	}
}

func quote(s string) string { return "'" + s + "'" }
