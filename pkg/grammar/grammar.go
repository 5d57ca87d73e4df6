// Package grammar declares the Mini-C reference grammar as data: a
// table of non-terminals, productions, and right-hand-side symbols,
// plus the FIRST/FOLLOW fixed-point computation the parse table
// builder in pkg/parsetable consumes.
//
// The reference description keys class-terminals (Identifier,
// IntegerLiteral, FloatLiteral) as reserved "$k" strings layered over
// the same map as literal lexemes. This package instead gives every
// terminal a TerminalKey sum type: a literal lexeme is one variant,
// a token-kind class-terminal is another, and end-of-input is a
// third. Parse table cells key off TerminalKey directly, so there is
// no string-encoding step and no risk of a literal lexeme colliding
// with a reserved "$k" spelling.
package grammar

import (
	"fmt"

	"github.com/xplshn/minic/pkg/token"
)

// NonTerminal enumerates every left-hand side in the grammar.
type NonTerminal int

const (
	Program NonTerminal = iota
	MainFunction
	StatementList
	Statement
	Declaration
	DeclarationTail
	Type
	Assignment
	Loop
	Condition
	RelationalOp
	ReturnStmt
	Expression
	ExpressionTail
	Term
	TermTail
	Factor
	FactorTail
	nonTerminalCount
)

var nonTerminalNames = map[NonTerminal]string{
	Program: "PROGRAM", MainFunction: "MAIN_FUNCTION", StatementList: "STATEMENT_LIST",
	Statement: "STATEMENT", Declaration: "DECLARATION", DeclarationTail: "DECLARATION_TAIL",
	Type: "TYPE", Assignment: "ASSIGNMENT", Loop: "LOOP", Condition: "CONDITION",
	RelationalOp: "RELATIONAL_OP", ReturnStmt: "RETURN_STMT", Expression: "EXPRESSION",
	ExpressionTail: "EXPRESSION_TAIL", Term: "TERM", TermTail: "TERM_TAIL",
	Factor: "FACTOR", FactorTail: "FACTOR_TAIL",
}

func (n NonTerminal) String() string { return nonTerminalNames[n] }

// AllNonTerminals lists every non-terminal in declaration order, for
// tooling that walks the whole grammar (--show-parse-table's cell
// dump, in particular).
var AllNonTerminals = buildAllNonTerminals()

func buildAllNonTerminals() []NonTerminal {
	out := make([]NonTerminal, 0, int(nonTerminalCount))
	for n := NonTerminal(0); n < nonTerminalCount; n++ {
		out = append(out, n)
	}
	return out
}

// TerminalKeyKind distinguishes the three ways a TerminalKey can match
// input: a fixed lexeme, any token of a given kind, or end-of-input.
type TerminalKeyKind int

const (
	KeyLexeme TerminalKeyKind = iota
	KeyClass
	KeyEnd
)

// TerminalKey identifies one cell column in FIRST/FOLLOW sets and the
// parse table. Two TerminalKeys are equal (and thus usable as a Go
// map key) iff they denote the same terminal.
type TerminalKey struct {
	KeyKind TerminalKeyKind
	Lexeme  string     // meaningful when KeyKind == KeyLexeme
	Class   token.Kind // meaningful when KeyKind == KeyClass
}

// Lex builds a literal-lexeme terminal key.
func Lex(lexeme string) TerminalKey { return TerminalKey{KeyKind: KeyLexeme, Lexeme: lexeme} }

// Class builds a token-kind class-terminal key.
func Class(k token.Kind) TerminalKey { return TerminalKey{KeyKind: KeyClass, Class: k} }

// End is the end-of-input terminal key; it may only appear in FOLLOW
// sets and the bottom-of-stack marker, never in FIRST sets.
var End = TerminalKey{KeyKind: KeyEnd}

func (k TerminalKey) String() string {
	switch k.KeyKind {
	case KeyLexeme:
		return fmt.Sprintf("%q", k.Lexeme)
	case KeyClass:
		return "$" + k.Class.String()
	default:
		return "$"
	}
}

// KeyOf computes the TerminalKey that a scanned token matches for
// lookup purposes: Identifier/IntegerLiteral/FloatLiteral match by
// kind, everything else (Keyword/Operator/Punctuation) matches by its
// canonical lexeme spelling.
func KeyOf(t token.Token) TerminalKey {
	switch t.Kind {
	case token.Identifier, token.IntegerLiteral, token.FloatLiteral:
		return Class(t.Kind)
	case token.Eof:
		return End
	default:
		return Lex(token.Lexeme(t.Kind, t.Subkind))
	}
}

// SymbolKind discriminates a production's right-hand-side element.
type SymbolKind int

const (
	SymLiteral SymbolKind = iota
	SymClass
	SymNonTerminal
	SymEpsilon
)

// Symbol is one element of a production's right-hand side.
type Symbol struct {
	SymKind SymbolKind
	Lexeme  string      // meaningful when SymKind == SymLiteral
	Class   token.Kind  // meaningful when SymKind == SymClass
	NT      NonTerminal // meaningful when SymKind == SymNonTerminal
}

func Lit(lexeme string) Symbol           { return Symbol{SymKind: SymLiteral, Lexeme: lexeme} }
func Cls(k token.Kind) Symbol            { return Symbol{SymKind: SymClass, Class: k} }
func NT(n NonTerminal) Symbol            { return Symbol{SymKind: SymNonTerminal, NT: n} }
func Eps() Symbol                        { return Symbol{SymKind: SymEpsilon} }
func (s Symbol) IsEpsilon() bool         { return s.SymKind == SymEpsilon }

func (s Symbol) String() string {
	switch s.SymKind {
	case SymLiteral:
		return fmt.Sprintf("%q", s.Lexeme)
	case SymClass:
		return "$" + s.Class.String()
	case SymNonTerminal:
		return s.NT.String()
	default:
		return "ε"
	}
}

// Key converts a terminal Symbol (literal or class) to its
// TerminalKey. Calling it on a non-terminal or epsilon symbol is a
// programmer error.
func (s Symbol) Key() TerminalKey {
	switch s.SymKind {
	case SymLiteral:
		return Lex(s.Lexeme)
	case SymClass:
		return Class(s.Class)
	default:
		panic("grammar: Key called on non-terminal symbol")
	}
}

// Production is one LHS → RHS rule, indexed by its position in Rules.
type Production struct {
	Index int
	LHS   NonTerminal
	RHS   []Symbol
}

func (p Production) String() string {
	rhs := "ε"
	if len(p.RHS) > 0 && !p.RHS[0].IsEpsilon() {
		parts := make([]string, len(p.RHS))
		for i, s := range p.RHS {
			parts[i] = s.String()
		}
		rhs = joinSpace(parts)
	}
	return fmt.Sprintf("%s -> %s", p.LHS, rhs)
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// Rules is the full Mini-C reference grammar, in declaration order.
// Production indices are stable and used by the parse table as the
// cell payload.
var Rules = buildRules()

func buildRules() []Production {
	raw := []struct {
		lhs NonTerminal
		rhs []Symbol
	}{
		// PROGRAM → MAIN_FUNCTION
		{Program, []Symbol{NT(MainFunction)}},

		// MAIN_FUNCTION → int main ( ) { STATEMENT_LIST }
		{MainFunction, []Symbol{
			Lit("int"), Lit("main"), Lit("("), Lit(")"), Lit("{"), NT(StatementList), Lit("}"),
		}},

		// STATEMENT_LIST → STATEMENT STATEMENT_LIST | ε
		{StatementList, []Symbol{NT(Statement), NT(StatementList)}},
		{StatementList, []Symbol{Eps()}},

		// STATEMENT → DECLARATION | ASSIGNMENT | LOOP | RETURN_STMT
		//          | EXPRESSION ; | ε
		{Statement, []Symbol{NT(Declaration)}},
		{Statement, []Symbol{NT(Assignment)}},
		{Statement, []Symbol{NT(Loop)}},
		{Statement, []Symbol{NT(ReturnStmt)}},
		{Statement, []Symbol{NT(Expression), Lit(";")}},
		{Statement, []Symbol{Eps()}},

		// DECLARATION → TYPE Identifier DECLARATION_TAIL
		{Declaration, []Symbol{NT(Type), Cls(tokenIdentifier), NT(DeclarationTail)}},

		// DECLARATION_TAIL → = EXPRESSION ; | ;
		{DeclarationTail, []Symbol{Lit("="), NT(Expression), Lit(";")}},
		{DeclarationTail, []Symbol{Lit(";")}},

		// TYPE → int | float
		{Type, []Symbol{Lit("int")}},
		{Type, []Symbol{Lit("float")}},

		// ASSIGNMENT → Identifier = EXPRESSION ;
		{Assignment, []Symbol{Cls(tokenIdentifier), Lit("="), NT(Expression), Lit(";")}},

		// LOOP → while ( CONDITION ) { STATEMENT_LIST }
		{Loop, []Symbol{
			Lit("while"), Lit("("), NT(Condition), Lit(")"), Lit("{"), NT(StatementList), Lit("}"),
		}},

		// CONDITION → EXPRESSION RELATIONAL_OP EXPRESSION
		{Condition, []Symbol{NT(Expression), NT(RelationalOp), NT(Expression)}},

		// RELATIONAL_OP → < | > | <= | >= | == | !=
		{RelationalOp, []Symbol{Lit("<")}},
		{RelationalOp, []Symbol{Lit(">")}},
		{RelationalOp, []Symbol{Lit("<=")}},
		{RelationalOp, []Symbol{Lit(">=")}},
		{RelationalOp, []Symbol{Lit("==")}},
		{RelationalOp, []Symbol{Lit("!=")}},

		// RETURN_STMT → return EXPRESSION ;
		{ReturnStmt, []Symbol{Lit("return"), NT(Expression), Lit(";")}},

		// EXPRESSION → TERM EXPRESSION_TAIL
		{Expression, []Symbol{NT(Term), NT(ExpressionTail)}},

		// EXPRESSION_TAIL → + TERM EXPRESSION_TAIL | - TERM EXPRESSION_TAIL | ε
		{ExpressionTail, []Symbol{Lit("+"), NT(Term), NT(ExpressionTail)}},
		{ExpressionTail, []Symbol{Lit("-"), NT(Term), NT(ExpressionTail)}},
		{ExpressionTail, []Symbol{Eps()}},

		// TERM → FACTOR TERM_TAIL
		{Term, []Symbol{NT(Factor), NT(TermTail)}},

		// TERM_TAIL → * FACTOR TERM_TAIL | / FACTOR TERM_TAIL | ε
		{TermTail, []Symbol{Lit("*"), NT(Factor), NT(TermTail)}},
		{TermTail, []Symbol{Lit("/"), NT(Factor), NT(TermTail)}},
		{TermTail, []Symbol{Eps()}},

		// FACTOR → Identifier FACTOR_TAIL
		//        | IntegerLiteral | FloatLiteral | ( EXPRESSION )
		{Factor, []Symbol{Cls(tokenIdentifier), NT(FactorTail)}},
		{Factor, []Symbol{Cls(tokenIntegerLiteral)}},
		{Factor, []Symbol{Cls(tokenFloatLiteral)}},
		{Factor, []Symbol{Lit("("), NT(Expression), Lit(")")}},

		// FACTOR_TAIL → ++ | -- | ε
		{FactorTail, []Symbol{Lit("++")}},
		{FactorTail, []Symbol{Lit("--")}},
		{FactorTail, []Symbol{Eps()}},
	}

	rules := make([]Production, len(raw))
	for i, r := range raw {
		rules[i] = Production{Index: i, LHS: r.lhs, RHS: r.rhs}
	}
	return rules
}

// ProductionsFor returns every production whose LHS is n, in Rules
// order.
func ProductionsFor(n NonTerminal) []Production {
	var out []Production
	for _, p := range Rules {
		if p.LHS == n {
			out = append(out, p)
		}
	}
	return out
}

// These local aliases avoid importing pkg/token's identifiers directly
// into every grammar rule literal above.
const (
	tokenIdentifier     = token.Identifier
	tokenIntegerLiteral = token.IntegerLiteral
	tokenFloatLiteral   = token.FloatLiteral
)
