// Package token defines the token vocabulary produced by pkg/lexer and
// consumed by pkg/grammar and pkg/parser.
package token

// Kind is the coarse classification of a token, matching the Mini-C
// data model's tagged-record discriminant.
type Kind int

const (
	Keyword Kind = iota
	Identifier
	IntegerLiteral
	FloatLiteral
	StringLiteral
	Operator
	Punctuation
	Eof
	Error
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case IntegerLiteral:
		return "IntegerLiteral"
	case FloatLiteral:
		return "FloatLiteral"
	case StringLiteral:
		return "StringLiteral"
	case Operator:
		return "Operator"
	case Punctuation:
		return "Punctuation"
	case Eof:
		return "Eof"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Subkind discriminates within a Kind: which keyword, which operator,
// which punctuation variant a token is. Identifier/IntegerLiteral/
// FloatLiteral/StringLiteral/Eof/Error tokens carry SubkindNone.
type Subkind int

const SubkindNone Subkind = 0

// Keyword subkinds.
const (
	KwAuto Subkind = iota + 1
	KwConst
	KwDouble
	KwFloat
	KwInt
	KwStruct
	KwBreak
	KwContinue
	KwElse
	KwIf
	KwFor
	KwShort
	KwUnsigned
	KwLong
	KwSigned
	KwSwitch
	KwCase
	KwDefault
	KwVoid
	KwEnum
	KwGoto
	KwRegister
	KwSizeof
	KwTypedef
	KwVolatile
	KwChar
	KwDo
	KwExtern
	KwStatic
	KwUnion
	KwWhile
	KwReturn
)

// KeywordLexemes maps a keyword's subkind back to its spelling, used
// by the grammar engine to build literal-terminal keys and by dump
// tooling to render a token's subkind.
var KeywordLexemes = map[Subkind]string{
	KwAuto: "auto", KwConst: "const", KwDouble: "double", KwFloat: "float",
	KwInt: "int", KwStruct: "struct", KwBreak: "break", KwContinue: "continue",
	KwElse: "else", KwIf: "if", KwFor: "for", KwShort: "short",
	KwUnsigned: "unsigned", KwLong: "long", KwSigned: "signed", KwSwitch: "switch",
	KwCase: "case", KwDefault: "default", KwVoid: "void", KwEnum: "enum",
	KwGoto: "goto", KwRegister: "register", KwSizeof: "sizeof", KwTypedef: "typedef",
	KwVolatile: "volatile", KwChar: "char", KwDo: "do", KwExtern: "extern",
	KwStatic: "static", KwUnion: "union", KwWhile: "while", KwReturn: "return",
}

// Keywords is the fixed keyword map the lexer consults once per
// identifier-shaped lexeme.
var Keywords = func() map[string]Subkind {
	m := make(map[string]Subkind, len(KeywordLexemes))
	for sk, lex := range KeywordLexemes {
		m[lex] = sk
	}
	return m
}()

// Operator subkinds. Two- and three-character combinations are
// distinct subkinds from their single-character prefixes; the lexer
// resolves the choice by maximal munch.
const (
	OpPlus Subkind = iota + 100
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpAssign
	OpLess
	OpGreater
	OpBang
	OpAmpersand
	OpPipe
	OpCaret
	OpTilde
	OpQuestion
	OpDot
	OpComma
	OpSemicolon
	OpColon
	OpInc
	OpDec
	OpArrow
	OpShl
	OpShr
	OpLe
	OpGe
	OpEq
	OpNe
	OpAndAnd
	OpOrOr
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpShlAssign
	OpShrAssign
	OpAndAssign
	OpXorAssign
	OpOrAssign
)

// OperatorLexemes maps an operator subkind to its spelling.
var OperatorLexemes = map[Subkind]string{
	OpPlus: "+", OpMinus: "-", OpStar: "*", OpSlash: "/", OpPercent: "%",
	OpAssign: "=", OpLess: "<", OpGreater: ">", OpBang: "!", OpAmpersand: "&",
	OpPipe: "|", OpCaret: "^", OpTilde: "~", OpQuestion: "?", OpDot: ".",
	OpComma: ",", OpSemicolon: ";", OpColon: ":", OpInc: "++", OpDec: "--",
	OpArrow: "->", OpShl: "<<", OpShr: ">>", OpLe: "<=", OpGe: ">=",
	OpEq: "==", OpNe: "!=", OpAndAnd: "&&", OpOrOr: "||",
	OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=", OpDivAssign: "/=",
	OpModAssign: "%=", OpShlAssign: "<<=", OpShrAssign: ">>=",
	OpAndAssign: "&=", OpXorAssign: "^=", OpOrAssign: "|=",
}

// Punctuation subkinds.
const (
	PLParen Subkind = iota + 300
	PRParen
	PLBrace
	PRBrace
	PLBracket
	PRBracket
)

// PunctuationLexemes maps a punctuation subkind to its spelling.
var PunctuationLexemes = map[Subkind]string{
	PLParen: "(", PRParen: ")", PLBrace: "{", PRBrace: "}",
	PLBracket: "[", PRBracket: "]",
}

// Location is a (filename, line, column) triple. Line 0 / column 0
// denotes "no location" (e.g. file-open failures).
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location points at real source text.
func (l Location) IsValid() bool { return l.Line > 0 && l.Column > 0 }

// Value is the typed literal payload of a token. Only the field
// matching the token's Kind is meaningful.
type Value struct {
	Int   int64
	Float float64
	Str   string
}

// Token is a tagged record: a Kind, a Kind-appropriate Subkind, the
// verbatim source lexeme, a typed literal Value, and the location of
// the lexeme's first character.
type Token struct {
	Kind    Kind
	Subkind Subkind
	Lexeme  string
	Value   Value
	Loc     Location
	Len     int
}

// Lexeme returns the canonical spelling for a keyword/operator/
// punctuation subkind, used by the grammar engine to build
// literal-terminal keys without re-deriving them from scan output.
func Lexeme(kind Kind, sk Subkind) string {
	switch kind {
	case Keyword:
		return KeywordLexemes[sk]
	case Operator:
		return OperatorLexemes[sk]
	case Punctuation:
		return PunctuationLexemes[sk]
	default:
		return ""
	}
}
