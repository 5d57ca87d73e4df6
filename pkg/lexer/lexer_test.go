package lexer

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/xplshn/minic/pkg/config"
	"github.com/xplshn/minic/pkg/diag"
	"github.com/xplshn/minic/pkg/source"
	"github.com/xplshn/minic/pkg/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Reporter) {
	t.Helper()
	return scanWithConfig(t, src, config.New())
}

func scanWithConfig(t *testing.T, src string, cfg *config.Config) ([]token.Token, *diag.Reporter) {
	t.Helper()
	buf := source.New("test.mc", []byte(src))
	rep := diag.NewReporter(&discard{}, false)
	rep.AddSource(buf)
	l := New(buf, cfg, rep)
	return ScanAll(l), rep
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, rep := scan(t, "int main x_1")
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, 4, len(toks))
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, token.KwInt, toks[0].Subkind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "main", toks[1].Lexeme)
	assert.Equal(t, token.Identifier, toks[2].Kind)
	assert.Equal(t, "x_1", toks[2].Lexeme)
	assert.Equal(t, token.Eof, toks[3].Kind)
}

func TestScanNumbers(t *testing.T) {
	toks, rep := scan(t, "42 3.14 0")
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, token.IntegerLiteral, toks[0].Kind)
	assert.Equal(t, int64(42), toks[0].Value.Int)
	assert.Equal(t, token.FloatLiteral, toks[1].Kind)
	assert.Equal(t, 3.14, toks[1].Value.Float)
	assert.Equal(t, token.IntegerLiteral, toks[2].Kind)
	assert.Equal(t, int64(0), toks[2].Value.Int)
}

func TestScanStringWithEscapes(t *testing.T) {
	toks, rep := scan(t, `"a\nb\"c"`)
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Equal(t, "a\nb\"c", toks[0].Value.Str)
}

func TestScanUnterminatedString(t *testing.T) {
	toks, rep := scan(t, `"abc`)
	assert.Equal(t, 1, rep.ErrorCount())
	assert.Equal(t, token.Error, toks[0].Kind)
}

func TestScanUnknownEscape(t *testing.T) {
	_, rep := scan(t, `"a\qb"`)
	assert.Equal(t, 1, rep.ErrorCount())
}

func TestScanUnknownEscapeSilencedByWarningToggle(t *testing.T) {
	cfg := config.New()
	cfg.SetWarning(config.WarnUnrecognizedEscape, false)
	toks, rep := scanWithConfig(t, `"a\qb"`, cfg)
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, token.Error, toks[0].Kind)
}

func TestScanOverflowWarningSilencedByToggle(t *testing.T) {
	cfg := config.New()
	cfg.SetWarning(config.WarnOverflow, false)
	_, rep := scanWithConfig(t, "99999999999999999999", cfg)
	assert.Equal(t, 0, len(rep.History()))
}

func TestScanOperatorsMaximalMunch(t *testing.T) {
	toks, rep := scan(t, "<= << <<= < = == !=")
	assert.Equal(t, 0, rep.ErrorCount())
	want := []token.Subkind{
		token.OpLe, token.OpShl, token.OpShlAssign, token.OpLess,
		token.OpAssign, token.OpEq, token.OpNe,
	}
	for i, sk := range want {
		assert.Equal(t, sk, toks[i].Subkind, "token %d", i)
	}
}

func TestScanLineAndBlockComments(t *testing.T) {
	toks, rep := scan(t, "int x; // trailing\n/* block\ncomment */ return")
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, token.OpSemicolon, toks[2].Subkind)
	assert.Equal(t, token.KwReturn, toks[3].Subkind)
}

func TestScanUnrecognizedCharacterSkipped(t *testing.T) {
	toks, rep := scan(t, "int @ x;")
	assert.Equal(t, 1, rep.ErrorCount())
	// '@' produces no token: int, x, ;, Eof
	assert.Equal(t, 4, len(toks))
	assert.Equal(t, "x", toks[1].Lexeme)
}

func TestLocationsTrackLineAndColumn(t *testing.T) {
	toks, _ := scan(t, "int\nmain")
	assert.Equal(t, 1, toks[0].Loc.Line)
	assert.Equal(t, 1, toks[0].Loc.Column)
	assert.Equal(t, 2, toks[1].Loc.Line)
	assert.Equal(t, 1, toks[1].Loc.Column)
}
