package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/xplshn/minic/pkg/token"
)

func TestFirstOfTypeIsIntAndFloat(t *testing.T) {
	sets := ComputeSets()
	keys, nullable := sets.FirstOf(Type)
	assert.False(t, nullable)
	assert.True(t, containsLex(keys, "int"))
	assert.True(t, containsLex(keys, "float"))
	assert.Equal(t, 2, len(keys))
}

func TestStatementListIsNullable(t *testing.T) {
	sets := ComputeSets()
	_, nullable := sets.FirstOf(StatementList)
	assert.True(t, nullable)
}

func TestFollowOfProgramContainsEnd(t *testing.T) {
	sets := ComputeSets()
	follow := sets.FollowOf(Program)
	found := false
	for _, k := range follow {
		if k.KeyKind == KeyEnd {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFollowOfStatementListContainsRBrace(t *testing.T) {
	sets := ComputeSets()
	follow := sets.FollowOf(StatementList)
	assert.True(t, containsLex(follow, "}"))
}

func TestKeyOfClassifiesClassTerminalsByKind(t *testing.T) {
	idTok := token.Token{Kind: token.Identifier, Lexeme: "x"}
	k := KeyOf(idTok)
	assert.Equal(t, KeyClass, k.KeyKind)
	assert.Equal(t, token.Identifier, k.Class)

	kwTok := token.Token{Kind: token.Keyword, Subkind: token.KwInt}
	k2 := KeyOf(kwTok)
	assert.Equal(t, KeyLexeme, k2.KeyKind)
	assert.Equal(t, "int", k2.Lexeme)
}

func containsLex(keys []TerminalKey, lexeme string) bool {
	for _, k := range keys {
		if k.KeyKind == KeyLexeme && k.Lexeme == lexeme {
			return true
		}
	}
	return false
}
