// Package stream holds a fully-scanned token sequence and the cursor
// operations the parser driver needs over it: peek, advance, and the
// panic-mode synchronize used by the opt-in recovery path.
package stream

import "github.com/xplshn/minic/pkg/token"

// TokenStream is a read cursor over a slice of tokens produced by
// pkg/lexer. It never scans lazily: the whole token sequence (ending
// in one Eof token) is handed to New up front.
type TokenStream struct {
	tokens  []token.Token
	current int
}

// New wraps a pre-scanned token slice. The caller is expected to have
// run the lexer to completion (pkg/lexer.ScanAll) including the
// trailing Eof token.
func New(tokens []token.Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the token at the cursor without consuming it. Past the
// end of the stream it returns the final Eof token repeatedly.
func (s *TokenStream) Peek() token.Token {
	if s.IsAtEnd() {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.current]
}

// PeekAt returns the token offset tokens ahead of the cursor, clamped
// to the final Eof token when it runs past the end. Used by the
// parser driver for lookahead disambiguation beyond one token.
func (s *TokenStream) PeekAt(offset int) token.Token {
	i := s.current + offset
	if i < 0 {
		i = 0
	}
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Advance returns the token at the cursor and moves the cursor
// forward by one, unless already at the end.
func (s *TokenStream) Advance() token.Token {
	if s.IsAtEnd() {
		return s.tokens[len(s.tokens)-1]
	}
	t := s.tokens[s.current]
	s.current++
	return t
}

// IsAtEnd reports whether the cursor is on the final Eof token (or past
// the end of the slice). Advance never moves the cursor past Eof.
func (s *TokenStream) IsAtEnd() bool {
	return s.current >= len(s.tokens) || s.tokens[s.current].Kind == token.Eof
}

// Reset rewinds the cursor to the beginning of the stream.
func (s *TokenStream) Reset() { s.current = 0 }

// Synchronize implements the panic-mode recovery step:
// it discards the offending token, then keeps discarding tokens until
// it finds a semicolon (to resume after a broken statement) or a
// keyword that plausibly starts the next statement or declaration.
func (s *TokenStream) Synchronize() {
	s.Advance()
	for !s.IsAtEnd() {
		p := s.Peek()
		if p.Kind == token.Operator && p.Subkind == token.OpSemicolon {
			return
		}
		if p.Kind == token.Keyword {
			switch p.Subkind {
			case token.KwInt, token.KwFloat, token.KwWhile, token.KwIf, token.KwReturn:
				return
			}
		}
		s.Advance()
	}
}
