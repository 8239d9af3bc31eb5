package parser

import (
	"unicode/utf8"

	"github.com/maxjmartin/seqcontainer/pkg/types"
)

const eof = -1

// Lexer converts a sequence expression into a stream of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go"
// technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	// skipWhitespace may hit an unclosed comment
	if l.err != nil {
		return l.newToken(TokenError)
	}

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Two-character symbols first (<<, >>)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tt)
			}
		}
		return l.error(types.ErrSyntaxError, "unexpected character "+string(ch))
	}

	// Single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		return l.newToken(tt)
	}

	// Number literals
	if ch >= '0' && ch <= '9' {
		l.backup()
		return l.scanNumber()
	}

	// Variables
	if ch == '$' {
		l.ignore()
		return l.scanName(TokenVariable)
	}

	// Names (builtin calls)
	if isNameStart(ch) {
		l.backup()
		return l.scanName(TokenName)
	}

	return l.error(types.ErrSyntaxError, "unexpected character "+string(ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanNumber reads an integer literal from the current position.
// Format: a single zero, or a non-zero digit followed by more digits.
func (l *Lexer) scanNumber() Token {
	if !l.acceptRune('0') {
		l.accept(isNonZeroDigit)
		l.acceptAll(isDigit)
	}
	return l.newToken(TokenNumber)
}

// scanName reads a name or variable from the current position.
// Names contain letters, digits, and underscores.
func (l *Lexer) scanName(tt TokenType) Token {
	for {
		ch := l.nextRune()
		if ch == eof {
			break
		}
		if !isNameStart(ch) && !isDigit(ch) {
			l.backup()
			break
		}
	}
	t := l.newToken(tt)
	if t.Value == "" {
		return l.error(types.ErrSyntaxError, "empty variable name")
	}
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	l.err = &types.Error{
		Code:     code,
		Message:  message,
		Position: t.Position,
		Token:    t.Value,
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// skipWhitespace consumes whitespace and /* block comments */.
func (l *Lexer) skipWhitespace() {
	for {
		if l.err != nil {
			return
		}

		l.acceptAll(isWhitespace)
		l.ignore()

		slash := l.current
		if !l.acceptRune('/') {
			return
		}
		if !l.acceptRune('*') {
			// Re-seat explicitly: at end of input the failed accept has
			// width 0, so backup alone would swallow the division token.
			l.current = slash
			return
		}
		for {
			ch := l.nextRune()
			if ch == eof {
				l.err = &types.Error{
					Code:     types.ErrSyntaxError,
					Message:  "unclosed comment",
					Position: l.current,
				}
				return
			}
			if ch == '*' && l.acceptRune('/') {
				break
			}
		}
		l.ignore()
	}
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNonZeroDigit(r rune) bool {
	return r >= '1' && r <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
