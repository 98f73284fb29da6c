package tagquery

import (
	"strings"
	"unicode"
)

// Token is a lexical token of the tag query language.
type Token struct {
	Kind  TokenKind
	Value string // canonical tag text, set only for TokTag
}

// TokenKind is the type of token.
type TokenKind int

const (
	TokTag TokenKind = iota
	TokAnd
	TokOr
	TokNot
	TokLParen
	TokRParen
)

func (k TokenKind) String() string {
	switch k {
	case TokTag:
		return "Tag"
	case TokAnd:
		return "And"
	case TokOr:
		return "Or"
	case TokNot:
		return "Not"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	default:
		return "Unknown"
	}
}

// Lexer tokenizes a query string.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokenize splits a query string into tokens. Tokenization is permissive
// and never fails: chunks are delimited by whitespace and parentheses, the
// keywords AND/OR/NOT match case-insensitively, and every other chunk
// becomes a tag token in canonical form.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or ok=false at end of input.
func (l *Lexer) Next() (Token, bool) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{}, false
	}

	switch l.input[l.pos] {
	case '(':
		l.pos++
		return Token{Kind: TokLParen}, true
	case ')':
		l.pos++
		return Token{Kind: TokRParen}, true
	}

	return l.scanChunk(), true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// scanChunk consumes up to the next whitespace or parenthesis and
// classifies the chunk as a keyword or a tag.
func (l *Lexer) scanChunk() Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' {
			break
		}
		l.pos++
	}

	chunk := string(l.input[start:l.pos])
	switch strings.ToUpper(chunk) {
	case "AND":
		return Token{Kind: TokAnd}
	case "OR":
		return Token{Kind: TokOr}
	case "NOT":
		return Token{Kind: TokNot}
	}
	return Token{Kind: TokTag, Value: Normalize(chunk)}
}
