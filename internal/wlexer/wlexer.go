// Package wlexer scans Wandle DSL source text into the lexemes the parser
// in internal/wparser assembles into a parse tree. It follows the cursor
// layout of funxy's internal/lexer (input/position/readPosition/ch/line/
// column), but — because the Wandle grammar distinguishes several
// overlapping character classes at the same lexical position (a bare word,
// a type reference that may carry "/" and "," for generic instantiation,
// and an all-caps template-parameter name) — it exposes several
// context-specific scan methods instead of a single NextToken stream. The
// parser calls whichever one the current grammar rule expects, the same
// way the original Arpeggio grammar in original_source/wandle/
// arpeggio_parse.py attaches a distinct regex to each rule.
package wlexer

import (
	"strings"

	"github.com/wandlelang/wandle/internal/token"
)

// Keywords recognized anywhere a word token is read.
var keywords = map[string]bool{
	"class": true, "generic": true, "single": true, "alias": true,
	"to": true, "flow": true, "is": true, "async": true, "sync": true,
	"note": true, "return": true,
}

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

// New creates a Lexer over already comment-stripped source.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// SkipSpace skips whitespace (including newlines — the Wandle grammar has
// no significant layout).
func (l *Lexer) SkipSpace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) AtEOF() bool {
	l.SkipSpace()
	return l.ch == 0
}

func isWordChar(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }

func isTypeChar(ch byte) bool {
	return isWordChar(ch) || ch == '/' || ch == ','
}

func isNoteChar(ch byte) bool {
	return isWordChar(ch) || ch == '/' || ch == ',' || ch == '(' || ch == ')' || ch == '-' || ch == '.'
}

func (l *Lexer) startTok() (line, col int) { return l.line, l.column }

// NextWord scans `\w+`: used for class/generic/single/flow names, snake_case
// identifiers, and dotref path segments. Classifies the result as KEYWORD
// if it matches a reserved word, TYPE if it begins uppercase, else IDENT.
func (l *Lexer) NextWord() token.Token {
	l.SkipSpace()
	line, col := l.startTok()
	start := l.position
	for isWordChar(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	kind := token.IDENT
	if keywords[lexeme] {
		kind = token.KEYWORD
	} else if len(lexeme) > 0 && isUpper(lexeme[0]) {
		kind = token.TYPE
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Line: line, Column: col}
}

// NextType scans `[A-Z][a-zA-Z0-9_/,]*`: a (possibly generic-instantiated)
// type string such as "Effect", "List/Effect", or "Pair/Int,Str".
func (l *Lexer) NextType() token.Token {
	l.SkipSpace()
	line, col := l.startTok()
	start := l.position
	if isUpper(l.ch) {
		for isTypeChar(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Kind: token.TYPE, Lexeme: lexeme, Line: line, Column: col}
}

// NextCaps scans `[A-Z][A-Z]*`: a single template-parameter name in a
// generic declaration's parameter list.
func (l *Lexer) NextCaps() token.Token {
	l.SkipSpace()
	line, col := l.startTok()
	start := l.position
	for isUpper(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Kind: token.TYPE, Lexeme: lexeme, Line: line, Column: col}
}

// NextNoteWord scans a single whitespace-delimited token from inside a
// `note { ... }` block, where the allowed charset is wider (it also permits
// the punctuation a human note might contain).
func (l *Lexer) NextNoteWord() token.Token {
	l.SkipSpace()
	line, col := l.startTok()
	start := l.position
	for isNoteChar(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Kind: token.IDENT, Lexeme: lexeme, Line: line, Column: col}
}

// PeekLiteral reports whether the given literal appears next (after
// skipping space), without consuming it.
func (l *Lexer) PeekLiteral(lit string) bool {
	l.SkipSpace()
	return strings.HasPrefix(l.input[l.position:], lit)
}

// Literal consumes the exact literal (after skipping space) and returns its
// token, or ok=false if it isn't present.
func (l *Lexer) Literal(lit string) (token.Token, bool) {
	l.SkipSpace()
	line, col := l.startTok()
	if !strings.HasPrefix(l.input[l.position:], lit) {
		return token.Token{}, false
	}
	for range lit {
		l.readChar()
	}
	return token.Token{Kind: punctKind(lit), Lexeme: lit, Line: line, Column: col}, true
}

func punctKind(lit string) token.Kind {
	switch lit {
	case ".":
		return token.DOT
	case "{":
		return token.LBRACE
	case "}":
		return token.RBRACE
	case "(":
		return token.LPAREN
	case ")":
		return token.RPAREN
	case ",":
		return token.COMMA
	case "=":
		return token.ASSIGN
	case "<<":
		return token.ASYNC_ARR
	case "!":
		return token.BANG
	case ";":
		return token.SEMI
	default:
		return token.KEYWORD
	}
}

// Pos reports the current line/column, for error reporting when no token
// has been produced yet (e.g. unexpected EOF).
func (l *Lexer) Pos() token.Token {
	return token.Token{Line: l.line, Column: l.column}
}
