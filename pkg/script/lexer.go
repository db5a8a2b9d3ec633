package script

import (
	"strings"
	"unicode"
)

// Lexer converts raw script source into a token stream. It never performs
// I/O; the caller supplies the full source text.
type Lexer struct {
	src    []rune
	pos    int // index of the current rune
	line   int
	column int
}

// NewLexer creates a lexer over the given source text.
func NewLexer(source string) *Lexer {
	return &Lexer{
		src:    []rune(source),
		line:   1,
		column: 1,
	}
}

// NextToken scans and returns the next token, advancing the lexer.
// After the source is exhausted it returns TokenEOF forever.
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	line, column := l.line, l.column

	ch, ok := l.peek()
	if !ok {
		return Token{Type: TokenEOF, Line: line, Column: column}
	}

	switch {
	case ch == '{':
		l.advance()
		return Token{Type: TokenLBrace, Literal: "{", Line: line, Column: column}
	case ch == '}':
		l.advance()
		return Token{Type: TokenRBrace, Literal: "}", Line: line, Column: column}
	case ch == '(':
		l.advance()
		return Token{Type: TokenLParen, Literal: "(", Line: line, Column: column}
	case ch == ')':
		l.advance()
		return Token{Type: TokenRParen, Literal: ")", Line: line, Column: column}
	case ch == ',':
		l.advance()
		return Token{Type: TokenComma, Literal: ",", Line: line, Column: column}
	case ch == '"':
		return l.readString(line, column)
	case ch == '[':
		return l.readVarMarker(line, column)
	case ch == '-' || unicode.IsDigit(ch):
		return l.readNumber(line, column)
	case isIdentStart(ch):
		return l.readIdent(line, column)
	default:
		l.advance()
		return Token{Type: TokenIllegal, Literal: string(ch), Line: line, Column: column}
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// skipIgnored consumes whitespace and # comments (to end of line).
func (l *Lexer) skipIgnored() {
	for {
		ch, ok := l.peek()
		if !ok {
			return
		}
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '#':
			for {
				ch, ok := l.peek()
				if !ok || ch == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdent(line, column int) Token {
	var sb strings.Builder
	for {
		ch, ok := l.peek()
		if !ok || !isIdentPart(ch) {
			break
		}
		sb.WriteRune(l.advance())
	}
	literal := sb.String()
	return Token{Type: lookupIdent(literal), Literal: literal, Line: line, Column: column}
}

func (l *Lexer) readNumber(line, column int) Token {
	var sb strings.Builder
	if ch, _ := l.peek(); ch == '-' {
		sb.WriteRune(l.advance())
	}
	digits := 0
	dot := false
	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		if ch == '.' && !dot {
			dot = true
			sb.WriteRune(l.advance())
			continue
		}
		if !unicode.IsDigit(ch) {
			break
		}
		digits++
		sb.WriteRune(l.advance())
	}
	literal := sb.String()
	if digits == 0 {
		return Token{Type: TokenIllegal, Literal: literal, Line: line, Column: column}
	}
	return Token{Type: TokenNumber, Literal: literal, Line: line, Column: column}
}

// readString scans a double-quoted string literal. Embedded variable
// markers like [_PLAYERNAME_] are kept verbatim; splitting them out is the
// AST builder's job. Supported escapes: \" \\ \n.
func (l *Lexer) readString(line, column int) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return Token{Type: TokenIllegal, Literal: sb.String(), Line: line, Column: column}
		}
		l.advance()
		if ch == '"' {
			return Token{Type: TokenString, Literal: sb.String(), Line: line, Column: column}
		}
		if ch == '\\' {
			esc, ok := l.peek()
			if !ok {
				return Token{Type: TokenIllegal, Literal: sb.String(), Line: line, Column: column}
			}
			l.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(ch)
	}
}

// readVarMarker scans a bare [_NAME_] marker used as a speaker token.
func (l *Lexer) readVarMarker(line, column int) Token {
	var sb strings.Builder
	sb.WriteRune(l.advance()) // '['
	if ch, ok := l.peek(); !ok || ch != '_' {
		return Token{Type: TokenIllegal, Literal: sb.String(), Line: line, Column: column}
	}
	sb.WriteRune(l.advance()) // '_'
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return Token{Type: TokenIllegal, Literal: sb.String(), Line: line, Column: column}
		}
		sb.WriteRune(l.advance())
		if ch == ']' {
			break
		}
	}
	literal := sb.String()
	if !strings.HasSuffix(literal, "_]") || len(literal) < len("[_x_]") {
		return Token{Type: TokenIllegal, Literal: literal, Line: line, Column: column}
	}
	return Token{Type: TokenVar, Literal: literal, Line: line, Column: column}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
