package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

// Lexer scans Ouro source text in a single forward pass, tracking line and
// column. A scan error aborts the current lexeme; the lexer does not recover
// mid-token.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	err          *diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// ScanTokens scans the whole input and returns the token stream terminated by
// exactly one EOF token, or the first lexical error.
func ScanTokens(source string) ([]token.Token, *diagnostics.DiagnosticError) {
	l := New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if l.err != nil {
			return nil, l.err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Err returns the error recorded by the last NextToken call, if any.
func (l *Lexer) Err() *diagnostics.DiagnosticError {
	return l.err
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token
	l.err = nil

	if !l.skipWhitespace() {
		return token.Token{Type: token.ILLEGAL, Line: l.line, Column: l.column}
	}

	startLine, startCol := l.line, l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.EQ, "==", startLine, startCol)
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = opToken(token.FAT_ARROW, "=>", startLine, startCol)
		} else {
			tok = newToken(token.ASSIGN, l.ch, startLine, startCol)
		}
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.PLUS_ASSIGN, "+=", startLine, startCol)
		} else {
			tok = newToken(token.PLUS, l.ch, startLine, startCol)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = opToken(token.ARROW, "->", startLine, startCol)
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.MINUS_ASSIGN, "-=", startLine, startCol)
		} else {
			tok = newToken(token.MINUS, l.ch, startLine, startCol)
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = opToken(token.POWER_ASSIGN, "**=", startLine, startCol)
			} else {
				tok = opToken(token.POWER, "**", startLine, startCol)
			}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.ASTERISK_ASSIGN, "*=", startLine, startCol)
		} else {
			tok = newToken(token.ASTERISK, l.ch, startLine, startCol)
		}
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.SLASH_ASSIGN, "/=", startLine, startCol)
		} else {
			tok = newToken(token.SLASH, l.ch, startLine, startCol)
		}
	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.PERCENT_ASSIGN, "%=", startLine, startCol)
		} else {
			tok = newToken(token.PERCENT, l.ch, startLine, startCol)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.NOT_EQ, "!=", startLine, startCol)
		} else {
			tok = newToken(token.BANG, l.ch, startLine, startCol)
		}
	case '<':
		if l.peekChar() == '=' {
			if l.peekChar2() == '>' {
				l.readChar()
				l.readChar()
				tok = opToken(token.SPACESHIP, "<=>", startLine, startCol)
			} else {
				l.readChar()
				tok = opToken(token.LTE, "<=", startLine, startCol)
			}
		} else if l.peekChar() == '<' {
			l.readChar()
			tok = opToken(token.LSHIFT, "<<", startLine, startCol)
		} else {
			tok = newToken(token.LT, l.ch, startLine, startCol)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = opToken(token.GTE, ">=", startLine, startCol)
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = opToken(token.RSHIFT, ">>", startLine, startCol)
		} else {
			tok = newToken(token.GT, l.ch, startLine, startCol)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = opToken(token.AND, "&&", startLine, startCol)
		} else {
			tok = newToken(token.AMPERSAND, l.ch, startLine, startCol)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = opToken(token.OR, "||", startLine, startCol)
		} else {
			tok = newToken(token.PIPE, l.ch, startLine, startCol)
		}
	case '^':
		tok = newToken(token.CARET, l.ch, startLine, startCol)
	case '~':
		tok = newToken(token.TILDE, l.ch, startLine, startCol)
	case '?':
		if l.peekChar() == '?' {
			l.readChar()
			tok = opToken(token.NULL_COALESCE, "??", startLine, startCol)
		} else if l.peekChar() == '.' {
			l.readChar()
			tok = opToken(token.OPTIONAL_CHAIN, "?.", startLine, startCol)
		} else {
			tok = newToken(token.QUESTION, l.ch, startLine, startCol)
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok = opToken(token.ELLIPSIS, "...", startLine, startCol)
			} else {
				tok = opToken(token.DOT_DOT, "..", startLine, startCol)
			}
		} else {
			tok = newToken(token.DOT, l.ch, startLine, startCol)
		}
	case ',':
		tok = newToken(token.COMMA, l.ch, startLine, startCol)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, startLine, startCol)
	case ':':
		tok = newToken(token.COLON, l.ch, startLine, startCol)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startLine, startCol)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startLine, startCol)
	case '{':
		tok = newToken(token.LBRACE, l.ch, startLine, startCol)
	case '}':
		tok = newToken(token.RBRACE, l.ch, startLine, startCol)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, startLine, startCol)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, startLine, startCol)
	case '"':
		return l.readString(startLine, startCol)
	case '\'':
		return l.readCharLiteral(startLine, startCol)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: startLine, Column: startCol}
	default:
		if isLetter(l.ch) {
			lexeme := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(lexeme),
				Lexeme:  lexeme,
				Literal: lexeme,
				Line:    startLine,
				Column:  startCol,
			}
		}
		if isDigit(l.ch) {
			return l.readNumber(startLine, startCol)
		}
		l.fail(diagnostics.ErrL001, startLine, startCol, fmt.Sprintf("unexpected character %q", l.ch))
		return token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Line: startLine, Column: startCol}
	}

	l.readChar()
	return tok
}

// skipWhitespace also consumes comments. Block comments nest to arbitrary
// depth; an unterminated block comment fails at the opening position.
func (l *Lexer) skipWhitespace() bool {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			openLine, openCol := l.line, l.column
			l.readChar() // consume /
			l.readChar() // consume *
			depth := 1
			for depth > 0 {
				if l.ch == 0 {
					l.fail(diagnostics.ErrL004, openLine, openCol, "unterminated block comment")
					return false
				}
				if l.ch == '/' && l.peekChar() == '*' {
					depth++
					l.readChar()
					l.readChar()
					continue
				}
				if l.ch == '*' && l.peekChar() == '/' {
					depth--
					l.readChar()
					l.readChar()
					continue
				}
				l.readChar()
			}
			continue
		}
		return true
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber scans decimal, hex (0x), binary (0b), octal (leading zero) and
// floating-point literals with an optional exponent.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	position := l.position
	base := 10

	if l.ch == '0' {
		switch peek := l.peekChar(); {
		case peek == 'x' || peek == 'X':
			l.readChar()
			l.readChar()
			base = 16
		case peek == 'b' || peek == 'B':
			l.readChar()
			l.readChar()
			base = 2
		case isDigit(peek):
			l.readChar()
			base = 8
		}
	}

	digitStart := l.position
	for {
		if base == 16 {
			if !isHexDigit(l.ch) {
				break
			}
		} else if !isDigit(l.ch) {
			break
		}
		l.readChar()
	}

	if (base == 16 || base == 2) && l.position == digitStart {
		lexeme := l.input[position:l.position]
		l.fail(diagnostics.ErrL006, startLine, startCol, fmt.Sprintf("invalid numeric literal %q: missing digits after base prefix", lexeme))
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: startLine, Column: startCol}
	}

	isFloat := false
	if base == 10 || base == 8 {
		if l.ch == '.' && isDigit(l.peekChar()) {
			isFloat = true
			base = 10
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			peek := l.peekChar()
			if isDigit(peek) || ((peek == '+' || peek == '-') && isDigit(l.peekChar2())) {
				isFloat = true
				base = 10
				l.readChar() // consume e
				if l.ch == '+' || l.ch == '-' {
					l.readChar()
				}
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
	}

	lexeme := l.input[position:l.position]

	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			l.fail(diagnostics.ErrL006, startLine, startCol, fmt.Sprintf("invalid numeric literal %q", lexeme))
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: startLine, Column: startCol}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	digits := lexeme
	switch base {
	case 16, 2:
		digits = lexeme[2:]
	case 8:
		digits = lexeme[1:]
	}
	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		l.fail(diagnostics.ErrL006, startLine, startCol, fmt.Sprintf("invalid numeric literal %q", lexeme))
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func (l *Lexer) readString(startLine, startCol int) token.Token {
	position := l.position
	var sb []rune
	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			l.fail(diagnostics.ErrL002, startLine, startCol, "unterminated string literal")
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Line: startLine, Column: startCol}
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			escLine, escCol := l.line, l.column
			l.readChar()
			r, ok := unescape(l.ch)
			if !ok {
				l.fail(diagnostics.ErrL005, escLine, escCol, fmt.Sprintf("invalid escape sequence \\%c", l.ch))
				return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Line: startLine, Column: startCol}
			}
			sb = append(sb, r)
			continue
		}
		sb = append(sb, l.ch)
	}
	lexeme := l.input[position : l.position+1]
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Lexeme: lexeme, Literal: string(sb), Line: startLine, Column: startCol}
}

func (l *Lexer) readCharLiteral(startLine, startCol int) token.Token {
	position := l.position
	l.readChar() // skip opening quote
	if l.ch == '\'' {
		l.readChar()
		l.fail(diagnostics.ErrL007, startLine, startCol, "empty character literal")
		return token.Token{Type: token.ILLEGAL, Lexeme: "''", Line: startLine, Column: startCol}
	}
	if l.ch == 0 || l.ch == '\n' {
		l.fail(diagnostics.ErrL003, startLine, startCol, "unterminated character literal")
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Line: startLine, Column: startCol}
	}

	var value rune
	if l.ch == '\\' {
		escLine, escCol := l.line, l.column
		l.readChar()
		r, ok := unescape(l.ch)
		if !ok {
			l.fail(diagnostics.ErrL005, escLine, escCol, fmt.Sprintf("invalid escape sequence \\%c", l.ch))
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Line: startLine, Column: startCol}
		}
		value = r
	} else {
		value = l.ch
	}
	l.readChar()
	if l.ch != '\'' {
		l.fail(diagnostics.ErrL003, startLine, startCol, "unterminated character literal, expected closing '")
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Line: startLine, Column: startCol}
	}
	lexeme := l.input[position : l.position+1]
	l.readChar() // consume closing quote
	return token.Token{Type: token.CHAR, Lexeme: lexeme, Literal: string(value), Line: startLine, Column: startCol}
}

func unescape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	}
	return 0, false
}

func (l *Lexer) fail(code diagnostics.Code, line, col int, msg string) {
	l.err = diagnostics.NewError(code, token.Token{Line: line, Column: col}, msg)
}

func opToken(t token.TokenType, lexeme string, line, col int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
