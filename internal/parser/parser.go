// Package parser turns a token stream into declarations. Errors recover at
// declaration granularity: a malformed declaration is reported, the stream
// synchronizes to the next declaration keyword or ';', and parsing continues.
package parser

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

// bailout carries a diagnostic up to the declaration boundary.
type bailout struct {
	err *diagnostics.DiagnosticError
}

type Parser struct {
	tokens []token.Token
	pos    int
	errors []*diagnostics.DiagnosticError

	// Set when a '>>' token was split to close an inner generic; the
	// remaining '>' closes the outer one.
	pendingRAngle bool
}

func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{{Type: token.EOF, Line: 1, Column: 1}}
	}
	return &Parser{tokens: tokens}
}

// Parse consumes the whole stream and returns every declaration that parsed
// cleanly plus every diagnostic hit along the way.
func Parse(tokens []token.Token) ([]ast.Declaration, []*diagnostics.DiagnosticError) {
	p := New(tokens)
	decls := []ast.Declaration{}
	for !p.check(token.EOF) {
		before := p.pos
		decl := p.declaration()
		if decl != nil {
			decls = append(decls, decl)
		} else if p.pos == before {
			// Recovery made no progress; skip the offending token.
			p.advance()
		}
	}
	return decls, p.errors
}

// declaration parses one top-level declaration, converting a bailout into a
// recorded diagnostic plus resynchronization.
func (p *Parser) declaration() (decl ast.Declaration) {
	defer func() {
		if r := recover(); r == nil {
			return
		} else if b, ok := r.(bailout); ok {
			p.errors = append(p.errors, b.err)
			p.synchronize()
			decl = nil
		} else {
			panic(r)
		}
	}()
	return p.parseDeclaration()
}

// synchronize skips tokens until a recovery boundary: just past a ';' or
// right before a declaration or statement keyword.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.check(token.SEMICOLON) {
			p.advance()
			return
		}
		switch p.cur().Type {
		case token.CLASS, token.STRUCT, token.ENUM, token.INTERFACE,
			token.FUNC, token.VAR, token.LET,
			token.FOR, token.IF, token.WHILE, token.RETURN,
			token.ABSTRACT, token.SEALED, token.STATIC, token.OVERRIDE, token.ASYNC:
			return
		}
		p.advance()
	}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.TokenType) bool {
	return p.cur().Type == t
}

// match consumes the current token when it has one of the given types.
func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or bails out with P005.
func (p *Parser) expect(t token.TokenType, what string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail(diagnostics.ErrP005, p.cur(), fmt.Sprintf("expected %s, found '%s'", what, describeToken(p.cur())))
	return token.Token{}
}

func (p *Parser) fail(code diagnostics.Code, tok token.Token, msg string) {
	panic(bailout{err: diagnostics.NewError(code, tok, msg)})
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of file"
	}
	return tok.Lexeme
}

// expectRAngle consumes a '>' in a type context, splitting '>>' when nested
// generics close together.
func (p *Parser) expectRAngle() {
	if p.pendingRAngle {
		p.pendingRAngle = false
		return
	}
	if p.check(token.GT) {
		p.advance()
		return
	}
	if p.check(token.RSHIFT) {
		p.pendingRAngle = true
		p.advance()
		return
	}
	p.fail(diagnostics.ErrP005, p.cur(), fmt.Sprintf("expected '>', found '%s'", describeToken(p.cur())))
}
