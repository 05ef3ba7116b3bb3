package ast

import "github.com/ouro-lang/ouro/internal/token"

// BlockStatement represents { stmt* }.
type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v StmtVisitor)  { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ExpressionStatement wraps an expression used for effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) Accept(v StmtVisitor)  { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// VariableStatement represents a local 'var' or 'let' binding.
type VariableStatement struct {
	Token          token.Token // the 'var'/'let' token
	Name           *Identifier
	TypeAnnotation TypeNode   // optional
	Initializer    Expression // optional
	IsConstant     bool       // true for 'let'
}

func (vs *VariableStatement) Accept(v StmtVisitor)  { v.VisitVariableStatement(vs) }
func (vs *VariableStatement) statementNode()        {}
func (vs *VariableStatement) TokenLiteral() string  { return vs.Token.Lexeme }
func (vs *VariableStatement) GetToken() token.Token {
	if vs == nil {
		return token.Token{}
	}
	return vs.Token
}

// IfStatement represents if (cond) { ... } else ... .
type IfStatement struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      *BlockStatement
	Else      Statement // *BlockStatement or *IfStatement, optional
}

func (is *IfStatement) Accept(v StmtVisitor)  { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// WhileStatement represents while (cond) { ... }.
type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) Accept(v StmtVisitor)  { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ForStatement represents the C-style for (init; cond; step) { ... }.
// All three clauses are optional.
type ForStatement struct {
	Token       token.Token // the 'for' token
	Initializer Statement
	Condition   Expression
	Increment   Expression
	Body        *BlockStatement
}

func (fs *ForStatement) Accept(v StmtVisitor)  { v.VisitForStatement(fs) }
func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// ForInStatement represents for (x in iterable) { ... }.
type ForInStatement struct {
	Token    token.Token // the 'for' token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForInStatement) Accept(v StmtVisitor)  { v.VisitForInStatement(fs) }
func (fs *ForInStatement) statementNode()        {}
func (fs *ForInStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForInStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// ReturnStatement represents return [expr];.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression  // optional
}

func (rs *ReturnStatement) Accept(v StmtVisitor)  { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// BreakStatement represents break;.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) Accept(v StmtVisitor)  { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ContinueStatement represents continue;.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) Accept(v StmtVisitor)  { v.VisitContinueStatement(cs) }
func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}
