package ast

import "github.com/ouro-lang/ouro/internal/token"

// Parameter is a single function/lambda parameter with its annotation.
type Parameter struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation TypeNode // optional for lambda parameters
}

func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// FunctionDeclaration represents a func declaration, either top-level or as a
// class/struct/interface member. Interface members carry a nil Body.
type FunctionDeclaration struct {
	Token          token.Token // the 'func' (or 'init') token
	Name           *Identifier
	TypeParameters []string
	// TypeParamConstraints is aligned with TypeParameters; a nil entry means
	// the parameter is unconstrained.
	TypeParamConstraints []TypeNode
	Parameters           []*Parameter
	ReturnType           TypeNode // nil means void
	Body                 *BlockStatement
	IsStatic             bool
	IsAbstract           bool
	IsOverride           bool
	IsConstructor        bool
	IsAsync              bool
}

func (fd *FunctionDeclaration) Accept(v DeclVisitor)  { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) declarationNode()      {}
func (fd *FunctionDeclaration) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// VariableDeclaration represents a top-level or member 'var'/'let'.
type VariableDeclaration struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation TypeNode   // optional
	Initializer    Expression // optional
	IsConstant     bool
	IsStatic       bool
}

func (vd *VariableDeclaration) Accept(v DeclVisitor)  { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) declarationNode()      {}
func (vd *VariableDeclaration) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *VariableDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

// ClassDeclaration represents class Name<T> : Super, Iface { members }.
// SuperTypes lists everything after ':' in source order; the analyzer decides
// which entry is the superclass and which are interfaces.
type ClassDeclaration struct {
	Token                token.Token // the 'class' token
	Name                 *Identifier
	TypeParameters       []string
	TypeParamConstraints []TypeNode // aligned with TypeParameters
	SuperTypes           []TypeNode
	Methods              []*FunctionDeclaration
	Properties           []*VariableDeclaration
	IsAbstract           bool
	IsSealed             bool
}

func (cd *ClassDeclaration) Accept(v DeclVisitor)  { v.VisitClassDeclaration(cd) }
func (cd *ClassDeclaration) declarationNode()      {}
func (cd *ClassDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// StructDeclaration represents struct Name<T> : Iface { members }.
// Structs conform to interfaces but have no superclass.
type StructDeclaration struct {
	Token                token.Token
	Name                 *Identifier
	TypeParameters       []string
	TypeParamConstraints []TypeNode // aligned with TypeParameters
	Interfaces           []TypeNode
	Methods              []*FunctionDeclaration
	Properties           []*VariableDeclaration
}

func (sd *StructDeclaration) Accept(v DeclVisitor)  { v.VisitStructDeclaration(sd) }
func (sd *StructDeclaration) declarationNode()      {}
func (sd *StructDeclaration) TokenLiteral() string  { return sd.Token.Lexeme }
func (sd *StructDeclaration) GetToken() token.Token {
	if sd == nil {
		return token.Token{}
	}
	return sd.Token
}

// EnumCase is one case of an enum, optionally with a raw value.
type EnumCase struct {
	Token    token.Token
	Name     *Identifier
	RawValue Expression // optional
}

func (ec *EnumCase) GetToken() token.Token {
	if ec == nil {
		return token.Token{}
	}
	return ec.Token
}

// EnumDeclaration represents enum Name { Case, Case = 2 }.
type EnumDeclaration struct {
	Token   token.Token
	Name    *Identifier
	Cases   []*EnumCase
	Methods []*FunctionDeclaration
}

func (ed *EnumDeclaration) Accept(v DeclVisitor)  { v.VisitEnumDeclaration(ed) }
func (ed *EnumDeclaration) declarationNode()      {}
func (ed *EnumDeclaration) TokenLiteral() string  { return ed.Token.Lexeme }
func (ed *EnumDeclaration) GetToken() token.Token {
	if ed == nil {
		return token.Token{}
	}
	return ed.Token
}

// InterfaceDeclaration represents interface Name<T> { method signatures }.
type InterfaceDeclaration struct {
	Token                token.Token
	Name                 *Identifier
	TypeParameters       []string
	TypeParamConstraints []TypeNode // aligned with TypeParameters
	SuperTypes           []TypeNode // extended interfaces
	Methods              []*FunctionDeclaration
	Properties           []*VariableDeclaration
}

func (id *InterfaceDeclaration) Accept(v DeclVisitor)  { v.VisitInterfaceDeclaration(id) }
func (id *InterfaceDeclaration) declarationNode()      {}
func (id *InterfaceDeclaration) TokenLiteral() string  { return id.Token.Lexeme }
func (id *InterfaceDeclaration) GetToken() token.Token {
	if id == nil {
		return token.Token{}
	}
	return id.Token
}
