package diagnostics

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/token"
)

// Code identifies a diagnostic class. The first letter names the layer:
// L lexical, P parse, T type resolution, S semantic.
type Code string

// Lexical errors. A lex error always aborts the current scan.
const (
	ErrL001 Code = "L001" // unexpected character
	ErrL002 Code = "L002" // unterminated string literal
	ErrL003 Code = "L003" // unterminated character literal
	ErrL004 Code = "L004" // unterminated block comment
	ErrL005 Code = "L005" // invalid escape sequence
	ErrL006 Code = "L006" // invalid numeric literal
	ErrL007 Code = "L007" // invalid character literal
)

// Parse errors. Recoverable at declaration granularity.
const (
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // invalid expression
	ErrP003 Code = "P003" // invalid statement
	ErrP004 Code = "P004" // invalid type
	ErrP005 Code = "P005" // missing token
)

// Type resolution errors. Hard failure for the specific resolution call.
const (
	ErrT001 Code = "T001" // undefined type
	ErrT002 Code = "T002" // wrong generic arity
	ErrT003 Code = "T003" // ambiguous type
	ErrT004 Code = "T004" // incompatible types
	ErrT005 Code = "T005" // invalid conversion
	ErrT006 Code = "T006" // circular type reference
	ErrT007 Code = "T007" // invalid generic constraint
	ErrT008 Code = "T008" // invalid generic parameter
)

// Semantic errors. Collected, never thrown past check().
const (
	ErrS001 Code = "S001" // symbol not found
	ErrS002 Code = "S002" // symbol redefinition
	ErrS003 Code = "S003" // type mismatch
	ErrS004 Code = "S004" // incompatible types
	ErrS005 Code = "S005" // invalid operation
	ErrS006 Code = "S006" // abstract method call
	ErrS007 Code = "S007" // invalid override
	ErrS008 Code = "S008" // circular reference
	ErrS009 Code = "S009" // inaccessible member
	ErrS010 Code = "S010" // break/continue outside loop
	ErrS011 Code = "S011" // return type mismatch
	ErrS012 Code = "S012" // cyclic inheritance
	ErrS013 Code = "S013" // missing interface conformance
)

// DiagnosticError is a single diagnostic with source provenance.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string
	File    string
}

func NewError(code Code, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// IsLexical reports whether the diagnostic came from the scanner.
func (e *DiagnosticError) IsLexical() bool { return len(e.Code) > 0 && e.Code[0] == 'L' }

// IsParse reports whether the diagnostic came from the parser.
func (e *DiagnosticError) IsParse() bool { return len(e.Code) > 0 && e.Code[0] == 'P' }
