package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"
	CHAR   TokenType = "CHAR"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"
	BANG     TokenType = "!"

	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	POWER_ASSIGN    TokenType = "**="

	EQ        TokenType = "=="
	NOT_EQ    TokenType = "!="
	LT        TokenType = "<"
	GT        TokenType = ">"
	LTE       TokenType = "<="
	GTE       TokenType = ">="
	SPACESHIP TokenType = "<=>"

	AND       TokenType = "&&"
	OR        TokenType = "||"
	AMPERSAND TokenType = "&"
	PIPE      TokenType = "|"
	CARET     TokenType = "^"
	TILDE     TokenType = "~"
	LSHIFT    TokenType = "<<"
	RSHIFT    TokenType = ">>"

	QUESTION       TokenType = "?"
	NULL_COALESCE  TokenType = "??"
	OPTIONAL_CHAIN TokenType = "?."

	DOT      TokenType = "."
	DOT_DOT  TokenType = ".."
	ELLIPSIS TokenType = "..."

	ARROW     TokenType = "->"
	FAT_ARROW TokenType = "=>"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	CLASS     TokenType = "CLASS"
	STRUCT    TokenType = "STRUCT"
	ENUM      TokenType = "ENUM"
	INTERFACE TokenType = "INTERFACE"
	FUNC      TokenType = "FUNC"
	VAR       TokenType = "VAR"
	LET       TokenType = "LET"
	RETURN    TokenType = "RETURN"
	IF        TokenType = "IF"
	ELSE      TokenType = "ELSE"
	WHILE     TokenType = "WHILE"
	FOR       TokenType = "FOR"
	IN        TokenType = "IN"
	BREAK     TokenType = "BREAK"
	CONTINUE  TokenType = "CONTINUE"
	TRUE      TokenType = "TRUE"
	FALSE     TokenType = "FALSE"
	NIL       TokenType = "NIL"
	THIS      TokenType = "THIS"
	SUPER     TokenType = "SUPER"
	NEW       TokenType = "NEW"
	STATIC    TokenType = "STATIC"
	ABSTRACT  TokenType = "ABSTRACT"
	OVERRIDE  TokenType = "OVERRIDE"
	SEALED    TokenType = "SEALED"
	ASYNC     TokenType = "ASYNC"
	INIT      TokenType = "INIT"
)

var keywords = map[string]TokenType{
	"class":     CLASS,
	"struct":    STRUCT,
	"enum":      ENUM,
	"interface": INTERFACE,
	"func":      FUNC,
	"var":       VAR,
	"let":       LET,
	"return":    RETURN,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"in":        IN,
	"break":     BREAK,
	"continue":  CONTINUE,
	"true":      TRUE,
	"false":     FALSE,
	"nil":       NIL,
	"this":      THIS,
	"super":     SUPER,
	"new":       NEW,
	"static":    STATIC,
	"abstract":  ABSTRACT,
	"override":  OVERRIDE,
	"sealed":    SEALED,
	"async":     ASYNC,
	"init":      INIT,
}

// LookupIdent checks the keyword table; keywords always win over plain
// identifier classification.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the lexeme is a reserved word.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// Equals compares two tokens structurally. Literal values compare only for
// the closed set of literal kinds (string, int64, float64, bool); any other
// pairing is never equal.
func (t Token) Equals(other Token) bool {
	if t.Type != other.Type || t.Lexeme != other.Lexeme ||
		t.Line != other.Line || t.Column != other.Column {
		return false
	}
	return literalsEqual(t.Literal, other.Literal)
}

func literalsEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}
