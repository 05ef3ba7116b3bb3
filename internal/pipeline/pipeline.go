// Package pipeline wires compilation stages into a linear chain. Each stage
// reads what the previous one produced from the shared context and appends
// its diagnostics; a stage that cannot produce output stops the chain.
package pipeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

// Context carries one compilation unit through the stages.
type Context struct {
	ID           uuid.UUID
	FilePath     string
	SourceCode   string
	TokenStream  []token.Token
	Declarations []ast.Declaration
	Errors       []*diagnostics.DiagnosticError
	// MaxErrors, when positive, caps how many diagnostics are kept.
	MaxErrors int
}

func NewContext(filePath, source string) *Context {
	return &Context{
		ID:         uuid.New(),
		FilePath:   filePath,
		SourceCode: source,
	}
}

// AddError records a diagnostic, stamping it with the unit's file path.
func (c *Context) AddError(err *diagnostics.DiagnosticError) {
	if err == nil {
		return
	}
	if c.MaxErrors > 0 && len(c.Errors) >= c.MaxErrors {
		return
	}
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any stage recorded a diagnostic.
func (c *Context) HasErrors() bool { return len(c.Errors) > 0 }

// SortErrors orders diagnostics by source position, then code.
func (c *Context) SortErrors() {
	sort.SliceStable(c.Errors, func(i, j int) bool {
		a, b := c.Errors[i], c.Errors[j]
		if a.Token.Line != b.Token.Line {
			return a.Token.Line < b.Token.Line
		}
		if a.Token.Column != b.Token.Column {
			return a.Token.Column < b.Token.Column
		}
		return a.Code < b.Code
	})
}

// Processor is one stage of the chain.
type Processor interface {
	Name() string
	// Process mutates ctx in place. Returning false stops the chain; stages
	// after a hard failure would only produce noise.
	Process(ctx *Context) bool
}

// Pipeline runs processors in order.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run pushes ctx through every stage, stopping early when a stage reports a
// hard failure. Diagnostics come back sorted.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		if !proc.Process(ctx) {
			break
		}
	}
	ctx.SortErrors()
	return ctx
}
