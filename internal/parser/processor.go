package parser

import (
	"github.com/ouro-lang/ouro/internal/pipeline"
)

// Processor adapts the parser to the compilation pipeline.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Name() string { return "parser" }

// Process parses the token stream. Parse errors are recorded but do not stop
// the chain: surviving declarations still feed the analyzer.
func (p *Processor) Process(ctx *pipeline.Context) bool {
	decls, errs := Parse(ctx.TokenStream)
	for _, err := range errs {
		ctx.AddError(err)
	}
	ctx.Declarations = decls
	return true
}
