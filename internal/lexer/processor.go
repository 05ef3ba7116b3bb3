package lexer

import (
	"github.com/ouro-lang/ouro/internal/pipeline"
)

// Processor adapts the scanner to the compilation pipeline.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Name() string { return "lexer" }

// Process scans the unit's source into the token stream. A lexical error is
// fatal for the unit: later stages need a complete stream.
func (p *Processor) Process(ctx *pipeline.Context) bool {
	tokens, err := ScanTokens(ctx.SourceCode)
	if err != nil {
		ctx.AddError(err)
		return false
	}
	ctx.TokenStream = tokens
	return true
}
