package analyzer

import (
	"github.com/ouro-lang/ouro/internal/pipeline"
)

// Processor adapts the analyzer to the compilation pipeline.
type Processor struct {
	opts Options
}

func NewProcessor() *Processor { return &Processor{} }

// NewProcessorWith builds a processor that runs the analyzer with opts,
// typically loaded from the project file.
func NewProcessorWith(opts Options) *Processor { return &Processor{opts: opts} }

func (p *Processor) Name() string { return "analyzer" }

// Process runs semantic analysis over the declarations the parser produced.
// Semantic diagnostics never stop the chain.
func (p *Processor) Process(ctx *pipeline.Context) bool {
	a := NewWith(p.opts)
	for _, err := range a.Check(ctx.Declarations) {
		ctx.AddError(err)
	}
	return true
}
