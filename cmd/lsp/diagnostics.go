package main

import (
	"github.com/ouro-lang/ouro/internal/diagnostics"
)

func (s *LanguageServer) publishDiagnostics(uri string, state *DocumentState) error {
	state.Mu.RLock()
	ctx := state.Context
	state.Mu.RUnlock()

	var diags []Diagnostic
	if ctx != nil {
		diags = convertDiagnostics(ctx.Errors)
	}
	if diags == nil {
		diags = []Diagnostic{}
	}

	return s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: diags},
	})
}

// convertDiagnostics maps compiler diagnostics to LSP ones. LSP positions
// are 0-based; compiler positions are 1-based.
func convertDiagnostics(errs []*diagnostics.DiagnosticError) []Diagnostic {
	result := make([]Diagnostic, 0, len(errs))
	for _, err := range errs {
		line := err.Token.Line - 1
		if line < 0 {
			line = 0
		}
		col := err.Token.Column - 1
		if col < 0 {
			col = 0
		}
		end := col + len(err.Token.Lexeme)
		if end <= col {
			end = col + 1
		}
		result = append(result, Diagnostic{
			Range: Range{
				Start: Position{Line: line, Character: col},
				End:   Position{Line: line, Character: end},
			},
			Severity: SeverityError,
			Code:     string(err.Code),
			Message:  err.Message,
			Source:   "ouro",
		})
	}
	return result
}
