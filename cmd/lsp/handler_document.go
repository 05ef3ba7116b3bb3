package main

import (
	"log"
	"strings"
	"sync"

	"github.com/ouro-lang/ouro/internal/analyzer"
	"github.com/ouro-lang/ouro/internal/lexer"
	"github.com/ouro-lang/ouro/internal/parser"
	"github.com/ouro-lang/ouro/internal/pipeline"
)

// DocumentState tracks an open document and its latest analysis.
type DocumentState struct {
	Content string
	Context *pipeline.Context
	Mu      sync.RWMutex
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("didOpen: %s", uri)

	state := &DocumentState{Content: params.TextDocument.Text}
	s.mu.Lock()
	s.documents[uri] = state
	s.mu.Unlock()

	s.analyzeDocument(uri, state)
	return s.publishDiagnostics(uri, state)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) == 0 {
		return nil
	}

	s.mu.RLock()
	state, ok := s.documents[uri]
	s.mu.RUnlock()
	if !ok {
		log.Printf("didChange for unopened document: %s", uri)
		state = &DocumentState{}
		s.mu.Lock()
		s.documents[uri] = state
		s.mu.Unlock()
	}

	// Full sync: the last change carries the whole document.
	state.Mu.Lock()
	state.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
	state.Mu.Unlock()

	s.analyzeDocument(uri, state)
	return s.publishDiagnostics(uri, state)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("didClose: %s", uri)

	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()

	// Clear any remaining diagnostics for the closed document.
	return s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: []Diagnostic{}},
	})
}

// analyzeDocument runs the full front end over the document content.
func (s *LanguageServer) analyzeDocument(uri string, state *DocumentState) {
	state.Mu.Lock()
	defer state.Mu.Unlock()

	ctx := pipeline.NewContext(uriToPath(uri), state.Content)
	chain := pipeline.New(
		lexer.NewProcessor(),
		parser.NewProcessor(),
		analyzer.NewProcessor(),
	)
	state.Context = chain.Run(ctx)
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
