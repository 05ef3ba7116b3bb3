package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func parseLSPOutput(t *testing.T, output string) string {
	t.Helper()
	parts := strings.SplitN(output, "\r\n\r\n", 2)
	if len(parts) != 2 {
		t.Fatalf("invalid LSP output framing: %q", output)
	}
	return parts[1]
}

func setupServer(t *testing.T, uri, code string) (*LanguageServer, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	server := NewLanguageServer(buf)

	params := DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{
			URI:        uri,
			LanguageID: "ouro",
			Version:    1,
			Text:       code,
		},
	}
	if err := server.handleDidOpen(params); err != nil {
		t.Fatalf("handleDidOpen failed: %v", err)
	}
	return server, buf
}

func publishedDiagnostics(t *testing.T, output string) PublishDiagnosticsParams {
	t.Helper()
	body := parseLSPOutput(t, output)
	var notif struct {
		Method string                   `json:"method"`
		Params PublishDiagnosticsParams `json:"params"`
	}
	if err := json.Unmarshal([]byte(body), &notif); err != nil {
		t.Fatalf("unmarshal notification: %v", err)
	}
	if notif.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected publishDiagnostics, got %q", notif.Method)
	}
	return notif.Params
}

func TestInitialize(t *testing.T) {
	buf := new(bytes.Buffer)
	server := NewLanguageServer(buf)

	msg := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	if err := server.handleMessage([]byte(msg)); err != nil {
		t.Fatalf("handleMessage failed: %v", err)
	}

	body := parseLSPOutput(t, buf.String())
	var resp ResponseMessage
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	resBytes, _ := json.Marshal(resp.Result)
	var result InitializeResult
	json.Unmarshal(resBytes, &result)

	if result.Capabilities.TextDocumentSync != 1 {
		t.Errorf("expected full document sync, got %d", result.Capabilities.TextDocumentSync)
	}
	if result.ServerInfo.Name != "ouro-lsp" {
		t.Errorf("unexpected server name %q", result.ServerInfo.Name)
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	code := "func main() -> Int {\n    return missing;\n}"
	_, buf := setupServer(t, "file:///test.ouro", code)

	params := publishedDiagnostics(t, buf.String())
	if params.URI != "file:///test.ouro" {
		t.Errorf("unexpected URI %q", params.URI)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(params.Diagnostics), params.Diagnostics)
	}

	diag := params.Diagnostics[0]
	if diag.Code != "S001" {
		t.Errorf("expected code S001, got %v", diag.Code)
	}
	if diag.Source != "ouro" {
		t.Errorf("expected source ouro, got %q", diag.Source)
	}
	// LSP positions are 0-based; 'missing' sits on source line 2 column 12.
	if diag.Range.Start.Line != 1 {
		t.Errorf("expected line 1, got %d", diag.Range.Start.Line)
	}
	if diag.Range.Start.Character != 11 {
		t.Errorf("expected character 11, got %d", diag.Range.Start.Character)
	}
	if want := 11 + len("missing"); diag.Range.End.Character != want {
		t.Errorf("expected end character %d, got %d", want, diag.Range.End.Character)
	}
}

func TestDidOpenCleanDocument(t *testing.T) {
	code := "func main() -> Int {\n    return 0;\n}"
	_, buf := setupServer(t, "file:///clean.ouro", code)

	params := publishedDiagnostics(t, buf.String())
	if len(params.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", params.Diagnostics)
	}
}

func TestDidChangeReanalyzes(t *testing.T) {
	uri := "file:///edit.ouro"
	server, buf := setupServer(t, uri, "func main() -> Int {\n    return missing;\n}")

	params := publishedDiagnostics(t, buf.String())
	if len(params.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics before the fix")
	}

	buf.Reset()
	change := DidChangeTextDocumentParams{
		TextDocument: VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{
			{Text: "func main() -> Int {\n    return 0;\n}"},
		},
	}
	if err := server.handleDidChange(change); err != nil {
		t.Fatalf("handleDidChange failed: %v", err)
	}

	params = publishedDiagnostics(t, buf.String())
	if len(params.Diagnostics) != 0 {
		t.Errorf("expected diagnostics cleared after the fix, got %v", params.Diagnostics)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	uri := "file:///close.ouro"
	server, buf := setupServer(t, uri, "func main() -> Int {\n    return missing;\n}")
	buf.Reset()

	if err := server.handleDidClose(DidCloseTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatalf("handleDidClose failed: %v", err)
	}

	params := publishedDiagnostics(t, buf.String())
	if len(params.Diagnostics) != 0 {
		t.Errorf("expected empty diagnostics on close, got %v", params.Diagnostics)
	}

	server.mu.RLock()
	_, stillOpen := server.documents[uri]
	server.mu.RUnlock()
	if stillOpen {
		t.Errorf("document state not removed on close")
	}
}

func TestUnknownRequestReturnsError(t *testing.T) {
	buf := new(bytes.Buffer)
	server := NewLanguageServer(buf)

	msg := `{"jsonrpc":"2.0","id":7,"method":"textDocument/rename","params":{}}`
	if err := server.handleMessage([]byte(msg)); err != nil {
		t.Fatalf("handleMessage failed: %v", err)
	}

	body := parseLSPOutput(t, buf.String())
	var resp ResponseMessage
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("expected method-not-found error, got %+v", resp.Error)
	}
}
