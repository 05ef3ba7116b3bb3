package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LanguageServer speaks LSP over stdin/stdout. Framing is Content-Length
// headers followed by a JSON-RPC body, one message at a time.
type LanguageServer struct {
	session   uuid.UUID
	documents map[string]*DocumentState // URI -> document state
	mu        sync.RWMutex
	writer    io.Writer
	shutdown  bool
}

func NewLanguageServer(writer io.Writer) *LanguageServer {
	if writer == nil {
		writer = os.Stdout
	}
	return &LanguageServer{
		session:   uuid.New(),
		documents: make(map[string]*DocumentState),
		writer:    writer,
	}
}

func (s *LanguageServer) Start() {
	log.Printf("session %s started", s.session)
	reader := bufio.NewReader(os.Stdin)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("error reading header: %v", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}

		contentLength, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("error parsing Content-Length: %v", err)
			continue
		}

		// Consume remaining headers up to the blank separator line.
		for {
			headerLine, err := reader.ReadString('\n')
			if err != nil {
				log.Printf("error reading separator: %v", err)
				return
			}
			if strings.TrimRight(headerLine, "\r\n") == "" {
				break
			}
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("error reading content: %v", err)
			return
		}

		if err := s.handleMessage(content); err != nil {
			log.Printf("error handling message: %v", err)
		}
	}
}

func (s *LanguageServer) handleMessage(content []byte) error {
	var msg struct {
		ID     interface{}     `json:"id,omitempty"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params,omitempty"`
	}
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("unmarshaling message: %w", err)
	}

	// A request carries an id; a notification does not.
	if msg.ID != nil {
		return s.handleRequest(msg.ID, msg.Method, msg.Params)
	}
	return s.handleNotification(msg.Method, msg.Params)
}

func (s *LanguageServer) handleRequest(id interface{}, method string, params json.RawMessage) error {
	switch method {
	case "initialize":
		var p InitializeParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return err
			}
		}
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result: InitializeResult{
				Capabilities: ServerCapabilities{TextDocumentSync: 1},
				ServerInfo:   ServerInfo{Name: "ouro-lsp"},
			},
		})

	case "shutdown":
		s.shutdown = true
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})

	default:
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Error:   &Error{Code: -32601, Message: fmt.Sprintf("method not found: %s", method)},
		})
	}
}

func (s *LanguageServer) handleNotification(method string, params json.RawMessage) error {
	switch method {
	case "initialized":
		return nil

	case "textDocument/didOpen":
		var p DidOpenTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return err
		}
		return s.handleDidOpen(p)

	case "textDocument/didChange":
		var p DidChangeTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return err
		}
		return s.handleDidChange(p)

	case "textDocument/didClose":
		var p DidCloseTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return err
		}
		return s.handleDidClose(p)

	case "exit":
		if s.shutdown {
			os.Exit(0)
		}
		os.Exit(1)
		return nil

	default:
		log.Printf("ignoring notification: %s", method)
		return nil
	}
}

func (s *LanguageServer) sendResponse(resp ResponseMessage) error {
	return s.send(resp)
}

func (s *LanguageServer) sendNotification(n NotificationMessage) error {
	return s.send(n)
}

func (s *LanguageServer) send(msg interface{}) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(body), body)
	return err
}
