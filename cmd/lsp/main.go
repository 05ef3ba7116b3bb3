package main

import (
	"log"
	"os"
)

func main() {
	// stdout carries the protocol, so logging goes to stderr.
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	server := NewLanguageServer(os.Stdout)
	server.Start()
}
