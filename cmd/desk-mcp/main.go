package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	deskmcp "github.com/deskbot/whatsapp-desk/internal/mcp"
	"github.com/deskbot/whatsapp-desk/mcpserver"
)

const version = "v1.0.0"

// desk-mcp exposes the admin API as MCP tools over stdio.
func main() {
	apiURL := os.Getenv("DESK_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := deskmcp.NewClient(apiURL, os.Getenv("ADMIN_TOKEN"))
	server := mcpserver.NewServer(deskmcp.NewHandler(client), version)

	// Logs go to stderr; stdout carries the protocol
	log.SetOutput(os.Stderr)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
