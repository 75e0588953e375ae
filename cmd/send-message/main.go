package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	deskmcp "github.com/deskbot/whatsapp-desk/internal/mcp"
)

func main() {
	apiURL := os.Getenv("DESK_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	token := os.Getenv("ADMIN_TOKEN")
	if token == "" {
		fmt.Println("Error: ADMIN_TOKEN must be set")
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		fmt.Println("Usage: send-message <contact> <message>")
		os.Exit(1)
	}

	contactID := os.Args[1]
	message := strings.Join(os.Args[2:], " ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Send as an operator through the admin API
	client := deskmcp.NewClient(apiURL, token)
	msg, err := client.SendMessage(ctx, contactID, message)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Message %s sent successfully!\n", msg.ID)
}
