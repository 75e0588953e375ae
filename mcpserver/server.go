package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	deskmcp "github.com/deskbot/whatsapp-desk/internal/mcp"
)

// DeskMCPServer provides MCP tools for operating the support desk
type DeskMCPServer struct {
	server  *mcp.Server
	handler *deskmcp.Handler
}

// NewServer creates a new desk MCP server
func NewServer(handler *deskmcp.Handler, version string) *DeskMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "whatsapp-desk",
		Version: version,
	}, nil)

	s := &DeskMCPServer{
		server:  server,
		handler: handler,
	}
	s.registerTools()
	return s
}

// Server returns the underlying MCP server
func (s *DeskMCPServer) Server() *mcp.Server {
	return s.server
}

// Run serves the tools over stdio until the client disconnects
func (s *DeskMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools registers all desk tools
func (s *DeskMCPServer) registerTools() {
	addTool(s.server, deskmcp.ToolListConversations, s.handler.ListConversations)
	addTool(s.server, deskmcp.ToolGetConversation, s.handler.GetConversation)
	addTool(s.server, deskmcp.ToolSendMessage, s.handler.SendMessage)
	addTool(s.server, deskmcp.ToolGetBotConfig, s.handler.GetBotConfig)
	addTool(s.server, deskmcp.ToolBotStatus, s.handler.BotStatus)
}

func addTool[In, Out any](server *mcp.Server, name string, fn func(context.Context, In) (Out, error)) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: deskmcp.Description(name),
	}, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		out, err := fn(ctx, in)
		return nil, out, err
	})
}
