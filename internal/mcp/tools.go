package mcp

// Tool names
const (
	ToolListConversations = "desk_list_conversations"
	ToolGetConversation   = "desk_get_conversation"
	ToolSendMessage       = "desk_send_message"
	ToolGetBotConfig      = "desk_get_bot_config"
	ToolBotStatus         = "desk_bot_status"
)

// ToolDefinition describes an operator tool
type ToolDefinition struct {
	Name        string
	Description string
}

// GetToolDefinitions returns all available tool definitions
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolListConversations,
			Description: "List WhatsApp conversations, most recent activity first, with unread counts and last message preview.",
		},
		{
			Name:        ToolGetConversation,
			Description: "Read the full transcript of one conversation. Marks the conversation as viewed (unread count resets).",
		},
		{
			Name:        ToolSendMessage,
			Description: "Send a message to a contact as a human operator. Fails when the WhatsApp session is not ready.",
		},
		{
			Name:        ToolGetBotConfig,
			Description: "Read the auto-reply configuration: business hours, welcome message and custom commands.",
		},
		{
			Name:        ToolBotStatus,
			Description: "Read the WhatsApp session state (disconnected, connecting, authenticated, ready).",
		},
	}
}

// Description returns the description of a tool by name
func Description(name string) string {
	for _, d := range GetToolDefinitions() {
		if d.Name == name {
			return d.Description
		}
	}
	return ""
}
