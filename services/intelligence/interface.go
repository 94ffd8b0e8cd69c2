// File: services/intelligence/interface.go
package ai

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Message roles understood by every ChatModel.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a provider-neutral chat message.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	// Name is the tool name on RoleTool messages.
	Name string
}

// ToolCall is a function invocation requested by the model. Arguments is raw JSON.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolSpec describes a callable tool to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

// Completion is one model turn.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatModel is a chat-completion backend with function calling.
type ChatModel interface {
	Complete(ctx context.Context, msgs []Message, tools []ToolSpec) (*Completion, error)
}
