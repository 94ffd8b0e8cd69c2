// File: services/intelligence/assistant.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"outreach/models"

	"go.uber.org/zap"
)

const (
	defaultPromptWindow = 5
	maxToolRounds       = 3
)

// ErrEmptyReply is returned when the model produced no text.
var ErrEmptyReply = errors.New("model returned an empty reply")

// AssistantService produces WhatsApp replies for a lead.
type AssistantService interface {
	Reply(ctx context.Context, user *models.User, text string) (string, error)
}

// Assistant runs the tool-calling conversation loop.
type Assistant struct {
	model        ChatModel
	tools        *ToolRegistry
	systemPrompt string
	window       int
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

// AssistantOption customises an Assistant.
type AssistantOption func(*Assistant)

func WithSystemPrompt(p string) AssistantOption {
	return func(a *Assistant) { a.systemPrompt = p }
}

func WithPromptWindow(n int) AssistantOption {
	return func(a *Assistant) { a.window = n }
}

func WithLocation(loc *time.Location) AssistantOption {
	return func(a *Assistant) { a.location = loc }
}

func WithClock(now func() time.Time) AssistantOption {
	return func(a *Assistant) { a.now = now }
}

func WithLogger(l *zap.Logger) AssistantOption {
	return func(a *Assistant) { a.logger = l }
}

func NewAssistant(model ChatModel, tools *ToolRegistry, opts ...AssistantOption) (*Assistant, error) {
	if model == nil {
		return nil, fmt.Errorf("assistant initialization error: chat model is nil")
	}
	if tools == nil {
		tools = NewToolRegistry()
	}
	a := &Assistant{
		model:        model,
		tools:        tools,
		systemPrompt: DefaultSystemPrompt,
		window:       defaultPromptWindow,
		location:     time.UTC,
		now:          time.Now,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.window < 1 {
		a.window = defaultPromptWindow
	}
	return a, nil
}

// Reply answers text from user. user.Messages is the stored history, not
// including text. Tool calls are executed and fed back for up to three
// rounds, after which the model is asked for a plain answer.
func (a *Assistant) Reply(ctx context.Context, user *models.User, text string) (string, error) {
	msgs := a.buildPrompt(user, text)
	caller := Caller{}
	if user != nil {
		caller = Caller{Phone: user.UserPhone, Name: user.UserName, Email: user.Email}
	}
	specs := a.tools.Specs()

	for round := 0; ; round++ {
		tools := specs
		if round >= maxToolRounds {
			tools = nil
		}

		completion, err := a.model.Complete(ctx, msgs, tools)
		if err != nil {
			return "", err
		}
		if len(completion.ToolCalls) == 0 || tools == nil {
			reply := strings.TrimSpace(completion.Content)
			if reply == "" {
				return "", ErrEmptyReply
			}
			return reply, nil
		}

		msgs = append(msgs, Message{Role: RoleAssistant, Content: completion.Content, ToolCalls: completion.ToolCalls})
		for _, call := range completion.ToolCalls {
			msgs = append(msgs, a.runTool(ctx, caller, call))
		}
	}
}

func (a *Assistant) runTool(ctx context.Context, caller Caller, call ToolCall) Message {
	start := time.Now()
	out, err := a.tools.Dispatch(ctx, caller, call)
	if err != nil {
		a.logger.Warn("tool call failed",
			zap.String("tool", call.Name),
			zap.String("phone", caller.Phone),
			zap.Error(err))
		out = "Error: " + err.Error()
	} else {
		a.logger.Info("tool call completed",
			zap.String("tool", call.Name),
			zap.String("phone", caller.Phone),
			zap.Duration("took", time.Since(start)))
	}
	return Message{Role: RoleTool, Content: out, ToolCallID: call.ID, Name: call.Name}
}

// buildPrompt is the system prompt followed by the newest window messages,
// the incoming text counting as the last of them.
func (a *Assistant) buildPrompt(user *models.User, text string) []Message {
	var history []models.ChatMessage
	if user != nil {
		history = user.Messages
	}
	keep := a.window - 1
	if len(history) > keep {
		history = history[len(history)-keep:]
	}

	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: a.renderSystemPrompt(user)})
	for _, m := range history {
		role := RoleUser
		if m.Role != models.RoleUser {
			role = RoleAssistant
		}
		msgs = append(msgs, Message{Role: role, Content: m.Content})
	}
	return append(msgs, Message{Role: RoleUser, Content: text})
}

func (a *Assistant) renderSystemPrompt(user *models.User) string {
	var b strings.Builder
	b.WriteString(a.systemPrompt)
	fmt.Fprintf(&b, "\n\nCurrent time: %s.", a.now().In(a.location).Format("Monday 2006-01-02 15:04 MST"))
	if user != nil && user.UserName != "" {
		fmt.Fprintf(&b, " The client's name is %s.", user.UserName)
	}
	if user != nil && user.Email != "" {
		fmt.Fprintf(&b, " The client's email is %s.", user.Email)
	}
	return b.String()
}
