// File: services/intelligence/tools.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Caller identifies the lead a tool runs on behalf of.
type Caller struct {
	Phone string
	Name  string
	Email string
}

// ToolHandler executes one tool call. args is the raw JSON object from the model.
type ToolHandler func(ctx context.Context, caller Caller, args json.RawMessage) (string, error)

// Tool couples a spec with its handler.
type Tool struct {
	Spec    ToolSpec
	Handler ToolHandler
}

// ToolError is a failed tool dispatch.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// ToolRegistry holds the tools exposed to the model.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewToolRegistry(tools ...Tool) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a tool.
func (r *ToolRegistry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Spec.Name]; !exists {
		r.order = append(r.order, t.Spec.Name)
	}
	r.tools[t.Spec.Name] = t
}

// Specs lists tool specs in registration order.
func (r *ToolRegistry) Specs() []ToolSpec {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec)
	}
	return specs
}

// Dispatch runs call and returns the handler output or a *ToolError.
func (r *ToolRegistry) Dispatch(ctx context.Context, caller Caller, call ToolCall) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[call.Name]
	r.mu.RUnlock()
	if !ok {
		return "", &ToolError{Tool: call.Name, Err: fmt.Errorf("unknown tool")}
	}

	args := json.RawMessage(call.Arguments)
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if !json.Valid(args) {
		return "", &ToolError{Tool: call.Name, Err: fmt.Errorf("arguments are not valid JSON")}
	}

	out, err := t.Handler(ctx, caller, args)
	if err != nil {
		return "", &ToolError{Tool: call.Name, Err: err}
	}
	return out, nil
}
