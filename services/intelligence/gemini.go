// File: services/intelligence/gemini.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/api/option"
)

// GeminiClient is the alternative ChatModel backed by Google's Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Close releases the client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Complete runs one chat turn. A fresh GenerativeModel is configured per call
// so concurrent conversations do not share system instructions or tools.
func (g *GeminiClient) Complete(ctx context.Context, msgs []Message, tools []ToolSpec) (*Completion, error) {
	model := g.client.GenerativeModel(g.modelName)

	system, contents := toGeminiContents(msgs)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	if len(tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(tools)}}
	}
	if len(contents) == 0 {
		return nil, errors.New("gemini: no messages to send")
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	resp, err := cs.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return fromGeminiResponse(resp)
}

// toGeminiContents folds system messages into one instruction and merges
// consecutive turns of the same Gemini role.
func toGeminiContents(msgs []Message) (string, []*genai.Content) {
	var system []string
	var contents []*genai.Content

	add := func(role string, part genai.Part) {
		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts = append(contents[n-1].Parts, part)
			return
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []genai.Part{part}})
	}

	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			if m.Content != "" {
				add("model", genai.Text(m.Content))
			}
			for _, tc := range m.ToolCalls {
				args := map[string]any{}
				_ = json.Unmarshal([]byte(tc.Arguments), &args)
				add("model", genai.FunctionCall{Name: tc.Name, Args: args})
			}
		case RoleTool:
			add("user", genai.FunctionResponse{
				Name:     m.Name,
				Response: map[string]any{"content": m.Content},
			})
		default:
			add("user", genai.Text(m.Content))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (*Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini: empty response")
	}
	var sb strings.Builder
	out := &Completion{}
	for i, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return nil, fmt.Errorf("gemini: encode %s arguments: %w", p.Name, err)
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        fmt.Sprintf("call_%d_%s", i, p.Name),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	out.Content = sb.String()
	return out, nil
}

func toGeminiDeclarations(specs []ToolSpec) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, s := range specs {
		params := s.Parameters
		out = append(out, &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  toGeminiSchema(&params),
		})
	}
	return out
}

func toGeminiSchema(d *jsonschema.Definition) *genai.Schema {
	if d == nil {
		return nil
	}
	s := &genai.Schema{
		Description: d.Description,
		Enum:        d.Enum,
		Required:    d.Required,
	}
	switch d.Type {
	case jsonschema.Object:
		s.Type = genai.TypeObject
	case jsonschema.Array:
		s.Type = genai.TypeArray
	case jsonschema.Integer:
		s.Type = genai.TypeInteger
	case jsonschema.Number:
		s.Type = genai.TypeNumber
	case jsonschema.Boolean:
		s.Type = genai.TypeBoolean
	default:
		s.Type = genai.TypeString
	}
	if len(d.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(d.Properties))
		for name, prop := range d.Properties {
			s.Properties[name] = toGeminiSchema(&prop)
		}
	}
	if d.Items != nil {
		s.Items = toGeminiSchema(d.Items)
	}
	return s
}
